package transport

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"tzbot/infras/otel"
	"tzbot/transport/discord"
	"tzbot/transport/http"
)

const otelShutdownTimeout = 5 * time.Second

// App runs the chat gateway and the HTTP server side by side. When one of them
// fails the other is stopped too.
type App struct {
	HTTP *http.HTTP
	Bot  *discord.Bot
	Otel otel.Otel
}

func New(h *http.HTTP, bot *discord.Bot, ot otel.Otel) *App {
	return &App{
		HTTP: h,
		Bot:  bot,
		Otel: ot,
	}
}

func (a *App) Run(ctx context.Context) error {
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return a.HTTP.Serve(groupCtx)
	})

	group.Go(func() error {
		return a.Bot.Run(groupCtx)
	})

	err := group.Wait()

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), otelShutdownTimeout)
	defer cancel()

	if serr := a.Otel.Shutdown(shutdownCtx); serr != nil {
		log.Warn().Err(serr).Msg("Failed to flush traces")
	}

	return err //nolint:wrapcheck
}

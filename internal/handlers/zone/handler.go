package zone

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tzbot/infras/otel"
	"tzbot/internal/domains/zone/model"
	"tzbot/internal/domains/zone/model/dto"
	"tzbot/internal/domains/zone/service"
	"tzbot/shared/constant"
	"tzbot/shared/failure"
	"tzbot/shared/logger"
	"tzbot/shared/validator"
	"tzbot/transport/http/middleware"
	"tzbot/transport/http/response"
)

type Handler struct {
	service    service.Zone
	middleware middleware.AppMiddleware
	validate   *validator.Validator
	otel       otel.Otel
}

func New(service service.Zone, middleware middleware.AppMiddleware, validate *validator.Validator, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		validate:   validate,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/guilds/{"+constant.RequestParamGuildID+"}", func(routerGroup chi.Router) {
		routerGroup.Use(handler.middleware.RateLimit())

		routerGroup.Get("/entries", handler.GetEntries)
		routerGroup.With(handler.middleware.APIKey).Post("/entries", handler.CreateEntry)
		routerGroup.Get("/report", handler.GetReport)
	})
}

// GetEntries lists a guild's entries in insertion order.
// @Router /v1/guilds/{guildID}/entries [get]
func (handler *Handler) GetEntries(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEntries")
	defer scope.End()

	guildID, err := guildParam(request)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, handler.service.Entries(ctx, guildID))
}

// CreateEntry registers a person's timezone for a guild.
// @Router /v1/guilds/{guildID}/entries [post]
// @Security ApiKeyAuth
func (handler *Handler) CreateEntry(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateEntry")
	defer scope.End()

	guildID, err := guildParam(request)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	body := dto.CreateEntryRequest{}
	if err = validator.Decode(handler.validate, request.Body, &body); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	req := body.ToRegisterRequest(guildID)

	if err = handler.service.Register(ctx, req); err != nil {
		scope.TraceError(err)
		logger.Ctx(ctx).Error().Err(err).Msg("failed to register entry")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusCreated, fmt.Sprintf("Added %s to %s", req.Person, req.Timezone))
}

// GetReport renders the guild's current local times. When some entries could
// not be resolved the partial report is still sent, with status 422.
// @Router /v1/guilds/{guildID}/report [get]
func (handler *Handler) GetReport(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReport")
	defer scope.End()

	guildID, err := guildParam(request)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Report(ctx, guildID)
	if err != nil {
		scope.TraceError(err)
		response.WithJSON(writer, failure.GetCode(err), res)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

func guildParam(request *http.Request) (model.GuildID, error) {
	guildID, err := model.ParseGuildID(chi.URLParam(request, constant.RequestParamGuildID))
	if err != nil || guildID == 0 {
		return 0, failure.InvalidGuildParam
	}

	return guildID, nil
}

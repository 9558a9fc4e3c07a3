package health

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"tzbot/transport/http/response"
)

// State reports whether the server still accepts work.
type State interface {
	Ready() bool
}

type Handler struct {
	state State
}

func New(state State) Handler {
	return Handler{state: state}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/health", handler.Health)
}

// Health answers 200 while the server is ready and 503 once shutdown begins.
// @Router /health [get]
func (handler *Handler) Health(writer http.ResponseWriter, _ *http.Request) {
	if handler.state != nil && !handler.state.Ready() {
		response.WithPreparingShutdown(writer)

		return
	}

	response.WithMessage(writer, http.StatusOK, "OK")
}

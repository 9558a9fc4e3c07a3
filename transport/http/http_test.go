package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"tzbot/config"
	otelMocks "tzbot/infras/otel/mocks"
	"tzbot/internal/domains/zone/model"
	"tzbot/internal/domains/zone/model/dto"
	serviceMocks "tzbot/internal/domains/zone/service/mocks"
	"tzbot/internal/handlers/zone"
	"tzbot/shared/cache"
	"tzbot/shared/constant"
	"tzbot/shared/timezone"
	"tzbot/shared/validator"
	"tzbot/transport/http/middleware"
	"tzbot/transport/http/router"
)

func newTestHTTP(t *testing.T, svc *serviceMocks.MockZone) *HTTP {
	t.Helper()

	ot := otelMocks.NewOtel()
	cfg := &config.Config{}
	cfg.App.Name = "tzbot"
	cfg.App.CORS.Enable = true
	cfg.App.CORS.AllowedOrigins = []string{"*"}

	validate, err := validator.New(timezone.New(timezone.EmbeddedNames()))
	require.NoError(t, err)

	mw := middleware.NewAppMiddleware(ot, cfg, cache.NewRedisCache(nil, ot))
	r := router.New(router.DomainHandlers{Zone: zone.New(svc, mw, validate, ot)})

	return New(cfg, r, mw)
}

func TestHealthFollowsServerState(t *testing.T) {
	h := newTestHTTP(t, serviceMocks.NewMockZone(gomock.NewController(t)))
	handler := h.Handler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(constant.RequestHeaderRequestID))

	h.setState(ServerStateInGracePeriod)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.False(t, h.Ready())
}

func TestVersionedRoutesMounted(t *testing.T) {
	svc := serviceMocks.NewMockZone(gomock.NewController(t))
	svc.EXPECT().Entries(gomock.Any(), model.GuildID(7)).Return(dto.EntriesResponse{GuildID: "7", Entries: []dto.EntryResponse{}})

	rec := httptest.NewRecorder()
	newTestHTTP(t, svc).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/guilds/7/entries", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"guild_id":"7","entries":[]}}`, rec.Body.String())
}

func TestServeDisabled(t *testing.T) {
	h := newTestHTTP(t, serviceMocks.NewMockZone(gomock.NewController(t)))
	h.Config.Server.Enable = false

	assert.NoError(t, h.Serve(t.Context()))
}

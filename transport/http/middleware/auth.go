package middleware

import (
	"crypto/subtle"
	"net/http"

	"tzbot/shared/constant"
	"tzbot/shared/failure"
	"tzbot/transport/http/response"
)

// APIKey guards write endpoints. With no key configured every request is refused.
func (a *appMiddleware) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, scope := a.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, "api_key.middleware")
		defer scope.End()

		expected := a.config.App.APIKey
		apiKey := r.Header.Get(constant.RequestHeaderAPIKey)

		if expected == "" || subtle.ConstantTimeCompare([]byte(apiKey), []byte(expected)) != 1 {
			scope.TraceError(failure.UnauthorizedError)
			response.WithError(w, failure.UnauthorizedError)

			return
		}

		next.ServeHTTP(w, r)
	})
}

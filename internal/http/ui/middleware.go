package ui

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/slok/tsplot/internal/log"
)

// logMiddleware sets the request ID on the context log values and logs every
// served request.
func (u ui) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := u.logger.SetValuesOnCtx(r.Context(), log.Kv{
			"request-id": middleware.GetReqID(r.Context()),
		})
		logger := u.logger.WithCtxValues(ctx).WithValues(log.Kv{
			"method": r.Method,
			"path":   r.URL.Path,
		})

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r.WithContext(ctx))

		logger.WithValues(log.Kv{
			"status":   ww.Status(),
			"bytes":    ww.BytesWritten(),
			"duration": time.Since(start).String(),
		}).Debugf("Request served")
	})
}

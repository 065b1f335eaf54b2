package ui

import (
	"net/http"

	"github.com/slok/tsplot/internal/http/backend/app"
)

func (u ui) handlerDataJSON() http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		docResp, err := u.chartApp.GetDocument(ctx, app.GetDocumentRequest{})
		if err != nil {
			u.logger.WithCtxValues(ctx).Errorf("could not get charts document: %s", err)
			http.Error(w, "could not get charts document", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(docResp.Data)
	})
}

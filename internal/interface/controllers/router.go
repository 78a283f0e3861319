package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"pdfcompressor/internal/domain/repositories"
)

// NewRouter создает маршрутизатор HTTP сервиса
func NewRouter(controller *HTTPController, logger repositories.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", controller.Health)
	r.Post("/compressPdf", controller.CompressPDF)
	r.Get("/logs", controller.ViewLogs)

	return r
}

// RequestLogger пишет в журнал строку на каждый обработанный запрос
func RequestLogger(logger repositories.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			defer func() {
				if logger == nil {
					return
				}
				logger.Info("%s %s %d %dB %s [%s] req=%s",
					r.Method,
					r.URL.Path,
					ww.Status(),
					ww.BytesWritten(),
					time.Since(start).Round(time.Millisecond),
					r.RemoteAddr,
					chimiddleware.GetReqID(r.Context()),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

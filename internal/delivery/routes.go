package delivery

import (
	"time"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
)

func RegisterRoutes(
	r chi.Router,
	hConvert *ConvertHandler,
	hReport *ReportHandler,
) {
	r.Route("/", func(pr chi.Router) {
		pr.Use(httputil.RecoverMiddleware)

		// conversions fork external processes, keep the door narrow
		pr.With(httprate.LimitByIP(20, time.Minute)).
			Post("/upload", hConvert.Upload)

		if hReport != nil {
			pr.Post("/reports/{session_id}", hReport.Generate)
		}
	})
}

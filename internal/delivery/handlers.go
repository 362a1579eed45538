package delivery

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-chi/chi/v5"

	"github.com/Vovarama1992/slide_uploader/internal/convert"
	"github.com/Vovarama1992/slide_uploader/internal/publish"
)

type ConvertHandler struct {
	converter      convert.Converter
	log            *logger.ZapLogger
	maxUploadBytes int64
}

func NewConvertHandler(converter convert.Converter, log *logger.ZapLogger, maxUploadBytes int64) *ConvertHandler {
	return &ConvertHandler{
		converter:      converter,
		log:            log,
		maxUploadBytes: maxUploadBytes,
	}
}

// Upload accepts a multipart PDF/PPTX, converts every page to a PNG in the
// store and answers with the ordered public URLs.
func (h *ConvertHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		h.log.Log(logger.LogEntry{Level: "warn", Message: "invalid multipart", Error: err})
		http.Error(w, "invalid multipart: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "warn", Message: "missing file", Error: err})
		http.Error(w, "missing file: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	res, err := h.converter.Convert(r.Context(), convert.SourceDocument{
		Reader:      file,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
	})
	if err != nil {
		h.writeConvertError(w, header.Filename, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"image_urls": res.URLs})
}

func (h *ConvertHandler) writeConvertError(w http.ResponseWriter, filename string, err error) {
	var pubErr *publish.PublicationError

	switch {
	case errors.Is(err, convert.ErrUnsupportedType):
		http.Error(w, "unsupported file type", http.StatusBadRequest)
	case errors.Is(err, convert.ErrTimeout):
		h.log.Log(logger.LogEntry{Level: "error", Message: "conversion timed out: " + filename, Error: err})
		http.Error(w, "conversion timed out", http.StatusGatewayTimeout)
	case errors.As(err, &pubErr):
		h.log.Log(logger.LogEntry{Level: "error", Message: "upload to store failed: " + filename, Error: err})
		http.Error(w, "upload to store failed: "+err.Error(), http.StatusInternalServerError)
	case errors.Is(err, context.Canceled):
		// client went away, nothing to answer
		h.log.Log(logger.LogEntry{Level: "warn", Message: "conversion canceled: " + filename, Error: err})
	default:
		h.log.Log(logger.LogEntry{Level: "error", Message: "conversion failed: " + filename, Error: err})
		http.Error(w, "conversion failed: "+err.Error(), http.StatusInternalServerError)
	}
}

type ReportService interface {
	BuildAndPublish(ctx context.Context, sessionID string) (string, error)
}

type ReportHandler struct {
	reports ReportService
	log     *logger.ZapLogger
}

func NewReportHandler(reports ReportService, log *logger.ZapLogger) *ReportHandler {
	return &ReportHandler{reports: reports, log: log}
}

func (h *ReportHandler) Generate(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session_id")
	if sessionID == "" {
		http.Error(w, "missing session_id", http.StatusBadRequest)
		return
	}

	url, err := h.reports.BuildAndPublish(r.Context(), sessionID)
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "report build failed: " + sessionID, Error: err})
		http.Error(w, "failed to build report: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"report_url": url})
}

package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	rows      RowSource
	publisher ArtifactPublisher
}

func NewService(rows RowSource, publisher ArtifactPublisher) *Service {
	return &Service{rows: rows, publisher: publisher}
}

// BuildAndPublish serializes the session's rows to CSV and stores the
// artifact under reports/<sessionID>/<uuid>.csv, returning its public URL.
func (s *Service) BuildAndPublish(ctx context.Context, sessionID string) (string, error) {
	header, rows, err := s.rows.SessionRows(ctx, sessionID)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return "", fmt.Errorf("write csv rows: %w", err)
	}

	key := fmt.Sprintf("reports/%s/%s.csv", sessionID, uuid.NewString())
	return s.publisher.PublishArtifact(ctx, key, buf.Bytes(), "text/csv")
}

package report

import "context"

// RowSource supplies the tabular data for one session.
type RowSource interface {
	SessionRows(ctx context.Context, sessionID string) (header []string, rows [][]string, err error)
}

type ArtifactPublisher interface {
	PublishArtifact(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

package report

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type repo struct {
	db *sql.DB
}

func NewSessionRepo(db *sql.DB) RowSource {
	return &repo{db: db}
}

func (r *repo) SessionRows(ctx context.Context, sessionID string) ([]string, [][]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT occurred_at, slide_index, event_type, detail
		 FROM session_events
		 WHERE session_id = $1
		 ORDER BY occurred_at`,
		sessionID,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("query session events: %w", err)
	}
	defer rows.Close()

	var out [][]string
	for rows.Next() {
		var (
			occurredAt time.Time
			slideIndex int
			eventType  string
			detail     sql.NullString
		)
		if err := rows.Scan(&occurredAt, &slideIndex, &eventType, &detail); err != nil {
			return nil, nil, fmt.Errorf("scan session event: %w", err)
		}
		out = append(out, []string{
			occurredAt.Format(time.RFC3339),
			fmt.Sprintf("%d", slideIndex),
			eventType,
			detail.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate session events: %w", err)
	}

	header := []string{"occurred_at", "slide_index", "event_type", "detail"}
	return header, out, nil
}

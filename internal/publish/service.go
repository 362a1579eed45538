package publish

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Vovarama1992/slide_uploader/internal/convert"
)

// PublicationError wraps a store upload failure.
type PublicationError struct {
	Key string
	Err error
}

func (e *PublicationError) Error() string {
	return fmt.Sprintf("upload %s failed: %v", e.Key, e.Err)
}

func (e *PublicationError) Unwrap() error { return e.Err }

type Service struct {
	store StorageClient
}

func NewService(store StorageClient) *Service {
	return &Service{store: store}
}

// PublishPages uploads pages in order under images/<groupID>/ and returns
// the public URLs in the same order. Each local file is deleted right
// after its upload succeeds, which bounds disk usage to the unsent tail.
// The first failed upload aborts the whole call; objects already in the
// store for this group stay there, but no local page file survives.
func (s *Service) PublishPages(ctx context.Context, pages []convert.Page, groupID string) ([]string, error) {
	// already-uploaded files are gone by now, Remove tolerates that
	defer func() {
		for _, p := range pages {
			_ = os.Remove(p.Path)
		}
	}()

	urls := make([]string, 0, len(pages))
	for _, p := range pages {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		key := fmt.Sprintf("images/%s/%s", groupID, filepath.Base(p.Path))

		f, err := os.Open(p.Path)
		if err != nil {
			return nil, &PublicationError{Key: key, Err: err}
		}

		info, err := f.Stat()
		if err != nil {
			f.Close()
			return nil, &PublicationError{Key: key, Err: err}
		}

		url, err := s.store.PutObject(ctx, key, f, info.Size(), "image/png")
		f.Close()
		if err != nil {
			return nil, &PublicationError{Key: key, Err: err}
		}

		_ = os.Remove(p.Path)
		urls = append(urls, url)
	}

	return urls, nil
}

// PublishArtifact stores a non-image artifact (a CSV report) under key.
func (s *Service) PublishArtifact(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	url, err := s.store.PutObject(ctx, key, bytes.NewReader(data), int64(len(data)), contentType)
	if err != nil {
		return "", &PublicationError{Key: key, Err: err}
	}
	return url, nil
}

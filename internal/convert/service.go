package convert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
)

const (
	MimePDF  = "application/pdf"
	MimePPTX = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
)

// Service drives one conversion: validate type, stage to disk, render
// (transcoding first for decks), publish, clean up. The staged file and
// any intermediate PDF never outlive the call.
type Service struct {
	stager     *Stager
	renderer   PageRenderer
	transcoder DeckTranscoder
	publisher  Publisher
	sem        *semaphore.Weighted
	timeout    time.Duration
}

func NewService(
	stager *Stager,
	renderer PageRenderer,
	transcoder DeckTranscoder,
	publisher Publisher,
	maxParallel int64,
	timeout time.Duration,
) *Service {
	if maxParallel < 1 {
		maxParallel = 1
	}
	return &Service{
		stager:     stager,
		renderer:   renderer,
		transcoder: transcoder,
		publisher:  publisher,
		sem:        semaphore.NewWeighted(maxParallel),
		timeout:    timeout,
	}
}

func (s *Service) Convert(ctx context.Context, src SourceDocument) (*Result, error) {
	// type gate comes before any disk I/O
	switch src.ContentType {
	case MimePDF, MimePPTX:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, src.ContentType)
	}

	staged, err := s.stager.Stage(src.Reader, src.Filename)
	if err != nil {
		return nil, err
	}
	defer s.stager.Remove(staged)

	pages, err := s.render(ctx, staged, src.ContentType)
	if err != nil {
		return nil, err
	}

	groupID := uuid.NewString()

	urls, err := s.publisher.PublishPages(ctx, pages, groupID)
	if err != nil {
		return nil, err
	}

	return &Result{GroupID: groupID, URLs: urls, Pages: len(urls)}, nil
}

// render holds a semaphore slot for the whole external-process phase so
// in-flight conversions can't starve the accept loop.
func (s *Service) render(ctx context.Context, staged, contentType string) ([]Page, error) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer s.sem.Release(1)

	cctx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		cctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	pdfPath := staged
	if contentType == MimePPTX {
		out, err := s.transcoder.Transcode(cctx, staged, filepath.Dir(staged))
		if err != nil {
			return nil, err
		}
		pdfPath = out
		// the intermediate PDF is ours, the upload only keeps the images
		defer os.Remove(out)
	}

	pages, err := s.renderer.RenderPages(cctx, pdfPath)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, fmt.Errorf("%w: render", ErrTimeout)
		}
		return nil, err
	}

	return pages, nil
}

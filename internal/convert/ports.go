package convert

import (
	"context"
	"io"
)

// Page is one rasterized page on local disk. Index is the source page
// order; the _<index>.png file name is derived from it, never parsed back.
type Page struct {
	Index int
	Path  string
}

type SourceDocument struct {
	Reader      io.Reader
	Filename    string
	ContentType string
}

type Result struct {
	GroupID string
	URLs    []string
	Pages   int
}

type PageRenderer interface {
	RenderPages(ctx context.Context, pdfPath string) ([]Page, error)
}

type DeckTranscoder interface {
	Transcode(ctx context.Context, deckPath, outDir string) (pdfPath string, err error)
}

// Publisher consumes the local page files: it deletes each one after a
// successful upload and leaves none behind on failure.
type Publisher interface {
	PublishPages(ctx context.Context, pages []Page, groupID string) ([]string, error)
}

type Converter interface {
	Convert(ctx context.Context, src SourceDocument) (*Result, error)
}

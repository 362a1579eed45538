package convert

import (
	"context"
	"fmt"
	"image/png"
	"os"

	"github.com/gen2brain/go-fitz"
)

// FitzRenderer rasterizes PDF pages through MuPDF.
type FitzRenderer struct{}

func NewFitzRenderer() *FitzRenderer {
	return &FitzRenderer{}
}

// RenderPages writes one PNG per page next to the source file, named
// <pdfPath>_<index>.png. On any failure it removes whatever pages it
// already wrote: a failed render produces nothing.
func (r *FitzRenderer) RenderPages(ctx context.Context, pdfPath string) ([]Page, error) {
	doc, err := fitz.New(pdfPath)
	if err != nil {
		return nil, &ConversionError{Stage: "render", Err: fmt.Errorf("open pdf: %w", err)}
	}
	defer doc.Close()

	count := doc.NumPage()
	if count == 0 {
		return nil, &ConversionError{Stage: "render", Err: fmt.Errorf("pdf has no pages")}
	}

	pages := make([]Page, 0, count)
	for i := 0; i < count; i++ {
		select {
		case <-ctx.Done():
			removePages(pages)
			return nil, ctx.Err()
		default:
		}

		img, err := doc.Image(i)
		if err != nil {
			removePages(pages)
			return nil, &ConversionError{Stage: "render", Err: fmt.Errorf("page %d: %w", i, err)}
		}

		out := fmt.Sprintf("%s_%d.png", pdfPath, i)
		f, err := os.Create(out)
		if err != nil {
			removePages(pages)
			return nil, &ConversionError{Stage: "render", Err: err}
		}
		if err := png.Encode(f, img); err != nil {
			f.Close()
			os.Remove(out)
			removePages(pages)
			return nil, &ConversionError{Stage: "render", Err: fmt.Errorf("encode page %d: %w", i, err)}
		}
		if err := f.Close(); err != nil {
			os.Remove(out)
			removePages(pages)
			return nil, &ConversionError{Stage: "render", Err: err}
		}

		pages = append(pages, Page{Index: i, Path: out})
	}

	return pages, nil
}

func removePages(pages []Page) {
	for _, p := range pages {
		_ = os.Remove(p.Path)
	}
}

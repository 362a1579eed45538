package publish

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Vovarama1992/slide_uploader/internal/convert"
)

type fakeStore struct {
	keys   []string
	data   map[string][]byte
	failAt int // upload index that errors, -1 for never
}

func newFakeStore(failAt int) *fakeStore {
	return &fakeStore{data: map[string][]byte{}, failAt: failAt}
}

func (f *fakeStore) PutObject(_ context.Context, key string, r io.Reader, _ int64, _ string) (string, error) {
	if f.failAt >= 0 && len(f.keys) == f.failAt {
		return "", errors.New("store down")
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.keys = append(f.keys, key)
	f.data[key] = b
	return "https://store.example/decks/" + key, nil
}

func makePages(t *testing.T, n int) []convert.Page {
	t.Helper()
	dir := t.TempDir()
	pages := make([]convert.Page, 0, n)
	for i := 0; i < n; i++ {
		path := filepath.Join(dir, fmt.Sprintf("staged.pdf_%d.png", i))
		if err := os.WriteFile(path, []byte(fmt.Sprintf("png-%d", i)), 0o644); err != nil {
			t.Fatalf("write page: %v", err)
		}
		pages = append(pages, convert.Page{Index: i, Path: path})
	}
	return pages
}

func TestPublishPagesKeepsOrderAndCleansUp(t *testing.T) {
	store := newFakeStore(-1)
	svc := NewService(store)
	pages := makePages(t, 3)

	urls, err := svc.PublishPages(context.Background(), pages, "group-1")
	if err != nil {
		t.Fatalf("publish: %v", err)
	}

	if len(urls) != 3 {
		t.Fatalf("got %d urls, want 3", len(urls))
	}
	for i, url := range urls {
		want := fmt.Sprintf("images/group-1/staged.pdf_%d.png", i)
		if !strings.HasSuffix(url, want) {
			t.Fatalf("url[%d] = %s, want suffix %s", i, url, want)
		}
		if got := string(store.data[want]); got != fmt.Sprintf("png-%d", i) {
			t.Fatalf("stored bytes for %s = %q", want, got)
		}
	}

	for _, p := range pages {
		if _, err := os.Stat(p.Path); !os.IsNotExist(err) {
			t.Fatalf("local page survived publish: %s", p.Path)
		}
	}
}

func TestPublishPagesAbortsOnFirstFailure(t *testing.T) {
	store := newFakeStore(1)
	svc := NewService(store)
	pages := makePages(t, 3)

	urls, err := svc.PublishPages(context.Background(), pages, "group-1")

	var pubErr *PublicationError
	if !errors.As(err, &pubErr) {
		t.Fatalf("err = %v, want PublicationError", err)
	}
	if urls != nil {
		t.Fatalf("partial urls returned: %v", urls)
	}
	if len(store.keys) != 1 {
		t.Fatalf("uploads after failure: %v", store.keys)
	}
	// the already-uploaded object stays in the store, local files do not
	for _, p := range pages {
		if _, err := os.Stat(p.Path); !os.IsNotExist(err) {
			t.Fatalf("local page survived failed publish: %s", p.Path)
		}
	}
}

func TestPublishArtifact(t *testing.T) {
	store := newFakeStore(-1)
	svc := NewService(store)

	url, err := svc.PublishArtifact(context.Background(), "reports/sess-1/out.csv", []byte("a,b\n1,2\n"), "text/csv")
	if err != nil {
		t.Fatalf("publish artifact: %v", err)
	}
	if !strings.HasSuffix(url, "reports/sess-1/out.csv") {
		t.Fatalf("url = %s", url)
	}
	if string(store.data["reports/sess-1/out.csv"]) != "a,b\n1,2\n" {
		t.Fatalf("stored artifact bytes differ")
	}
}

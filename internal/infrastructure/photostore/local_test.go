package photostore

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestSaveAndOpen(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocal() error = %v", err)
	}
	ctx := context.Background()

	ref, err := store.Save(ctx, "fence photo.JPG", strings.NewReader("image-bytes"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if !strings.HasSuffix(ref, ".jpg") {
		t.Fatalf("Save() ref = %q, want .jpg suffix", ref)
	}
	if strings.ContainsAny(ref, `/\`) {
		t.Fatalf("Save() ref = %q contains path separators", ref)
	}

	f, err := store.Open(ctx, ref)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("read photo: %v", err)
	}
	if string(data) != "image-bytes" {
		t.Fatalf("photo content = %q", data)
	}
}

func TestOpenRejectsTraversal(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocal() error = %v", err)
	}
	ctx := context.Background()

	for _, ref := range []string{"", "../secret", "a/b.jpg", `a\b.jpg`, "..", "x..y"} {
		if _, err := store.Open(ctx, ref); err == nil {
			t.Fatalf("Open(%q) error = nil, want error", ref)
		}
	}
}

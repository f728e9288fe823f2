package soundfolio

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// makeFileHeaders builds real multipart file headers for a single field by
// writing and re-parsing a multipart body, the same shape Echo hands to
// handlers.
func makeFileHeaders(t *testing.T, field string, files map[string]string) []*multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, content := range files {
		fw, err := w.CreateFormFile(field, name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("parse multipart form: %v", err)
	}
	t.Cleanup(func() { form.RemoveAll() })
	return form.File[field]
}

func TestBlobStoreSave(t *testing.T) {
	dir := t.TempDir()
	b := NewBlobStore(dir, "/uploads")

	fhs := makeFileHeaders(t, "audio", map[string]string{"Intro Episode.MP3": "audio-bytes"})
	ref, err := b.Save(fhs[0])
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if !strings.HasPrefix(ref, "/uploads/") {
		t.Errorf("ref = %q, want /uploads/ prefix", ref)
	}
	if !strings.HasSuffix(ref, "-intro-episode.mp3") {
		t.Errorf("ref = %q, want sanitized original name suffix", ref)
	}

	data, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(ref, "/uploads/")))
	if err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	if string(data) != "audio-bytes" {
		t.Errorf("stored content = %q, want %q", data, "audio-bytes")
	}
}

func TestBlobStoreSaveUniqueNames(t *testing.T) {
	dir := t.TempDir()
	b := NewBlobStore(dir, "/uploads")

	fhs := makeFileHeaders(t, "audio", map[string]string{"same.mp3": "one"})
	ref1, err := b.Save(fhs[0])
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	ref2, err := b.Save(fhs[0])
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if ref1 == ref2 {
		t.Errorf("two saves of the same filename produced the same ref %q", ref1)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read uploads dir: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("uploads dir holds %d files, want 2", len(entries))
	}
}

func TestBlobStoreSaveCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	b := NewBlobStore(dir, "/uploads")

	fhs := makeFileHeaders(t, "sources", map[string]string{"doc.pdf": "pdf"})
	if _, err := b.Save(fhs[0]); err != nil {
		t.Fatalf("Save into missing dir failed: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("uploads dir was not created: %v", err)
	}
}

func TestBlobStoreSaveAllOrder(t *testing.T) {
	dir := t.TempDir()
	b := NewBlobStore(dir, "/uploads")

	// Build the field in a fixed order with distinct names.
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, name := range []string{"first.pdf", "second.pdf", "third.pdf"} {
		fw, err := w.CreateFormFile("sources", name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write([]byte(name)); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("parse multipart form: %v", err)
	}
	defer form.RemoveAll()

	refs, err := b.SaveAll(form.File["sources"])
	if err != nil {
		t.Fatalf("SaveAll failed: %v", err)
	}
	if len(refs) != 3 {
		t.Fatalf("SaveAll returned %d refs, want 3", len(refs))
	}
	for i, want := range []string{"first.pdf", "second.pdf", "third.pdf"} {
		if !strings.HasSuffix(refs[i], "-"+want) {
			t.Errorf("refs[%d] = %q, want suffix -%s", i, refs[i], want)
		}
	}
}

func TestBlobStoreSaveAllEmpty(t *testing.T) {
	b := NewBlobStore(t.TempDir(), "/uploads")
	refs, err := b.SaveAll(nil)
	if err != nil {
		t.Fatalf("SaveAll(nil) failed: %v", err)
	}
	if len(refs) != 0 {
		t.Errorf("SaveAll(nil) = %v, want no refs", refs)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"episode.mp3", "episode.mp3"},
		{"My Notes.PDF", "my-notes.pdf"},
		{"../../etc/passwd", "passwd"},
		{"weird  name!!.txt", "weird-name.txt"},
		{".mp3", "file.mp3"},
		{"noext", "noext"},
	}
	for _, tt := range tests {
		if got := sanitizeFilename(tt.input); got != tt.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

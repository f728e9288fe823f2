package soundfolio

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// BlobStore persists uploaded files under a root directory and hands back
// public reference paths for them. Stored names carry a random token so
// concurrent uploads of identically named files never collide.
type BlobStore struct {
	dir    string
	prefix string
}

// NewBlobStore creates a BlobStore writing into dir. Stored files are
// referenced as prefix/name.
func NewBlobStore(dir, prefix string) *BlobStore {
	return &BlobStore{dir: dir, prefix: prefix}
}

// Save writes one uploaded file under a generated unique name and returns
// its reference path. The root directory is created on first use.
func (b *BlobStore) Save(file *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(b.dir, 0o755); err != nil {
		return "", fmt.Errorf("create uploads dir: %w", err)
	}
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := uuid.NewString() + "-" + sanitizeFilename(file.Filename)
	dst, err := os.Create(filepath.Join(b.dir, name))
	if err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return "", fmt.Errorf("write upload: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return path.Join(b.prefix, name), nil
}

// SaveAll stores every file and returns their reference paths in input
// order. The first failure aborts the batch; files already written stay on
// disk as orphans.
func (b *BlobStore) SaveAll(files []*multipart.FileHeader) ([]string, error) {
	refs := make([]string, 0, len(files))
	for _, f := range files {
		ref, err := b.Save(f)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// sanitizeFilename keeps the original name readable in the stored key:
// the base is slugified and the extension lowercased.
func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	ext := strings.ToLower(filepath.Ext(base))
	slug := Slugify(strings.TrimSuffix(base, ext))
	if slug == "" {
		slug = "file"
	}
	return slug + ext
}

package render

import (
	"context"
	"strings"

	"github.com/minio/highwayhash"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
)

var fingerprintKey = []byte("0123456789ABCDEF0123456789ABCDEF")

// Fingerprint returns a 64-bit content hash used to detect unchanged output.
func Fingerprint(data []byte) (uint64, error) {
	hash, err := highwayhash.New64(fingerprintKey)
	if err != nil {
		return 0, err
	}
	_, err = hash.Write(data)
	return hash.Sum64(), err
}

// Writer persists rendered documents.
type Writer struct {
	fs afs.Service
}

// NewWriter creates a writer backed by the supplied file service; nil falls
// back to the default service.
func NewWriter(fs afs.Service) *Writer {
	if fs == nil {
		fs = afs.New()
	}
	return &Writer{fs: fs}
}

// Write replaces the file at URL with content, reporting whether the content
// differs from what was previously on disk. Rewriting is skipped when the
// existing file carries an identical fingerprint, which keeps repeated runs
// byte-identical without touching the file.
func (w *Writer) Write(ctx context.Context, URL string, content string) (bool, error) {
	fingerprint, err := Fingerprint([]byte(content))
	if err != nil {
		return false, err
	}
	if ok, _ := w.fs.Exists(ctx, URL); ok {
		if previous, err := w.fs.DownloadWithURL(ctx, URL); err == nil {
			if prior, err := Fingerprint(previous); err == nil && prior == fingerprint {
				return false, nil
			}
		}
	}
	if err := w.fs.Upload(ctx, URL, file.DefaultFileOsMode, strings.NewReader(content)); err != nil {
		return false, err
	}
	return true, nil
}

package render_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/pomgen/render"
)

func TestWriterWriteAndOverwrite(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	target := filepath.Join(dir, "pom.xml")
	writer := render.NewWriter(nil)

	changed, err := writer.Write(ctx, target, "first")
	assert.NoError(t, err)
	assert.True(t, changed)

	content, err := os.ReadFile(target)
	assert.NoError(t, err)
	assert.Equal(t, "first", string(content))

	// identical content leaves the file untouched
	changed, err = writer.Write(ctx, target, "first")
	assert.NoError(t, err)
	assert.False(t, changed)

	// different content replaces the prior file
	changed, err = writer.Write(ctx, target, "second")
	assert.NoError(t, err)
	assert.True(t, changed)

	content, err = os.ReadFile(target)
	assert.NoError(t, err)
	assert.Equal(t, "second", string(content))
}

func TestFingerprint(t *testing.T) {
	a, err := render.Fingerprint([]byte("content"))
	assert.NoError(t, err)
	b, err := render.Fingerprint([]byte("content"))
	assert.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := render.Fingerprint([]byte("other"))
	assert.NoError(t, err)
	assert.NotEqual(t, a, c)
}

package img2pdf

import (
	"errors"
	"image"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreview_ShouldCapLongestEdge(t *testing.T) {
	dir := t.TempDir()
	p := New(Options{})
	p.Add(
		writePNG(t, dir, "wide.png", opaqueNRGBA(1000, 500)),
		writePNG(t, dir, "tall.png", opaqueNRGBA(120, 600)),
	)

	thumb, err := p.Preview(0)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(300, 150), thumb.Bounds().Size())

	thumb, err = p.Preview(1)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(60, 300), thumb.Bounds().Size())
}

func TestPreview_ShouldNotUpscale(t *testing.T) {
	dir := t.TempDir()
	p := New(Options{ThumbSize: 64})
	p.Add(writeJPEG(t, dir, "small.jpg", 40, 20))

	thumb, err := p.Preview(0)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(40, 20), thumb.Bounds().Size())
}

func TestPreview_Errors(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "gone.png")
	p := New(Options{})
	p.Add(missing)

	_, err := p.Preview(1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = p.Preview(0)
	var openErr *ImageOpenError
	require.True(t, errors.As(err, &openErr))
	assert.Equal(t, missing, openErr.Location)
	assert.Equal(t, 1, p.Len())
}

package img2pdf

import (
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/lvillar/gofpdf/reader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func writeJPEG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{uint8(x), uint8(y), 0x80, 0xff})
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, jpeg.Encode(f, img, &jpeg.Options{Quality: 90}))
	return path
}

func opaqueNRGBA(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
	return img
}

func pageSizes(t *testing.T, fname string) [][2]float64 {
	t.Helper()
	doc, err := reader.Open(fname)
	require.NoError(t, err)

	var sizes [][2]float64
	for i := 1; i <= doc.NumPages(); i++ {
		page, err := doc.Page(i)
		require.NoError(t, err)
		sizes = append(sizes, [2]float64{page.MediaBox.Width(), page.MediaBox.Height()})
	}
	return sizes
}

func TestPipeline_AssemblePageSizes(t *testing.T) {
	dir := t.TempDir()
	a := writePNG(t, dir, "a.png", opaqueNRGBA(100, 200))
	b := writeJPEG(t, dir, "b.jpg", 300, 100)

	p := New(Options{Dir: dir})
	p.Add(a, b)

	res, err := p.Assemble("mydoc")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "mydoc.pdf"), res.Output)
	require.Len(t, res.Pages, 2)
	assert.Equal(t, PageInfo{Number: 1, Source: a, Width: 100, Height: 200}, res.Pages[0])
	assert.Equal(t, PageInfo{Number: 2, Source: b, Width: 300, Height: 100}, res.Pages[1])

	assert.Equal(t, [][2]float64{{100, 200}, {300, 100}}, pageSizes(t, res.Output))
}

func TestPipeline_AssembleFollowsReordering(t *testing.T) {
	dir := t.TempDir()
	a := writePNG(t, dir, "a.png", opaqueNRGBA(10, 20))
	b := writePNG(t, dir, "b.png", opaqueNRGBA(30, 40))
	c := writePNG(t, dir, "c.png", opaqueNRGBA(50, 60))

	p := New(Options{Dir: dir})
	p.Add(a, b, c, a)
	p.MoveDown(0)
	p.MoveUp(3)

	res, err := p.Assemble("ordered.pdf")
	require.NoError(t, err)
	assert.Equal(t, [][2]float64{{30, 40}, {10, 20}, {10, 20}, {50, 60}}, pageSizes(t, res.Output))
}

func TestPipeline_AssembleEmptyCollection(t *testing.T) {
	dir := t.TempDir()
	p := New(Options{Dir: dir})

	_, err := p.Assemble("out")
	assert.ErrorIs(t, err, ErrEmptyCollection)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPipeline_AssembleBlankName(t *testing.T) {
	dir := t.TempDir()
	p := New(Options{Dir: dir})
	p.Add(writePNG(t, dir, "a.png", opaqueNRGBA(5, 5)))

	for _, name := range []string{"", "   ", "\t\n"} {
		_, err := p.Assemble(name)
		assert.ErrorIs(t, err, ErrEmptyName)
	}
}

func TestPipeline_OutputPath(t *testing.T) {
	p := New(Options{})
	cases := map[string]string{
		"mydoc":         "mydoc.pdf",
		"mydoc.pdf":     "mydoc.pdf",
		"MyDoc.PDF":     "MyDoc.PDF",
		" spaced ":      "spaced.pdf",
		"archive.pdf.x": "archive.pdf.x.pdf",
	}
	for in, want := range cases {
		got, err := p.OutputPath(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	p = New(Options{Dir: "/tmp/docs"})
	got, err := p.OutputPath("a")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/docs", "a.pdf"), got)

	got, err = p.OutputPath("/abs/b.pdf")
	require.NoError(t, err)
	assert.Equal(t, "/abs/b.pdf", got)
}

func TestPipeline_AssembleMissingImage(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.png")

	p := New(Options{Dir: dir})
	p.Add(writePNG(t, dir, "a.png", opaqueNRGBA(5, 5)), missing)

	_, err := p.Assemble("out")
	var openErr *ImageOpenError
	require.True(t, errors.As(err, &openErr))
	assert.Equal(t, missing, openErr.Location)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	assert.Equal(t, 2, p.Len())
	_, err = os.Stat(filepath.Join(dir, "out.pdf"))
	assert.True(t, os.IsNotExist(err))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestPipeline_AssembleUndecodableImage(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.png")
	require.NoError(t, os.WriteFile(bad, []byte("not an image"), 0644))

	p := New(Options{Dir: dir})
	p.Add(bad)

	_, err := p.Assemble("out")
	var openErr *ImageOpenError
	assert.True(t, errors.As(err, &openErr))
}

func TestPipeline_AssembleUnwritableDestination(t *testing.T) {
	dir := t.TempDir()
	p := New(Options{Dir: filepath.Join(dir, "does", "not", "exist")})
	p.Add(writePNG(t, dir, "a.png", opaqueNRGBA(5, 5)))

	_, err := p.Assemble("out")
	var writeErr *DocumentWriteError
	assert.True(t, errors.As(err, &writeErr))
}

func TestPipeline_AssembleConvertsColorModel(t *testing.T) {
	dir := t.TempDir()
	alpha := image.NewNRGBA(image.Rect(0, 0, 8, 4))
	gray := image.NewGray(image.Rect(0, 0, 4, 8))

	p := New(Options{Dir: dir})
	p.Add(
		writePNG(t, dir, "alpha.png", alpha),
		writePNG(t, dir, "gray.png", gray),
		writeJPEG(t, dir, "rgb.jpg", 6, 6),
	)

	res, err := p.Assemble("mixed")
	require.NoError(t, err)
	require.Len(t, res.Pages, 3)
	assert.True(t, res.Pages[0].Converted)
	assert.True(t, res.Pages[1].Converted)
	assert.False(t, res.Pages[2].Converted)
	assert.Equal(t, [][2]float64{{8, 4}, {4, 8}, {6, 6}}, pageSizes(t, res.Output))
}

func TestPipeline_AssembleRemoteImage(t *testing.T) {
	dir := t.TempDir()
	src := writePNG(t, dir, "remote.png", opaqueNRGBA(40, 30))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, src)
	}))
	defer srv.Close()

	p := New(Options{Dir: dir})
	p.Add(srv.URL + "/remote.png")

	res, err := p.Assemble("remote")
	require.NoError(t, err)
	assert.Equal(t, [][2]float64{{40, 30}}, pageSizes(t, res.Output))
}

func TestPipeline_CloneIsIndependent(t *testing.T) {
	p := New(Options{ThumbSize: 64})
	p.Add("a", "b")

	c := p.Clone()
	c.MoveDown(0)
	c.Add("c")

	assert.Equal(t, []string{"a", "b"}, p.Names())
	assert.Equal(t, []string{"b", "a", "c"}, c.Names())
	assert.Equal(t, 64, c.Options().ThumbSize)
}

func TestPipeline_DefaultOptions(t *testing.T) {
	opts := New(Options{}).Options()
	assert.Equal(t, DefaultThumbSize, opts.ThumbSize)
	assert.Equal(t, DefaultTimeout, opts.Timeout)
	assert.Equal(t, DefaultCreator, opts.Creator)
}

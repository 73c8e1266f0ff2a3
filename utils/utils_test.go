package utils

import (
	"bytes"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 4, 3))))
	return buf.Bytes()
}

func TestUtils_ShouldDownloadImage(t *testing.T) {
	data := pngBytes(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(data)
	}))
	defer srv.Close()

	f, err := DownloadImage(srv.URL+"/sample.png", time.Second)
	require.NoError(t, err)
	defer os.Remove(f.Name())
	defer f.Close()

	got, err := os.ReadFile(f.Name())
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestUtils_ShouldRejectNonImageDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>not an image</body></html>"))
	}))
	defer srv.Close()

	_, err := DownloadImage(srv.URL, time.Second)
	assert.Error(t, err)
}

func TestUtils_ShouldFailOnBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := DownloadImage(srv.URL+"/missing.png", time.Second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestUtils_ShouldBeValidUrl(t *testing.T) {
	assert.True(t, IsValidUrl("https://github.com/esimov/img2pdf/"))
	assert.True(t, IsValidUrl("http://localhost:8080/a.png"))
	assert.False(t, IsValidUrl("/home/user/image.png"))
	assert.False(t, IsValidUrl("C:\\images\\a.png"))
	assert.False(t, IsValidUrl("ftp://example.com/a.png"))
}

func TestUtils_ShouldDetectValidFileType(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "sample.png")
	require.NoError(t, os.WriteFile(fname, pngBytes(t), 0644))

	ctype, err := DetectContentType(fname)
	require.NoError(t, err)
	assert.True(t, strings.Contains(ctype, "image"), "got content type %v", ctype)
}

func TestUtils_HasExtension(t *testing.T) {
	assert.True(t, HasExtension("a/b/photo.JPG", DefaultExtensions))
	assert.True(t, HasExtension("scan.tiff", DefaultExtensions))
	assert.False(t, HasExtension("notes.txt", DefaultExtensions))
	assert.False(t, HasExtension("noext", DefaultExtensions))

	got := FilterExtensions([]string{"b.png", "a.txt", "c.gif"}, DefaultExtensions)
	assert.Equal(t, []string{"b.png", "c.gif"}, got)
}

func TestUtils_FormatTime(t *testing.T) {
	assert.Equal(t, "1.50s", FormatTime(1500*time.Millisecond))
	assert.Equal(t, "2m 5.00s", FormatTime(2*time.Minute+5*time.Second))
	assert.Equal(t, "1h 1m 1.00s", FormatTime(time.Hour+time.Minute+time.Second))
}

func TestUtils_DecorateText(t *testing.T) {
	assert.Equal(t, ErrorColor+"failed"+DefaultColor, DecorateText("failed", ErrorMessage))

	NoColor = true
	defer func() { NoColor = false }()
	assert.Equal(t, "failed", DecorateText("failed", ErrorMessage))
	assert.Equal(t, AppName+" done", StatusText("done", SuccessMessage))
}

func TestUtils_MinMax(t *testing.T) {
	assert.Equal(t, 2, Min(2, 5))
	assert.Equal(t, 5, Max(2, 5))
	assert.Equal(t, float32(1.5), Min(float32(3), float32(1.5)))
}

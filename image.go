package img2pdf

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"time"

	"github.com/esimov/img2pdf/utils"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Image types understood by the document writer.
const (
	typeJPG = "JPG"
	typePNG = "PNG"
)

// pageImage holds the encoded raster embedded into a single page.
type pageImage struct {
	data      []byte
	imgType   string
	width     int
	height    int
	converted bool
}

// readSource returns the raw bytes of the image. Remote images are downloaded
// into a temporary file which is removed once it has been read.
func readSource(loc string, timeout time.Duration) ([]byte, error) {
	if !utils.IsValidUrl(loc) {
		return os.ReadFile(loc)
	}
	f, err := utils.DownloadImage(loc, timeout)
	if err != nil {
		return nil, err
	}
	defer os.Remove(f.Name())
	defer f.Close()

	return os.ReadFile(f.Name())
}

// loadPage decodes the source image and prepares the raster for embedding.
// JPEG images stored in YCbCr are passed through untouched, everything
// else is converted to opaque RGB and encoded as PNG.
func loadPage(ref ImageRef, timeout time.Duration) (*pageImage, error) {
	data, err := readSource(ref.Location, timeout)
	if err != nil {
		return nil, &ImageOpenError{Location: ref.Location, Err: err}
	}
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &ImageOpenError{Location: ref.Location, Err: err}
	}
	b := src.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, &ImageOpenError{Location: ref.Location, Err: fmt.Errorf("empty image")}
	}

	page := &pageImage{
		width:     b.Dx(),
		height:    b.Dy(),
		converted: needsConversion(src),
	}
	if _, ok := src.(*image.YCbCr); ok && format == "jpeg" {
		page.data = data
		page.imgType = typeJPG
		return page, nil
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, imgToRGB(src)); err != nil {
		return nil, &ImageOpenError{Location: ref.Location, Err: fmt.Errorf("could not convert the image: %w", err)}
	}
	page.data = buf.Bytes()
	page.imgType = typePNG

	return page, nil
}

// needsConversion reports whether the image is not already in a full-color opaque model.
func needsConversion(img image.Image) bool {
	switch img.(type) {
	case *image.YCbCr:
		return false
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64:
		if o, ok := img.(interface{ Opaque() bool }); ok {
			return !o.Opaque()
		}
	}
	return true
}

// imgToRGB converts any image type to an opaque *image.RGBA with min-point at (0, 0).
// The alpha channel is dropped, the color components are kept as they are.
func imgToRGB(img image.Image) *image.RGBA {
	srcBounds := img.Bounds()
	srcMinX := srcBounds.Min.X
	srcMinY := srcBounds.Min.Y

	dstBounds := srcBounds.Sub(srcBounds.Min)
	dstW := dstBounds.Dx()
	dstH := dstBounds.Dy()
	dst := image.NewRGBA(dstBounds)

	switch src := img.(type) {
	case *image.NRGBA:
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			si := src.PixOffset(srcMinX, srcMinY+dstY)
			for dstX := 0; dstX < dstW; dstX++ {
				dst.Pix[di+0] = src.Pix[si+0]
				dst.Pix[di+1] = src.Pix[si+1]
				dst.Pix[di+2] = src.Pix[si+2]
				dst.Pix[di+3] = 0xff
				di += 4
				si += 4
			}
		}
	case *image.YCbCr:
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			for dstX := 0; dstX < dstW; dstX++ {
				srcX := srcMinX + dstX
				srcY := srcMinY + dstY
				siy := src.YOffset(srcX, srcY)
				sic := src.COffset(srcX, srcY)
				r, g, b := color.YCbCrToRGB(src.Y[siy], src.Cb[sic], src.Cr[sic])
				dst.Pix[di+0] = r
				dst.Pix[di+1] = g
				dst.Pix[di+2] = b
				dst.Pix[di+3] = 0xff
				di += 4
			}
		}
	default:
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			for dstX := 0; dstX < dstW; dstX++ {
				c := color.NRGBAModel.Convert(img.At(srcMinX+dstX, srcMinY+dstY)).(color.NRGBA)
				dst.Pix[di+0] = c.R
				dst.Pix[di+1] = c.G
				dst.Pix[di+2] = c.B
				dst.Pix[di+3] = 0xff
				di += 4
			}
		}
	}
	return dst
}

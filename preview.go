package img2pdf

import (
	"bytes"
	"image"

	"github.com/disintegration/imaging"
)

// Preview decodes the image at index i and returns a thumbnail whose longest edge
// does not exceed the configured thumbnail size. Smaller images are returned at
// their original size. A failing preview leaves the collection untouched.
func (p *Pipeline) Preview(i int) (image.Image, error) {
	ref, ok := p.At(i)
	if !ok {
		return nil, ErrIndexOutOfRange
	}
	data, err := readSource(ref.Location, p.opts.Timeout)
	if err != nil {
		return nil, &ImageOpenError{Location: ref.Location, Err: err}
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &ImageOpenError{Location: ref.Location, Err: err}
	}
	size := p.opts.ThumbSize

	return imaging.Fit(img, size, size, imaging.Lanczos), nil
}

package session

import (
	"fmt"
	"image"
	"time"

	"github.com/esimov/img2pdf"
	"github.com/patrickmn/go-cache"
)

// thumbCache keeps the decoded thumbnails, so that browsing the list
// does not decode the same image again.
type thumbCache struct {
	c *cache.Cache
}

func newThumbCache() *thumbCache {
	return &thumbCache{c: cache.New(10*time.Minute, 20*time.Minute)}
}

func (t *thumbCache) get(p *img2pdf.Pipeline, i int) (image.Image, error) {
	ref, ok := p.At(i)
	if !ok {
		return nil, img2pdf.ErrIndexOutOfRange
	}
	key := fmt.Sprintf("%s@%d", ref.Location, p.Options().ThumbSize)
	if v, found := t.c.Get(key); found {
		return v.(image.Image), nil
	}

	img, err := p.Preview(i)
	if err != nil {
		return nil, err
	}
	t.c.Set(key, img, cache.DefaultExpiration)

	return img, nil
}

func (t *thumbCache) len() int {
	return t.c.ItemCount()
}

func (t *thumbCache) flush() {
	t.c.Flush()
}

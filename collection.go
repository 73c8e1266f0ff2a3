package img2pdf

import "path/filepath"

// ImageRef is a handle to a source image. The location is either
// a local file path or an http(s) URL resolved at the time of use.
type ImageRef struct {
	Location string
}

// Name returns the base name of the image, used for listings.
func (r ImageRef) Name() string {
	return filepath.Base(r.Location)
}

// Collection is the ordered list of images. The order of the
// entries is the page order of the generated document.
type Collection struct {
	items []ImageRef
}

// Add appends the locations at the end of the collection in the order they are given.
// No validation is done at this stage, unreadable images are reported on use.
func (c *Collection) Add(locations ...string) {
	for _, loc := range locations {
		c.items = append(c.items, ImageRef{Location: loc})
	}
}

// Clear removes every entry.
func (c *Collection) Clear() {
	c.items = nil
}

// Remove deletes the entry at index i. It reports false if the index is invalid.
func (c *Collection) Remove(i int) bool {
	if !c.valid(i) {
		return false
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	return true
}

// MoveUp swaps the entry at index i with its predecessor and returns the
// new index of the moved entry. On the first entry or an invalid index
// the collection is left untouched and i is returned.
func (c *Collection) MoveUp(i int) int {
	if !c.valid(i) || i == 0 {
		return i
	}
	c.items[i-1], c.items[i] = c.items[i], c.items[i-1]
	return i - 1
}

// MoveDown swaps the entry at index i with its successor and returns the
// new index of the moved entry. On the last entry or an invalid index
// the collection is left untouched and i is returned.
func (c *Collection) MoveDown(i int) int {
	if !c.valid(i) || i == len(c.items)-1 {
		return i
	}
	c.items[i+1], c.items[i] = c.items[i], c.items[i+1]
	return i + 1
}

// Len returns the number of entries.
func (c *Collection) Len() int {
	return len(c.items)
}

// At returns the entry at index i.
func (c *Collection) At(i int) (ImageRef, bool) {
	if !c.valid(i) {
		return ImageRef{}, false
	}
	return c.items[i], true
}

// Items returns a copy of the entries.
func (c *Collection) Items() []ImageRef {
	items := make([]ImageRef, len(c.items))
	copy(items, c.items)
	return items
}

// Names returns the base names of the entries, in order.
func (c *Collection) Names() []string {
	names := make([]string, 0, len(c.items))
	for _, it := range c.items {
		names = append(names, it.Name())
	}
	return names
}

func (c *Collection) valid(i int) bool {
	return i >= 0 && i < len(c.items)
}

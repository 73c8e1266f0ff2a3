// Package session holds the presentation state shared by the interactive front ends:
// the image pipeline, the selected entry, its thumbnail and the status line.
package session

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/esimov/img2pdf"
	"github.com/esimov/img2pdf/utils"
)

// NoSelection marks the absence of a selected list entry.
const NoSelection = -1

// Session holds the presentation state of a window. It is not safe for
// concurrent use and is meant to be accessed from the UI event loop only.
type Session struct {
	pipe     *img2pdf.Pipeline
	thumbs   *thumbCache
	exts     []string
	selected int
	thumb    image.Image
	status   string
	busy     bool
}

// New creates a session on top of the pipeline. The extensions
// filter the files found when adding folders or patterns.
func New(pipe *img2pdf.Pipeline, exts []string) *Session {
	return &Session{
		pipe:     pipe,
		thumbs:   newThumbCache(),
		exts:     exts,
		selected: NoSelection,
		status:   "Ready",
	}
}

// Add expands the entered sources and appends the found images.
func (s *Session) Add(input string) {
	input = strings.TrimSpace(input)
	if input == "" {
		return
	}
	paths, err := utils.CollectImages([]string{input}, s.exts)
	if err != nil {
		s.status = fmt.Sprintf("Error: %v", err)
		return
	}
	s.pipe.Add(paths...)
	s.status = fmt.Sprintf("Added %d images", len(paths))
}

// Clear empties the image list and drops the cached thumbnails.
func (s *Session) Clear() {
	s.pipe.Clear()
	s.thumbs.flush()
	s.selected = NoSelection
	s.thumb = nil
	s.status = "All images cleared"
}

// Remove deletes the selected entry.
func (s *Session) Remove() {
	if !s.pipe.Remove(s.selected) {
		return
	}
	s.status = "Image removed"
	s.selected = NoSelection
	s.thumb = nil
}

// MoveUp moves the selected entry one position up.
func (s *Session) MoveUp() {
	s.move(s.pipe.MoveUp, "up")
}

// MoveDown moves the selected entry one position down.
func (s *Session) MoveDown() {
	s.move(s.pipe.MoveDown, "down")
}

// move applies the reordering function and keeps the moved entry selected.
func (s *Session) move(fn func(int) int, dir string) {
	if s.selected == NoSelection {
		return
	}
	i := fn(s.selected)
	if i == s.selected {
		return
	}
	s.selected = i
	ref, _ := s.pipe.At(i)
	s.status = fmt.Sprintf("Moved %s %s", ref.Name(), dir)
}

// Select selects the entry and loads its thumbnail.
func (s *Session) Select(i int) {
	ref, ok := s.pipe.At(i)
	if !ok {
		return
	}
	s.selected = i
	img, err := s.thumbs.get(s.pipe, i)
	if err != nil {
		s.thumb = nil
		s.status = fmt.Sprintf("Error loading preview: %v", err)
		return
	}
	s.thumb = img
	s.status = fmt.Sprintf("Previewing: %s", ref.Name())
}

// StartConvert returns a detached copy of the pipeline to be assembled
// outside of the event loop. It returns nil when a conversion is running.
func (s *Session) StartConvert() *img2pdf.Pipeline {
	if s.busy {
		return nil
	}
	s.busy = true
	s.status = "Creating PDF..."
	return s.pipe.Clone()
}

// FinishConvert reports the outcome of the conversion on the status line.
func (s *Session) FinishConvert(res *img2pdf.Result, err error) {
	s.busy = false
	if err != nil {
		s.status = "Error creating PDF: " + describe(err)
		return
	}
	s.status = fmt.Sprintf("PDF created successfully: %s (%d pages, %s)",
		res.Output, len(res.Pages), utils.FormatTime(res.Elapsed))
}

// describe translates the pipeline errors into user facing messages.
func describe(err error) string {
	var openErr *img2pdf.ImageOpenError
	switch {
	case errors.Is(err, img2pdf.ErrEmptyCollection):
		return "please select images to convert"
	case errors.Is(err, img2pdf.ErrEmptyName):
		return "please enter a name for the PDF"
	case errors.As(err, &openErr):
		return fmt.Sprintf("unable to open %s", openErr.Location)
	}
	return err.Error()
}

// Pipeline returns the underlying pipeline.
func (s *Session) Pipeline() *img2pdf.Pipeline { return s.pipe }

// Selected returns the index of the selected entry or NoSelection.
func (s *Session) Selected() int { return s.selected }

// Thumbnail returns the thumbnail of the selected entry, if any.
func (s *Session) Thumbnail() image.Image { return s.thumb }

// Status returns the current status line.
func (s *Session) Status() string { return s.status }

// SetStatus replaces the status line.
func (s *Session) SetStatus(status string) { s.status = status }

// Busy reports whether a conversion is running.
func (s *Session) Busy() bool { return s.busy }

package img2pdf

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the assembly pipeline.
var (
	ErrEmptyCollection = errors.New("no images selected")
	ErrEmptyName       = errors.New("the output name should not be empty")
	ErrIndexOutOfRange = errors.New("image index out of range")
)

// ImageOpenError is returned when a source image could not be opened, decoded or converted.
type ImageOpenError struct {
	Location string
	Err      error
}

func (e *ImageOpenError) Error() string {
	return fmt.Sprintf("unable to open image %s: %v", e.Location, e.Err)
}

func (e *ImageOpenError) Unwrap() error {
	return e.Err
}

// DocumentWriteError is returned when the document could not be built or persisted.
type DocumentWriteError struct {
	Err error
}

func (e *DocumentWriteError) Error() string {
	return fmt.Sprintf("unable to write the document: %v", e.Err)
}

func (e *DocumentWriteError) Unwrap() error {
	return e.Err
}

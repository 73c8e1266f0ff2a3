package img2pdf

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	gofpdf "github.com/lvillar/gofpdf"
)

// Extension is the canonical file extension of the generated document.
const Extension = ".pdf"

// Default option values.
const (
	DefaultThumbSize = 300
	DefaultTimeout   = 30 * time.Second
	DefaultCreator   = "img2pdf"
)

// Options configures the pipeline.
type Options struct {
	// Dir is the directory relative output names are resolved against.
	Dir string
	// ThumbSize caps the longest edge of the preview thumbnails.
	ThumbSize int
	// Timeout bounds the download of remote images.
	Timeout time.Duration
	// Creator is stored in the document metadata.
	Creator string
}

// PageInfo describes one page of a generated document.
type PageInfo struct {
	Number    int
	Source    string
	Width     int
	Height    int
	Converted bool
}

// Result holds the outcome of a successful conversion.
type Result struct {
	Output  string
	Pages   []PageInfo
	Elapsed time.Duration
}

// Pipeline keeps the ordered image collection and turns it into a document.
// It is not safe for concurrent use, callers have to serialize the access
// or work on a copy obtained through Clone.
type Pipeline struct {
	Collection
	opts Options
}

// New creates a pipeline, filling in the defaults for the zero valued options.
func New(opts Options) *Pipeline {
	if opts.ThumbSize <= 0 {
		opts.ThumbSize = DefaultThumbSize
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Creator == "" {
		opts.Creator = DefaultCreator
	}
	return &Pipeline{opts: opts}
}

// Options returns the options the pipeline has been created with.
func (p *Pipeline) Options() Options {
	return p.opts
}

// Clone returns an independent copy of the pipeline.
func (p *Pipeline) Clone() *Pipeline {
	c := &Pipeline{opts: p.opts}
	c.items = p.Items()
	return c
}

// OutputPath validates and normalizes the output name. The document
// extension is appended when missing and relative names are resolved
// against the configured directory.
func (p *Pipeline) OutputPath(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	if !strings.EqualFold(filepath.Ext(name), Extension) {
		name += Extension
	}
	if p.opts.Dir != "" && !filepath.IsAbs(name) {
		name = filepath.Join(p.opts.Dir, name)
	}
	return name, nil
}

// Assemble converts the collection into a single document, one page per image,
// each page having the exact pixel dimensions of its source image.
// The operation stops at the first image which cannot be opened. On failure
// nothing is written to the output location.
func (p *Pipeline) Assemble(name string) (*Result, error) {
	if p.Len() == 0 {
		return nil, ErrEmptyCollection
	}
	out, err := p.OutputPath(name)
	if err != nil {
		return nil, err
	}
	now := time.Now()

	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator(p.opts.Creator, true)
	pdf.SetTitle(strings.TrimSuffix(filepath.Base(out), filepath.Ext(out)), true)

	res := &Result{Output: out}
	for i, ref := range p.items {
		page, err := loadPage(ref, p.opts.Timeout)
		if err != nil {
			return nil, err
		}
		w, h := float64(page.width), float64(page.height)
		imgName := fmt.Sprintf("page-%d", i+1)
		opts := gofpdf.ImageOptions{ImageType: page.imgType}

		pdf.AddPageFormat("P", gofpdf.SizeType{Wd: w, Ht: h})
		pdf.RegisterImageOptionsReader(imgName, opts, bytes.NewReader(page.data))
		pdf.ImageOptions(imgName, 0, 0, w, h, false, opts, 0, "")
		if err := pdf.Error(); err != nil {
			return nil, &DocumentWriteError{Err: fmt.Errorf("page %d (%s): %w", i+1, ref.Location, err)}
		}

		res.Pages = append(res.Pages, PageInfo{
			Number:    i + 1,
			Source:    ref.Location,
			Width:     page.width,
			Height:    page.height,
			Converted: page.converted,
		})
	}

	if err := writeDocument(pdf, out); err != nil {
		return nil, &DocumentWriteError{Err: err}
	}
	res.Elapsed = time.Since(now)

	return res, nil
}

// writeDocument persists the document into a temporary file next to the
// destination and renames it once everything has been flushed.
func writeDocument(pdf *gofpdf.Fpdf, out string) error {
	tmp := filepath.Join(filepath.Dir(out), fmt.Sprintf(".%s.%s.tmp", filepath.Base(out), uuid.NewString()))

	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("unable to create the destination file: %w", err)
	}
	if err := pdf.Output(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, out); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

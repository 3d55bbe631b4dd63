// Package pdfsource provides a scrub.FrameSource that renders the pages of a
// PDF document as frames, one page per frame, using go-fitz (MuPDF).
//
// It lives in its own module so that the cgo dependency on MuPDF stays out of
// programs that only read image files.
package pdfsource

import (
	"context"
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
	"github.com/phanxgames/scrub"
)

// DefaultDPI is the render resolution used when Source.DPI is zero.
const DefaultDPI = 96

// Source renders PDF pages on demand. Page i is frame i.
type Source struct {
	path  string
	pages int
	// DPI is the render resolution.
	DPI float64
}

var _ scrub.FrameSource = (*Source)(nil)

// New opens the document at path to count its pages.
func New(path string) (*Source, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer doc.Close()
	return &Source{path: path, pages: doc.NumPage(), DPI: DefaultDPI}, nil
}

// Len returns the number of pages.
func (s *Source) Len() int {
	return s.pages
}

// Locator returns path#page, with 1-based page numbers.
func (s *Source) Locator(index int) string {
	return fmt.Sprintf("%s#%d", s.path, index+1)
}

// Load renders page index. Each call opens its own document handle because
// fitz documents must not be shared between goroutines.
func (s *Source) Load(ctx context.Context, index int) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if index < 0 || index >= s.pages {
		return nil, fmt.Errorf("render %s: page out of range", s.Locator(index))
	}
	doc, err := fitz.New(s.path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", s.path, err)
	}
	defer doc.Close()

	dpi := s.DPI
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	img, err := doc.ImageDPI(index, dpi)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", s.Locator(index), err)
	}
	return img, nil
}

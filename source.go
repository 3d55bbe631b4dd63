package scrub

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"net/http"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ErrEmptyFrame is returned when a frame decodes to an image without area.
var ErrEmptyFrame = errors.New("scrub: frame has zero dimensions")

// FrameSource produces decoded frames by index. Load may be called from many
// goroutines at once.
type FrameSource interface {
	Len() int
	Locator(index int) string
	Load(ctx context.Context, index int) (image.Image, error)
}

// FSSource loads frames from a file system using a PathTemplate.
type FSSource struct {
	FS       fs.FS
	Count    int
	Template PathTemplate
}

// NewFSSource creates a source of count frames read from fsys.
func NewFSSource(fsys fs.FS, count int, tmpl PathTemplate) *FSSource {
	return &FSSource{FS: fsys, Count: count, Template: tmpl}
}

// Len returns the frame count.
func (s *FSSource) Len() int {
	return s.Count
}

// Locator returns the path of frame index within the file system.
func (s *FSSource) Locator(index int) string {
	return s.Template.Path(index)
}

// Load opens and decodes frame index.
func (s *FSSource) Load(ctx context.Context, index int) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name := s.Locator(index)
	f, err := s.FS.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open frame %s: %w", name, err)
	}
	defer f.Close()
	return decodeFrame(name, f)
}

// HTTPSource fetches frames over HTTP from BaseURL + "/" + Template.Path(i).
type HTTPSource struct {
	BaseURL  string
	Count    int
	Template PathTemplate
	Client   *http.Client
}

// NewHTTPSource creates a source of count frames served under baseURL.
// A nil client uses http.DefaultClient.
func NewHTTPSource(baseURL string, count int, tmpl PathTemplate, client *http.Client) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		Count:    count,
		Template: tmpl,
		Client:   client,
	}
}

// Len returns the frame count.
func (s *HTTPSource) Len() int {
	return s.Count
}

// Locator returns the URL of frame index.
func (s *HTTPSource) Locator(index int) string {
	return s.BaseURL + "/" + s.Template.Path(index)
}

// Load fetches and decodes frame index. Non-2xx responses are failures.
func (s *HTTPSource) Load(ctx context.Context, index int) (image.Image, error) {
	url := s.Locator(index)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("request frame %s: %w", url, err)
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch frame %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch frame %s: status %s", url, resp.Status)
	}
	return decodeFrame(url, resp.Body)
}

// decodeFrame decodes any registered raster format and rejects empty images.
func decodeFrame(name string, r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode frame %s: %w", name, err)
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("decode frame %s: %w", name, ErrEmptyFrame)
	}
	return img, nil
}

package scrub

import (
	"context"
	"errors"
	"image"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ErrLoaderClosed marks frames that settled after the loader was closed.
var ErrLoaderClosed = errors.New("scrub: frame loader closed")

// LoaderOptions configures a FrameLoader.
type LoaderOptions struct {
	// Concurrency bounds the number of loads in flight. Zero uses
	// 2*runtime.NumCPU(). It is capped at the frame count.
	Concurrency int
}

// FrameLoader fetches every frame of a FrameSource once, concurrently, and
// reports when all of them have settled. Failed frames count as settled.
//
// Frame and FrameSet contents must only be read after Done is closed; before
// that, use Progress, Ready and Status.
type FrameLoader struct {
	source FrameSource
	cancel context.CancelFunc

	mu      sync.Mutex
	set     FrameSet
	settled int
	closed  bool
	decoded uint64

	done chan struct{}
}

// NewFrameLoader issues one load per frame of src and returns immediately.
// Loads stop early when ctx is cancelled or Close is called; such frames
// settle as failed.
func NewFrameLoader(ctx context.Context, src FrameSource, opts LoaderOptions) *FrameLoader {
	n := src.Len()
	if n < 0 {
		n = 0
	}
	ctx, cancel := context.WithCancel(ctx)
	l := &FrameLoader{
		source: src,
		cancel: cancel,
		set:    newFrameSet(n, src.Locator),
		done:   make(chan struct{}),
	}
	if n == 0 {
		close(l.done)
		cancel()
		return l
	}

	limit := opts.Concurrency
	if limit <= 0 {
		limit = 2 * runtime.NumCPU()
	}
	if limit > n {
		limit = n
	}

	go l.run(ctx, n, limit)
	return l
}

// run schedules the loads. g.Go blocks once the limit is reached, so this
// lives on its own goroutine to keep construction non-blocking.
func (l *FrameLoader) run(ctx context.Context, n, limit int) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			img, err := l.source.Load(gctx, i)
			l.settle(i, img, err)
			// Frame failures are recorded on the asset; returning them would
			// cancel the remaining loads.
			return nil
		})
	}
	_ = g.Wait()
	l.cancel()
}

// settle moves frame i out of pending. Repeated settles of the same frame are
// ignored.
func (l *FrameLoader) settle(i int, img image.Image, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f := l.set.At(i)
	if f == nil || f.Status != FramePending {
		return
	}
	switch {
	case l.closed:
		f.Status = FrameFailed
		f.Err = ErrLoaderClosed
	case err != nil:
		f.Status = FrameFailed
		f.Err = err
	case img == nil || img.Bounds().Empty():
		f.Status = FrameFailed
		f.Err = ErrEmptyFrame
	default:
		f.Status = FrameLoaded
		f.Image = img
		b := img.Bounds()
		l.decoded += uint64(b.Dx()) * uint64(b.Dy()) * 4
	}
	if f.Status == FrameFailed {
		debugf("frame %d failed: %v", i, f.Err)
	}

	l.settled++
	if l.settled == l.set.Len() {
		debugf("loader settled %d frames (%d failed)", l.settled, l.failedLocked())
		close(l.done)
	}
}

// Len returns the total number of frames.
func (l *FrameLoader) Len() int {
	return l.set.Len()
}

// Progress returns the number of frames that are no longer pending.
func (l *FrameLoader) Progress() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.settled
}

// Ready reports whether every frame has settled.
func (l *FrameLoader) Ready() bool {
	select {
	case <-l.done:
		return true
	default:
		return false
	}
}

// Done returns a channel closed when every frame has settled.
func (l *FrameLoader) Done() <-chan struct{} {
	return l.done
}

// Wait blocks until every frame has settled or ctx is done.
func (l *FrameLoader) Wait(ctx context.Context) error {
	select {
	case <-l.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Status returns the current status of frame i. Safe before Done.
func (l *FrameLoader) Status(i int) FrameStatus {
	l.mu.Lock()
	defer l.mu.Unlock()
	f := l.set.At(i)
	if f == nil {
		return FrameFailed
	}
	return f.Status
}

// Frame returns frame i, or nil when out of range. Only valid after Done.
func (l *FrameLoader) Frame(i int) *FrameAsset {
	return l.set.At(i)
}

// Frames returns the frame set. Only valid after Done.
func (l *FrameLoader) Frames() *FrameSet {
	return &l.set
}

// Failed returns the indices of failed frames in ascending order.
func (l *FrameLoader) Failed() []int {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []int
	for i := range l.set.frames {
		if l.set.frames[i].Status == FrameFailed {
			out = append(out, i)
		}
	}
	return out
}

func (l *FrameLoader) failedLocked() int {
	n := 0
	for i := range l.set.frames {
		if l.set.frames[i].Status == FrameFailed {
			n++
		}
	}
	return n
}

// DecodedBytes returns the RGBA footprint of all loaded frames.
func (l *FrameLoader) DecodedBytes() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.decoded
}

// Close cancels outstanding loads. Frames that settle afterwards are marked
// failed with ErrLoaderClosed and their images are dropped. Safe to call more
// than once.
func (l *FrameLoader) Close() {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()
	l.cancel()
}

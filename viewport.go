package scrub

// registry is implemented by anything that hands out CallbackHandles.
type registry interface {
	remove(id uint32)
}

// CallbackHandle allows removing a registered callback. The zero value is a
// valid handle whose Remove does nothing. Remove may be called more than once.
type CallbackHandle struct {
	id  uint32
	reg registry
}

// Remove unregisters the callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	h.reg.remove(h.id)
}

// ResizeFunc receives the new logical size and device pixel ratio.
type ResizeFunc func(width, height, scale float64)

type resizeHandler struct {
	id      uint32
	fn      ResizeFunc
	removed bool
}

// Viewport tracks the logical window size and device pixel ratio and notifies
// listeners when they change.
type Viewport struct {
	width, height float64
	scale         float64

	handlers []*resizeHandler
	iter     []*resizeHandler
	depth    int
	nextID   uint32
}

// NewViewport creates a viewport of the given logical size and scale.
func NewViewport(width, height, scale float64) *Viewport {
	if !(scale > 0) {
		scale = 1
	}
	return &Viewport{width: width, height: height, scale: scale}
}

// Size returns the logical size.
func (v *Viewport) Size() (w, h float64) {
	return v.width, v.height
}

// Scale returns the device pixel ratio.
func (v *Viewport) Scale() float64 {
	return v.scale
}

// OnResize registers fn to be called after every change.
func (v *Viewport) OnResize(fn ResizeFunc) CallbackHandle {
	v.nextID++
	v.handlers = append(v.handlers, &resizeHandler{id: v.nextID, fn: fn})
	return CallbackHandle{id: v.nextID, reg: v}
}

func (v *Viewport) remove(id uint32) {
	for i, h := range v.handlers {
		if h.id == id {
			h.removed = true
			copy(v.handlers[i:], v.handlers[i+1:])
			v.handlers[len(v.handlers)-1] = nil
			v.handlers = v.handlers[:len(v.handlers)-1]
			return
		}
	}
}

// Set updates the size and scale. Listeners fire only when something changed,
// in registration order. It reports whether a change happened.
func (v *Viewport) Set(width, height, scale float64) bool {
	if !(scale > 0) {
		scale = 1
	}
	if width == v.width && height == v.height && scale == v.scale {
		return false
	}
	v.width, v.height, v.scale = width, height, scale

	// A handler may call Set again; nested notifies take their own snapshot.
	var handlers []*resizeHandler
	if v.depth == 0 {
		v.iter = append(v.iter[:0], v.handlers...)
		handlers = v.iter
	} else {
		handlers = append(handlers, v.handlers...)
	}
	v.depth++
	for _, h := range handlers {
		if !h.removed {
			h.fn(width, height, scale)
		}
	}
	v.depth--
	if v.depth == 0 {
		clear(v.iter)
	}
	return true
}

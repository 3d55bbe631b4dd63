package scrub

// InjectWheel queues a wheel event of the given notches (positive scrolls
// down the document). The event is consumed on the next tick's input pass,
// in place of real input.
func (a *App) InjectWheel(notches float64) {
	a.injectQueue = append(a.injectQueue, notches)
}

// InjectScroll spreads notches evenly over frames consecutive wheel events.
// Minimum frames is 1.
func (a *App) InjectScroll(notches float64, frames int) {
	if frames < 1 {
		frames = 1
	}
	per := notches / float64(frames)
	for i := 0; i < frames; i++ {
		a.InjectWheel(per)
	}
}

// PendingInput returns the number of queued injected events.
func (a *App) PendingInput() int {
	return len(a.injectQueue)
}

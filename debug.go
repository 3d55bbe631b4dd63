package scrub

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"
)

// globalDebug gates every diagnostic line. Loader goroutines read it.
var globalDebug atomic.Bool

// SetDebugMode enables or disables debug output on stderr: loader completion,
// failed frames, per-update timing and memory warnings.
func SetDebugMode(enabled bool) {
	globalDebug.Store(enabled)
}

// DebugMode reports whether debug output is enabled.
func DebugMode() bool {
	return globalDebug.Load()
}

// debugf prints a prefixed line to stderr in debug mode.
func debugf(format string, args ...any) {
	if !globalDebug.Load() {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[scrub] "+format+"\n", args...)
}

// debugLogEvery is how many applied updates pass between timing reports.
const debugLogEvery = 120

// debugLog prints averaged hot path timings every debugLogEvery updates.
func (s *Section) debugLog() {
	if !globalDebug.Load() || s.stats.updates%debugLogEvery != 0 {
		return
	}
	n := s.stats.updates
	_, _ = fmt.Fprintf(os.Stderr,
		"[scrub] map: %v | paint: %v | overlay: %v (avg over %d updates)\n",
		s.stats.mapTime/timeDiv(n), s.stats.paintTime/timeDiv(n), s.stats.overTime/timeDiv(n), n)
	_, _ = fmt.Fprintf(os.Stderr,
		"[scrub] progress: %.3f | frame: %d | drawn: %d | ignored before ready: %d\n",
		s.progress, s.frame, s.stats.drawn, s.stats.ignored)
}

func timeDiv(n int) time.Duration {
	return time.Duration(max(n, 1))
}

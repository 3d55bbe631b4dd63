package scrub

import (
	"fmt"

	"github.com/shirou/gopsutil/v3/mem"
)

// DefaultMemoryBudget is the share of available system memory decoded frames
// may occupy before a warning is printed.
const DefaultMemoryBudget = 0.5

// MemoryReport compares the decoded frame footprint with system memory.
type MemoryReport struct {
	Decoded   uint64
	Available uint64
	Budget    float64
}

// Exceeded reports whether the decoded frames use more than Budget of the
// available memory. A zero Budget or unknown Available never exceeds.
func (r MemoryReport) Exceeded() bool {
	if r.Budget <= 0 || r.Available == 0 {
		return false
	}
	return float64(r.Decoded) > float64(r.Available)*r.Budget
}

// CheckMemory measures available system memory against decoded bytes.
func CheckMemory(decoded uint64, budget float64) (MemoryReport, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return MemoryReport{Decoded: decoded, Budget: budget}, fmt.Errorf("read system memory: %w", err)
	}
	return MemoryReport{Decoded: decoded, Available: vm.Available, Budget: budget}, nil
}

// warnMemory prints a debug warning when the loaded frames exceed the budget.
func warnMemory(l *FrameLoader, budget float64) {
	if !globalDebug.Load() || l == nil {
		return
	}
	r, err := CheckMemory(l.DecodedBytes(), budget)
	if err != nil {
		debugf("memory check: %v", err)
		return
	}
	if r.Exceeded() {
		debugf("warning: decoded frames use %d MiB, budget is %.0f%% of %d MiB available",
			r.Decoded>>20, r.Budget*100, r.Available>>20)
	}
}

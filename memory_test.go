package scrub

import "testing"

func TestMemoryReportExceeded(t *testing.T) {
	cases := []struct {
		r    MemoryReport
		want bool
	}{
		{MemoryReport{Decoded: 600, Available: 1000, Budget: 0.5}, true},
		{MemoryReport{Decoded: 500, Available: 1000, Budget: 0.5}, false},
		{MemoryReport{Decoded: 600, Available: 0, Budget: 0.5}, false},
		{MemoryReport{Decoded: 600, Available: 1000, Budget: 0}, false},
	}
	for _, c := range cases {
		if got := c.r.Exceeded(); got != c.want {
			t.Errorf("%+v.Exceeded() = %v, want %v", c.r, got, c.want)
		}
	}
}

func TestCheckMemory(t *testing.T) {
	r, err := CheckMemory(1<<20, DefaultMemoryBudget)
	if err != nil {
		t.Skipf("system memory unavailable: %v", err)
	}
	if r.Available == 0 {
		t.Error("Available = 0")
	}
	if r.Decoded != 1<<20 || r.Budget != DefaultMemoryBudget {
		t.Errorf("report = %+v", r)
	}
}

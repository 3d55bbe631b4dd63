package scrub

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	Value  float64 `json:"value,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
	// Exit terminates the app once every step has run.
	Exit bool `json:"exit,omitempty"`
}

// TestRunner sequences injected scrolling, waits and screenshots across ticks
// for automated visual checks. Attach to an App via SetTestRunner.
//
// Actions:
//
//	ready       wait until the section is active
//	wheel       inject Value wheel notches spread over Frames ticks
//	progress    smooth-scroll so the section reaches progress Value
//	jump        jump immediately to section progress Value
//	wait        wait Frames ticks
//	screenshot  capture the next drawn frame as Label
type TestRunner struct {
	steps     []testStep
	exit      bool
	cursor    int
	waitCount int
	waitReady bool
	done      bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to an App via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "ready", "wheel", "progress", "jump", "wait", "screenshot":
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps, exit: script.Exit}, nil
}

// SetTestRunner attaches a TestRunner to the app. The runner's step method
// is called from App.Update before input is processed each tick.
func (a *App) SetTestRunner(runner *TestRunner) {
	a.runner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one tick. Called from App.Update.
func (r *TestRunner) step(a *App) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(a.injectQueue) > 0 {
		return
	}
	if r.waitReady {
		if !a.section.Active() {
			return
		}
		r.waitReady = false
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "ready":
		r.waitReady = !a.section.Active()
	case "wheel":
		a.InjectScroll(st.Value, st.Frames)
	case "progress":
		a.scroller.ScrollToProgress(st.Value)
	case "jump":
		a.scroller.ScrollToProgress(st.Value)
		a.scroller.JumpTo(a.scroller.Target())
	case "screenshot":
		a.Screenshot(st.Label)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this tick counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && !r.waitReady && len(a.injectQueue) == 0 {
		r.done = true
	}
}

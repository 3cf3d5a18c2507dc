package easel

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// testStep is a single action of a test script.
type testStep struct {
	Action string `yaml:"action"`
	Label  string `yaml:"label,omitempty"`
	Frames int    `yaml:"frames,omitempty"`
}

type testScript struct {
	Steps []testStep `yaml:"steps"`
}

// TestRunner sequences hook calls and screenshots across frames for
// automated visual testing. Scripts are YAML or JSON:
//
//	steps:
//	  - {action: screenshot, label: initial}
//	  - {action: call, label: next-scene}
//	  - {action: wait, frames: 2}
//	  - {action: screenshot, label: after}
//
// "call" runs the hook registered under label with [Loop.Handle]. Attach a
// runner with [Loop.SetTestRunner].
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a test script.
func LoadTestScript(data []byte) (*TestRunner, error) {
	var script testScript
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "screenshot", "wait", "call":
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches runner to the loop; it advances one step per
// update, before pending repaints run.
func (l *Loop) SetTestRunner(runner *TestRunner) {
	l.runner = runner
}

// Handle registers fn as the hook run by "call" steps labeled name.
func (l *Loop) Handle(name string, fn func()) {
	if l.hooks == nil {
		l.hooks = make(map[string]func())
	}
	l.hooks[name] = fn
}

// Done reports whether every step has run.
func (r *TestRunner) Done() bool {
	return r.done
}

func (r *TestRunner) step(l *Loop) {
	if r.done {
		return
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
	case "screenshot":
		l.Screenshot(st.Label)
	case "call":
		if fn, ok := l.hooks[st.Label]; ok {
			fn()
		} else {
			Logger().Warn("easel: test script calls unknown hook", "label", st.Label)
		}
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
}

package helpers

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/coastpass/web-e2e/tests/e2e/config"
	"github.com/coastpass/web-e2e/tests/e2e/report"
)

// Scenario is the handle passed to a scenario body. It owns one browser
// session per attempt and satisfies testify's TestingT, so require/assert
// failures are collected per attempt instead of failing the surrounding
// test immediately. That is what makes whole-scenario retry possible.
type Scenario struct {
	*BrowserHelper

	t        *testing.T
	name     string
	failures []string
}

type scenarioAbort struct{}

// Errorf records an assertion failure for the current attempt.
func (s *Scenario) Errorf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	s.failures = append(s.failures, strings.TrimSpace(msg))
	s.Failed = true
	s.t.Logf("Scenario %q: %s", s.name, msg)
}

// FailNow aborts the current attempt. Used by require.
func (s *Scenario) FailNow() {
	if !s.Failed {
		s.failures = append(s.failures, "aborted")
		s.Failed = true
	}
	panic(scenarioAbort{})
}

// Logf forwards to the underlying test log.
func (s *Scenario) Logf(format string, args ...interface{}) {
	s.t.Logf(format, args...)
}

// RunScenario executes fn against a fresh browser session, retrying the
// whole scenario up to the configured retry count. A trace is recorded from
// the first retry onward; a screenshot is captured only when the final
// attempt fails. Scenarios are independent and run in parallel.
func RunScenario(t *testing.T, name string, opts SessionOptions, fn func(s *Scenario)) {
	cfg := config.GetConfig()
	if !cfg.Focused(name) {
		t.Skipf("Scenario %q not in E2E_FOCUS", name)
	}
	t.Parallel()

	attempts := cfg.Retries + 1
	for attempt := 0; attempt < attempts; attempt++ {
		start := time.Now()
		o := opts
		o.Trace = o.Trace || attempt > 0

		b := NewBrowserHelper(t, name)
		if err := b.Setup(o); err != nil {
			b.TearDown()
			if errors.Is(err, ErrDriverUnavailable) {
				t.Skipf("Skipping %q: %v", name, err)
			}
			t.Fatalf("Browser setup for %q failed: %v", name, err)
		}

		s := &Scenario{BrowserHelper: b, t: t, name: name}
		runAttempt(s, fn)

		final := attempt == attempts-1
		b.Failed = s.Failed && final
		screenshot, trace := b.TearDown()
		elapsed := time.Since(start)

		if !s.Failed {
			report.Record(report.Result{
				Name:     name,
				Passed:   true,
				Attempts: attempt + 1,
				Duration: elapsed,
				Trace:    trace,
			})
			return
		}
		if !final {
			t.Logf("Scenario %q failed (attempt %d/%d), retrying: %s",
				name, attempt+1, attempts, strings.Join(s.failures, "; "))
			continue
		}
		report.Record(report.Result{
			Name:       name,
			Passed:     false,
			Attempts:   attempts,
			Duration:   elapsed,
			Error:      strings.Join(s.failures, "; "),
			Screenshot: screenshot,
			Trace:      trace,
		})
		t.Fatalf("Scenario %q failed after %d attempt(s): %s",
			name, attempts, strings.Join(s.failures, "; "))
	}
}

func runAttempt(s *Scenario, fn func(*Scenario)) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(scenarioAbort); ok {
				return
			}
			s.Errorf("panic in scenario body: %v", r)
		}
	}()
	fn(s)
}

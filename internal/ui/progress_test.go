package ui

import (
	"bytes"
	"strings"
	"testing"
)

// forcedHeadless returns a manager locked into headless mode.
func forcedHeadless(t *testing.T) *HeadlessManager {
	t.Helper()
	hm := NewHeadlessManager()
	hm.ForceHeadless(true)
	return hm
}

func TestHeadlessManager(t *testing.T) {
	t.Run("force_overrides_detection", func(t *testing.T) {
		hm := NewHeadlessManager()
		hm.ForceHeadless(true)
		if !hm.IsHeadless() {
			t.Error("forced headless not honored")
		}
		hm.ForceHeadless(false)
		if hm.IsHeadless() {
			t.Error("forced interactive not honored")
		}
	})

	t.Run("clear_force_reverts_to_detection", func(t *testing.T) {
		hm := NewHeadlessManager()
		hm.ForceHeadless(false)
		hm.ClearForce()
		// Test processes have no TTY on stdin.
		if !hm.IsHeadless() {
			t.Error("expected headless under test harness after ClearForce")
		}
	})
}

func TestProgress_Headless(t *testing.T) {
	t.Run("spinner_logs_titles", func(t *testing.T) {
		buf := new(bytes.Buffer)
		p := newProgressWithWriter(DefaultTheme(), forcedHeadless(t), buf)

		sp := p.Spinner("resolving content")
		sp.SetTitle("writing artifacts")
		sp.Stop()

		out := buf.String()
		if !strings.Contains(out, "resolving content") || !strings.Contains(out, "writing artifacts") {
			t.Errorf("spinner log lines missing:\n%s", out)
		}
	})

	t.Run("progress_bar_counts", func(t *testing.T) {
		buf := new(bytes.Buffer)
		p := newProgressWithWriter(DefaultTheme(), forcedHeadless(t), buf)

		bar := p.Start("emitting", 3)
		bar.Increment(1)
		bar.Increment(1)
		bar.Done()

		out := buf.String()
		if !strings.Contains(out, "[1/3]") || !strings.Contains(out, "[3/3]") {
			t.Errorf("progress counters missing:\n%s", out)
		}
	})

	t.Run("increment_clamped_to_total", func(t *testing.T) {
		buf := new(bytes.Buffer)
		p := newProgressWithWriter(DefaultTheme(), forcedHeadless(t), buf)

		bar := p.Start("emitting", 2)
		bar.Increment(5)

		if !strings.Contains(buf.String(), "[2/2]") {
			t.Errorf("overshoot not clamped:\n%s", buf.String())
		}
	})

	t.Run("no_color_theme_forces_plain_output", func(t *testing.T) {
		buf := new(bytes.Buffer)
		theme := DefaultTheme()
		theme.NoColor = true
		hm := NewHeadlessManager()
		hm.ForceHeadless(false)

		p := newProgressWithWriter(theme, hm, buf)
		sp := p.Spinner("working")
		sp.Stop()

		if !strings.Contains(buf.String(), "working") {
			t.Errorf("NoColor spinner did not fall back to plain output:\n%s", buf.String())
		}
	})
}

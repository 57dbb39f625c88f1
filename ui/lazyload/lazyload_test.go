package lazyload

import (
	"errors"
	"testing"

	"github.com/NorthstarWang/fintech-banking-tui/ui/window"
)

func okFetch(body string) FetchFunc {
	return func(src string) (string, error) { return body, nil }
}

func failFetch(err error) FetchFunc {
	return func(src string) (string, error) { return "", err }
}

// viewportAt returns a 10-line viewport over 100 lines of content, scrolled
// to the given offset.
func viewportAt(offset int) *window.Viewport {
	vp := window.NewViewport(10)
	vp.SetContentHeight(100)
	vp.ScrollTo(offset)
	return vp
}

// ---------------------------------------------------------------------------
// Intersection detection
// ---------------------------------------------------------------------------

func TestCheckVisible_OffScreenDoesNotFire(t *testing.T) {
	m := New("res://a", "alt", okFetch("body"))
	// Element at line 40, viewport shows [0, 10) + 5 margin.
	if cmd := m.CheckVisible(40, 3, viewportAt(0)); cmd != nil {
		t.Error("off-screen element must not fire a load")
	}
	if m.Requested() {
		t.Error("off-screen check must not consume the single fire")
	}
}

func TestCheckVisible_FiresWithinProximityMargin(t *testing.T) {
	m := New("res://a", "alt", okFetch("body"))
	// Element at line 13 is outside the strict viewport [0, 10) but inside
	// the margin-expanded one [−5, 15).
	if cmd := m.CheckVisible(13, 3, viewportAt(0)); cmd == nil {
		t.Error("element inside the proximity margin must fire")
	}
}

func TestCheckVisible_ThresholdGatesPartialOverlap(t *testing.T) {
	// 10-line element with only 1 line overlapping: fraction 0.1 meets the
	// default threshold; a 0.5 threshold rejects it.
	m := New("res://a", "alt", okFetch("body"), WithMargin(0), WithThreshold(0.5))
	if cmd := m.CheckVisible(9, 10, viewportAt(0)); cmd != nil {
		t.Error("overlap below threshold must not fire")
	}

	d := New("res://a", "alt", okFetch("body"), WithMargin(0))
	if cmd := d.CheckVisible(9, 10, viewportAt(0)); cmd == nil {
		t.Error("overlap at default threshold must fire")
	}
}

// ---------------------------------------------------------------------------
// Single fire
// ---------------------------------------------------------------------------

func TestCheckVisible_FiresExactlyOnce(t *testing.T) {
	calls := 0
	m := New("res://a", "alt", func(src string) (string, error) {
		calls++
		return "body", nil
	})

	cmd := m.CheckVisible(2, 3, viewportAt(0))
	if cmd == nil {
		t.Fatal("visible element must fire")
	}

	// Scroll away and back: no re-trigger.
	if again := m.CheckVisible(2, 3, viewportAt(50)); again != nil {
		t.Error("second check fired a command")
	}
	if again := m.CheckVisible(2, 3, viewportAt(0)); again != nil {
		t.Error("re-entering view fired a second command")
	}

	m.Update(cmd())
	if calls != 1 {
		t.Errorf("fetch ran %d times, want 1", calls)
	}
	if m.State() != StateLoaded {
		t.Errorf("want Loaded, got %v", m.State())
	}

	// Visibility checks after Loaded stay inert.
	if again := m.CheckVisible(2, 3, viewportAt(0)); again != nil {
		t.Error("check after Loaded fired a command")
	}
}

// ---------------------------------------------------------------------------
// State machine
// ---------------------------------------------------------------------------

func TestUpdate_LoadFailureKeepsPlaceholderAndReportsError(t *testing.T) {
	loadErr := errors.New("404")
	var reported error
	m := New("res://a", "alt", failFetch(loadErr),
		WithPlaceholder("loading..."), WithOnError(func(err error) { reported = err }))

	cmd := m.CheckVisible(0, 3, viewportAt(0))
	m.Update(cmd())

	if m.State() != StateFailed {
		t.Fatalf("want Failed, got %v", m.State())
	}
	if !errors.Is(m.Err(), loadErr) || !errors.Is(reported, loadErr) {
		t.Errorf("error not propagated: have %v, callback saw %v", m.Err(), reported)
	}
	if m.View() != "loading..." {
		t.Errorf("failure must keep the placeholder, got %q", m.View())
	}
}

func TestUpdate_StateNeverMovesBackward(t *testing.T) {
	m := New("res://a", "alt", okFetch("body"))
	cmd := m.CheckVisible(0, 3, viewportAt(0))
	m.Update(cmd())

	// A straggler failure for the same instance must not undo Loaded.
	m.Update(FailedMsg{ID: m.id, Gen: m.gen, Err: errors.New("late")})
	if m.State() != StateLoaded || m.Err() != nil {
		t.Errorf("Loaded reverted by late failure: state=%v err=%v", m.State(), m.Err())
	}
}

func TestUpdate_IgnoresOtherInstances(t *testing.T) {
	a := New("res://a", "alt", okFetch("body-a"))
	b := New("res://b", "alt", okFetch("body-b"))

	cmd := a.CheckVisible(0, 3, viewportAt(0))
	b.Update(cmd())
	if b.State() != StatePending {
		t.Errorf("result for instance a mutated instance b: %v", b.State())
	}
}

func TestOnLoadCallbackFiresOnce(t *testing.T) {
	loads := 0
	m := New("res://a", "alt", okFetch("body"), WithOnLoad(func() { loads++ }))
	cmd := m.CheckVisible(0, 3, viewportAt(0))
	msg := cmd()
	m.Update(msg)
	m.Update(msg) // duplicate delivery is dropped by the Pending guard
	if loads != 1 {
		t.Errorf("onLoad ran %d times, want 1", loads)
	}
}

// ---------------------------------------------------------------------------
// Remount
// ---------------------------------------------------------------------------

func TestReset_ReturnsToPendingAndRearmsFetch(t *testing.T) {
	m := New("res://a", "alt", okFetch("body"), WithPlaceholder("..."))
	cmd := m.CheckVisible(0, 3, viewportAt(0))
	m.Update(cmd())

	m.Reset("res://b")
	if m.State() != StatePending || m.Src() != "res://b" {
		t.Fatalf("Reset: want Pending with new src, got %v %q", m.State(), m.Src())
	}
	if m.View() != "..." {
		t.Errorf("Reset must show the placeholder again, got %q", m.View())
	}
	if cmd := m.CheckVisible(0, 3, viewportAt(0)); cmd == nil {
		t.Error("Reset must re-arm the single fire")
	}
}

func TestReset_StaleInFlightResultIsDropped(t *testing.T) {
	m := New("res://a", "alt", okFetch("old body"))
	cmd := m.CheckVisible(0, 3, viewportAt(0))
	stale := cmd() // fetch completed, result not yet delivered

	m.Reset("res://b")
	m.Update(stale)
	if m.State() != StatePending {
		t.Errorf("stale result from previous mount applied: %v", m.State())
	}
	if m.View() == "old body" {
		t.Error("stale content leaked into the remounted instance")
	}
}

// ---------------------------------------------------------------------------
// View fallbacks
// ---------------------------------------------------------------------------

func TestView_AltStandsInWithoutPlaceholder(t *testing.T) {
	m := New("res://a", "card art", okFetch("body"))
	if m.View() != "card art" {
		t.Errorf("want alt text while Pending, got %q", m.View())
	}
}

func TestNew_PanicsOnNilFetch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("want panic for nil fetch")
		}
	}()
	New("res://a", "alt", nil)
}

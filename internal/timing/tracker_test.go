package timing

import (
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestTracker(limit int) (*Tracker, *fakeClock) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	tr := NewTracker(limit)
	tr.now = clock.now
	return tr, clock
}

func TestTracker_RecordsAndAverages(t *testing.T) {
	tr, clock := newTestTracker(0)

	span := tr.Start("rotate")
	clock.advance(10 * time.Millisecond)
	if d := span.End(); d != 10*time.Millisecond {
		t.Errorf("End() = %v, want 10ms", d)
	}

	span = tr.Start("rotate")
	clock.advance(30 * time.Millisecond)
	span.End()

	if got := tr.GetTimings("rotate"); len(got) != 2 {
		t.Fatalf("GetTimings() len = %d, want 2", len(got))
	}
	if avg := tr.GetAverageTime("rotate"); avg != 20*time.Millisecond {
		t.Errorf("GetAverageTime() = %v, want 20ms", avg)
	}
	if avg := tr.GetAverageTime("negate"); avg != 0 {
		t.Errorf("unknown operation average = %v, want 0", avg)
	}
}

func TestTracker_Limit(t *testing.T) {
	tr, clock := newTestTracker(2)

	for i := 1; i <= 3; i++ {
		span := tr.Start("op")
		clock.advance(time.Duration(i) * time.Second)
		span.End()
	}

	got := tr.GetTimings("op")
	if len(got) != 2 || got[0] != 2*time.Second || got[1] != 3*time.Second {
		t.Errorf("GetTimings() = %v, want [2s 3s]", got)
	}
}

func TestTracker_Disabled(t *testing.T) {
	tr, _ := newTestTracker(0)

	tr.SetEnabled(false)
	tr.Start("op").End()
	if len(tr.GetTimings("op")) != 0 {
		t.Error("disabled tracker recorded a sample")
	}

	tr.SetEnabled(true)
	tr.Start("op").End()
	if len(tr.GetTimings("op")) != 1 {
		t.Error("re-enabled tracker should record again")
	}

	var nilSpan *Span
	if nilSpan.End() != 0 {
		t.Error("nil span should report zero")
	}
}

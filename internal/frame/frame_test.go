package frame

import (
	"testing"
	"time"

	"starship/internal/config"
)

type fakeTime struct {
	t time.Time
}

func (f *fakeTime) now() time.Time { return f.t }

func TestClockDelta(t *testing.T) {
	ft := &fakeTime{t: time.Unix(0, 0)}
	c := newClockWith(ft.now)

	ft.t = ft.t.Add(16 * time.Millisecond)
	dt, rolled := c.Tick()
	if dt < 0.0159 || dt > 0.0161 {
		t.Errorf("Expected dt ~0.016, got %f", dt)
	}
	if rolled {
		t.Error("Expected no FPS rollover before a second passes")
	}
}

func TestClockFPS(t *testing.T) {
	ft := &fakeTime{t: time.Unix(0, 0)}
	c := newClockWith(ft.now)

	var rolled bool
	for i := 0; i < 60; i++ {
		ft.t = ft.t.Add(time.Second / 60)
		_, rolled = c.Tick()
	}
	// 60 * (1s/60) truncates slightly below a second
	if rolled {
		t.Fatal("Expected window to still be open")
	}
	ft.t = ft.t.Add(time.Second / 60)
	if _, rolled = c.Tick(); !rolled {
		t.Fatal("Expected rollover after a second")
	}
	if c.FPS() != 61 {
		t.Errorf("Expected 61 frames counted, got %d", c.FPS())
	}
}

func TestLimiterPaces(t *testing.T) {
	config.SetFPSLimit(100)
	defer config.SetFPSLimit(120)

	l := NewLimiter()
	start := time.Now()
	for i := 0; i < 5; i++ {
		l.Wait()
	}
	if elapsed := time.Since(start); elapsed < 45*time.Millisecond {
		t.Errorf("Expected ~50ms for 5 frames at 100 FPS, got %v", elapsed)
	}
}

func TestLimiterUncapped(t *testing.T) {
	config.SetFPSLimit(0)
	defer config.SetFPSLimit(120)

	l := NewLimiter()
	start := time.Now()
	for i := 0; i < 100; i++ {
		l.Wait()
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Errorf("Expected uncapped waits to return immediately, took %v", elapsed)
	}
}

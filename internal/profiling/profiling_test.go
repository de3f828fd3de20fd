package profiling

import (
	"strings"
	"testing"
	"time"
)

func record(name string, d time.Duration) {
	mu.Lock()
	frameTotals[name] += d
	mu.Unlock()
}

func TestTrackAccumulates(t *testing.T) {
	ResetFrame()
	stop := Track("scene.Update")
	time.Sleep(time.Millisecond)
	stop()
	Track("scene.Update")()

	snap := Snapshot()
	if snap["scene.Update"] < time.Millisecond {
		t.Errorf("Expected at least 1ms tracked, got %v", snap["scene.Update"])
	}
}

func TestResetFrame(t *testing.T) {
	record("renderer.Render", time.Millisecond)
	ResetFrame()
	if len(Snapshot()) != 0 {
		t.Errorf("Expected empty totals after reset, got %v", Snapshot())
	}
}

func TestSumWithPrefix(t *testing.T) {
	ResetFrame()
	record("glfw.SwapBuffers", 2*time.Millisecond)
	record("glfw.PollEvents", time.Millisecond)
	record("renderer.Render", 5*time.Millisecond)

	if got := SumWithPrefix("glfw."); got != 3*time.Millisecond {
		t.Errorf("Expected 3ms, got %v", got)
	}
}

func TestTopN(t *testing.T) {
	ResetFrame()
	record("a", 1500*time.Microsecond)
	record("b", 4*time.Millisecond)
	record("c", 200*time.Microsecond)

	got := TopN(2)
	if got != "b:4ms, a:1.5ms" {
		t.Errorf("Expected %q, got %q", "b:4ms, a:1.5ms", got)
	}
	if all := TopN(10); strings.Count(all, ",") != 2 {
		t.Errorf("Expected all three entries, got %q", all)
	}
}

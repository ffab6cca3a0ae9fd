package service

import (
	"testing"
	"time"
)

func TestClockCountsDownOnlyWhileRunning(t *testing.T) {
	c := NewClock(10 * time.Second)

	if got := c.TimeLeft(); got != 10*time.Second {
		t.Errorf("TimeLeft = %v, want 10s before the first start", got)
	}

	c.Start()
	time.Sleep(20 * time.Millisecond)
	c.Stop()

	after := c.TimeLeft()
	if after >= 10*time.Second {
		t.Errorf("TimeLeft = %v, should have decreased while running", after)
	}

	time.Sleep(20 * time.Millisecond)
	if got := c.TimeLeft(); got != after {
		t.Errorf("TimeLeft = %v, must hold at %v while stopped", got, after)
	}
}

func TestClockStartIsIdempotent(t *testing.T) {
	c := NewClock(10 * time.Second)
	c.Start()
	time.Sleep(10 * time.Millisecond)
	c.Start()
	c.Stop()

	if lost := 10*time.Second - c.TimeLeft(); lost < 10*time.Millisecond {
		t.Errorf("lost %v, the second Start must not reset the running stretch", lost)
	}
}

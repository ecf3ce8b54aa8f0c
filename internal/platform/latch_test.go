package platform

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/pico-snake/internal/core"
)

type fakeNow struct {
	t time.Time
}

func (f *fakeNow) now() time.Time { return f.t }

func TestLatchDirectionDebounce(t *testing.T) {
	clk := &fakeNow{t: time.Unix(100, 0)}
	l := NewLatch(DefaultDirectionDebounce, DefaultButtonDebounce, clk.now)

	if !l.Direction(core.DirUp) {
		t.Fatal("first direction should be accepted")
	}
	clk.t = clk.t.Add(50 * time.Millisecond)
	if l.Direction(core.DirLeft) {
		t.Error("direction inside the window should be dropped")
	}

	st, err := l.Sample()
	if err != nil {
		t.Fatalf("Sample() error = %v", err)
	}
	if st.Direction != core.DirUp {
		t.Errorf("Sample().Direction = %v, expected up", st.Direction)
	}

	st, _ = l.Sample()
	if st.Direction != core.DirNone {
		t.Errorf("second Sample().Direction = %v, expected none", st.Direction)
	}

	clk.t = clk.t.Add(150 * time.Millisecond)
	if !l.Direction(core.DirLeft) {
		t.Error("direction after the window should be accepted")
	}
}

func TestLatchButtonsArePulses(t *testing.T) {
	clk := &fakeNow{t: time.Unix(100, 0)}
	l := NewLatch(DefaultDirectionDebounce, DefaultButtonDebounce, clk.now)

	l.Press(core.ButtonB)
	l.Press(core.ButtonA)
	if l.Press(core.ButtonB) {
		t.Error("repeated B inside the window should be dropped")
	}
	if !l.Press(core.ButtonQuit) || !l.Press(core.ButtonQuit) {
		t.Error("quit should never be debounced")
	}

	st, _ := l.Sample()
	if st.Buttons != core.ButtonA|core.ButtonB|core.ButtonQuit {
		t.Errorf("Sample().Buttons = %v, expected A+B+quit", st.Buttons)
	}
	if st, _ = l.Sample(); st.Buttons != 0 {
		t.Errorf("Buttons after sample = %v, expected none", st.Buttons)
	}

	clk.t = clk.t.Add(DefaultButtonDebounce)
	if !l.Press(core.ButtonB) {
		t.Error("B after the window should be accepted")
	}
}

func TestLatchRepeatPressSeesRelease(t *testing.T) {
	l := NewLatch(0, 0, nil)

	l.Press(core.ButtonQuit)
	if st, _ := l.Sample(); st.Buttons != core.ButtonQuit {
		t.Fatalf("Sample().Buttons = %v, expected quit", st.Buttons)
	}
	l.Press(core.ButtonQuit)
	l.Press(core.ButtonB)
	if st, _ := l.Sample(); st.Buttons != core.ButtonB {
		t.Errorf("Sample().Buttons = %v, expected B with quit held back", st.Buttons)
	}
	if st, _ := l.Sample(); st.Buttons != core.ButtonQuit {
		t.Errorf("Sample().Buttons = %v, expected the held-back quit", st.Buttons)
	}
	if st, _ := l.Sample(); st.Buttons != 0 {
		t.Errorf("Sample().Buttons = %v, expected none", st.Buttons)
	}
}

func TestLatchConcurrentWriters(t *testing.T) {
	l := NewLatch(0, 0, nil)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				l.Direction(core.DirDown)
				l.Press(core.ButtonA)
			}
		}()
	}
	wg.Wait()

	st, _ := l.Sample()
	if st.Direction != core.DirDown || !st.Buttons.Has(core.ButtonA) {
		t.Errorf("Sample() = %+v, expected down and A", st)
	}
}

func TestRealtimeSleepUntil(t *testing.T) {
	var pf Realtime

	start := pf.Now()
	if err := pf.SleepUntil(context.Background(), start.Add(5*time.Millisecond)); err != nil {
		t.Fatalf("SleepUntil() error = %v", err)
	}
	if pf.Now().Sub(start) < 5*time.Millisecond {
		t.Error("SleepUntil returned before the deadline")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := pf.SleepUntil(ctx, pf.Now().Add(time.Hour))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("SleepUntil() with cancelled ctx = %v, expected context.Canceled", err)
	}
}

func TestHostStop(t *testing.T) {
	h := NewHost()

	if err := h.SleepUntil(context.Background(), time.Now().Add(time.Millisecond)); err != nil {
		t.Fatalf("SleepUntil() before Stop = %v, expected nil", err)
	}

	go func() {
		time.Sleep(5 * time.Millisecond)
		h.Stop()
	}()
	err := h.SleepUntil(context.Background(), time.Now().Add(time.Hour))
	if !errors.Is(err, core.ErrStopped) {
		t.Errorf("SleepUntil() after Stop = %v, expected ErrStopped", err)
	}

	h.Stop()
	select {
	case <-h.Done():
	default:
		t.Error("Done() not closed after Stop")
	}
	if err := h.SleepUntil(context.Background(), time.Now()); !errors.Is(err, core.ErrStopped) {
		t.Errorf("SleepUntil() with past deadline after Stop = %v, expected ErrStopped", err)
	}
}

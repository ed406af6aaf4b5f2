package typewriter

import (
	"context"
	"testing"
	"time"
)

func collect(ch <-chan string) []string {
	var out []string
	for f := range ch {
		out = append(out, f)
	}
	return out
}

func TestFrames(t *testing.T) {
	got := collect(Frames(context.Background(), "héy", time.Millisecond))
	want := []string{"h", "hé", "héy"}
	if len(got) != len(want) {
		t.Fatalf("frames = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("frame %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFramesEmpty(t *testing.T) {
	if got := collect(Frames(context.Background(), "", time.Millisecond)); len(got) != 0 {
		t.Errorf("frames = %q, want none", got)
	}
}

func TestFramesCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := Frames(ctx, "a long tagline that takes a while", time.Hour)
	if first := <-ch; first != "a" {
		t.Fatalf("first frame = %q", first)
	}
	cancel()

	select {
	case _, ok := <-ch:
		if ok {
			// One frame may already be in flight; the channel must close after it.
			if _, ok := <-ch; ok {
				t.Error("channel still open after cancel")
			}
		}
	case <-time.After(time.Second):
		t.Fatal("run did not stop after cancel")
	}
}

func TestRestartStopsPreviousRun(t *testing.T) {
	tw := New(time.Hour)
	first := tw.Start(context.Background(), "first")
	<-first

	second := tw.Start(context.Background(), "second")
	select {
	case _, ok := <-first:
		if ok {
			t.Error("first run produced a frame after restart")
		}
	case <-time.After(time.Second):
		t.Fatal("first run still alive after restart")
	}

	if f := <-second; f != "s" {
		t.Errorf("second run first frame = %q, want s", f)
	}
	tw.Stop()
}

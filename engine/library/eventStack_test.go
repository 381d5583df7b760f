package library

import (
	"fmt"
	"testing"

	"github.com/nbd-wtf/go-nostr"
)

func TestEventStackIsFIFO(t *testing.T) {
	stack := NewEventStack(1)
	if _, ok := stack.Pop(); ok {
		t.Fatal("pop on an empty stack returned an event")
	}
	for i := 0; i < 10; i++ {
		stack.Push(&nostr.Event{ID: fmt.Sprintf("event-%d", i)})
	}
	for i := 0; i < 10; i++ {
		event, ok := stack.Pop()
		if !ok {
			t.Fatalf("stack ran out after %d events, want 10", i)
		}
		if want := fmt.Sprintf("event-%d", i); event.ID != want {
			t.Errorf("popped %s, want %s", event.ID, want)
		}
	}
	if _, ok := stack.Pop(); ok {
		t.Error("pop on a drained stack returned an event")
	}
}

func TestEventStackInterleaved(t *testing.T) {
	stack := NewEventStack(2)
	stack.Push(&nostr.Event{ID: "a"})
	stack.Push(&nostr.Event{ID: "b"})
	if e, _ := stack.Pop(); e.ID != "a" {
		t.Errorf("popped %s, want a", e.ID)
	}
	stack.Push(&nostr.Event{ID: "c"})
	stack.Push(&nostr.Event{ID: "d"})
	for _, want := range []string{"b", "c", "d"} {
		e, ok := stack.Pop()
		if !ok || e.ID != want {
			t.Errorf("popped %v, want %s", e, want)
		}
	}
}

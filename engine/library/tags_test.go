package library

import (
	"testing"

	"github.com/nbd-wtf/go-nostr"
)

func TestGetOpData(t *testing.T) {
	event := nostr.Event{Tags: nostr.Tags{
		nostr.Tag{"e", "roothash", "", "root"},
		nostr.Tag{"op", "movements.approve.movement", "movement-1"},
	}}
	got, ok := GetOpData(event, "approve.movement")
	if !ok || got != "movement-1" {
		t.Errorf("got %q %v, want movement-1 true", got, ok)
	}
	got, ok = GetOpData(event, "")
	if !ok || got != "movement-1" {
		t.Errorf("empty key: got %q %v, want movement-1 true", got, ok)
	}
	if _, ok := GetOpData(event, "create.project"); ok {
		t.Error("found op data for an operation the event does not carry")
	}
	if _, ok := GetOpData(nostr.Event{}, ""); ok {
		t.Error("found op data on an event with no tags")
	}
}

func TestGetFirstReply(t *testing.T) {
	event := nostr.Event{Tags: nostr.Tags{
		nostr.Tag{"e", "roothash", "", "root"},
		nostr.Tag{"e", "replyhash", "", "reply"},
	}}
	got, ok := GetFirstReply(event)
	if !ok || got != "replyhash" {
		t.Errorf("got %q %v, want replyhash true", got, ok)
	}
	if _, ok := GetFirstReply(nostr.Event{}); ok {
		t.Error("found a reply on an event with no tags")
	}
}

func TestGetFirstTag(t *testing.T) {
	event := nostr.Event{Tags: nostr.Tags{
		nostr.Tag{"height", "800000"},
		nostr.Tag{"hash", "00000000000000000001aa"},
	}}
	got, ok := GetFirstTag(event, "hash")
	if !ok || got != "00000000000000000001aa" {
		t.Errorf("got %q %v, want the hash tag value", got, ok)
	}
	if _, ok := GetFirstTag(event, "difficulty"); ok {
		t.Error("found a tag the event does not carry")
	}
}

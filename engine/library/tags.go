package library

import (
	"strings"

	"github.com/nbd-wtf/go-nostr"
)

func GetFirstTag(e nostr.Event, startsWith string) (string, bool) {
	for _, tag := range e.Tags {
		if tag.StartsWith([]string{startsWith}) {
			return tag.Value(), true
		}
	}
	return "", false
}

func GetFirstReply(e nostr.Event) (string, bool) {
	for _, tag := range e.Tags {
		for i, s := range tag {
			if s == "reply" {
				if i == 3 {
					return tag[1], true
				}
			}
		}
	}
	return "", false
}

// GetOpData returns the trailing element of the first "op" tag whose name
// ends with the given key, e.g. ["op", "movements.approve.movement", <id>].
func GetOpData(e nostr.Event, key string) (string, bool) {
	for _, tag := range e.Tags {
		if tag.StartsWith([]string{"op"}) {
			if len(tag) > 2 {
				if key == "" || strings.HasSuffix(tag[1], key) {
					return tag[len(tag)-1], true
				}
			}
		}
	}
	return "", false
}

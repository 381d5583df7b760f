package blocks

import (
	"fmt"
	"testing"

	"github.com/nbd-wtf/go-nostr"
	"github.com/spf13/viper"
	"bondly/engine/actors"
)

func blockEvent(pubkey string, height int64, hash string) nostr.Event {
	return nostr.Event{
		ID:     fmt.Sprintf("block-event-%d-%s", height, hash[:8]),
		PubKey: pubkey,
		Kind:   1517,
		Tags: nostr.Tags{
			nostr.Tag{"hash", hash},
			nostr.Tag{"height", fmt.Sprintf("%d", height)},
			nostr.Tag{"minertime", "1693526400"},
			nostr.Tag{"mediantime", "1693526100"},
			nostr.Tag{"difficulty", "55621444139429"},
		},
	}
}

func TestHandleEvent(t *testing.T) {
	conf := viper.New()
	conf.Set("rootDir", t.TempDir()+"/")
	conf.Set("flatFileDir", "data/")
	conf.Set("blockOracles", []string{"deadbeef0000000000000000000000000000000000000000000000000000cafe"})
	actors.SetConfig(conf)
	oracle := actors.MyWallet().Account

	if _, err := HandleEvent(blockEvent(oracle, 800000, "00000000000000000001aa00000000000000000000000000000000000000aa01")); err != nil {
		t.Fatalf("block from the protocol owner refused: %v", err)
	}
	tip, ok := Tip()
	if !ok || tip.Height != 800000 {
		t.Fatalf("tip height %d, want 800000", tip.Height)
	}

	// A configured oracle may announce too.
	configured := "deadbeef0000000000000000000000000000000000000000000000000000cafe"
	if _, err := HandleEvent(blockEvent(configured, 800001, "00000000000000000001aa00000000000000000000000000000000000000aa02")); err != nil {
		t.Fatalf("block from a configured oracle refused: %v", err)
	}

	if _, err := HandleEvent(blockEvent("0000000000000000000000000000000000000000000000000000000000stranger", 800002, "00000000000000000001aa00000000000000000000000000000000000000aa03")); err == nil {
		t.Error("block from an untrusted account was accepted")
	}

	// Not higher than the current tip.
	if _, err := HandleEvent(blockEvent(oracle, 800001, "00000000000000000001aa00000000000000000000000000000000000000aa04")); err == nil {
		t.Error("block at the current height was accepted")
	}
	if _, err := HandleEvent(blockEvent(oracle, 799999, "00000000000000000001aa00000000000000000000000000000000000000aa05")); err == nil {
		t.Error("block below the current height was accepted")
	}

	if _, err := HandleEvent(nostr.Event{ID: "wrong-kind", PubKey: oracle, Kind: 1518}); err == nil {
		t.Error("event of the wrong kind was accepted")
	}

	tip, _ = Tip()
	if tip.Height != 800001 {
		t.Errorf("tip height %d, want 800001", tip.Height)
	}
}

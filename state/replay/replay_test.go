package replay

import (
	"testing"

	"github.com/spf13/viper"
	"bondly/engine/actors"
	"bondly/engine/library"
)

func TestReceipts(t *testing.T) {
	conf := viper.New()
	conf.Set("rootDir", t.TempDir()+"/")
	conf.Set("flatFileDir", "data/")
	actors.SetConfig(conf)

	id := library.Sha256("8f3b1c6a5ed04a1f5c2b1a94a4c8d8aa2c2b3d4e5f60718293a4b5c6d7e8f901")
	if AlreadyHandled(id) {
		t.Fatal("event reported as handled before any receipt was recorded")
	}
	RecordHandled(id, 1693526400)
	if !AlreadyHandled(id) {
		t.Fatal("recorded event not reported as handled")
	}
	if got := GetMap()[id]; got != 1693526400 {
		t.Errorf("handled-at %d, want 1693526400", got)
	}
}

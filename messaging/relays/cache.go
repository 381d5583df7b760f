package relays

import (
	"context"

	"github.com/nbd-wtf/go-nostr"
	"github.com/sasha-s/go-deadlock"
	"bondly/engine/actors"
	"bondly/engine/library"
)

var cache = make(map[string]nostr.Event)
var cacheMu = &deadlock.Mutex{}

func pushCache(e nostr.Event) {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	cache[e.ID] = e
	publishToBackupRelay(e)
}

func publishToBackupRelay(event nostr.Event) {
	if !backupStarted {
		backupStarted = true
		startBackupRelay()
	}
	go func() {
		backupSendChan <- event
	}()
}

var backupStarted = false
var backupSendChan = make(chan nostr.Event)

func startBackupRelay() {
	relay, err := nostr.RelayConnect(context.Background(), actors.MakeOrGetConfig().GetString("backupRelay"))
	if err != nil {
		return
	}
	go func() {
		for {
			select {
			case e := <-backupSendChan:
				go func() {
					sane := library.ValidateSaneExecutionTime()
					_, err := relay.Publish(context.Background(), e)
					if err != nil {
						actors.LogCLI(err.Error(), 2)
					}
					sane()
				}()
			case <-actors.GetTerminateChan():
				relay.Close()
				return
			}
		}
	}()
}

package relays

import (
	"context"
	"time"

	"github.com/nbd-wtf/go-nostr"
	"github.com/sasha-s/go-deadlock"
	"bondly/engine/actors"
	"bondly/engine/library"
)

func relayList() []string {
	conf := actors.MakeOrGetConfig()
	var urls []string
	urls = append(urls, conf.GetStringSlice("relaysMust")...)
	urls = append(urls, conf.GetStringSlice("relaysOptional")...)
	return urls
}

// FetchLatestProfile returns the most recent kind 0 profile event published
// by the given account, so that a payee's lightning address can be resolved.
func FetchLatestProfile(account library.Account) (n nostr.Event, b bool) {
	sane := library.ValidateSaneExecutionTime()
	defer sane()
	events := make(map[string]nostr.Event)
	eventsMu := &deadlock.Mutex{}
	filters := nostr.Filters{
		nostr.Filter{
			Kinds:   []int{0},
			Authors: []string{account},
		}}
	wait := &deadlock.WaitGroup{}
	for _, url := range relayList() {
		wait.Add(1)
		go func(url string) {
			defer wait.Done()
			ctx := context.Background()
			relay, err := nostr.RelayConnect(ctx, url)
			if err != nil {
				return
			}
			ctxsub, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			sub, _ := relay.Subscribe(ctxsub, filters)
		L:
			for {
				select {
				case ev := <-sub.Events:
					if ev == nil {
						break L
					}
					eventsMu.Lock()
					events[ev.ID] = *ev
					pushCache(*ev)
					eventsMu.Unlock()
				case <-time.After(time.Second * 6):
					go func() {
						sub.Close()
						relay.Close()
					}()
					break L
				}
			}
		}(url)
	}
	wait.Wait()
	var timestamp nostr.Timestamp
	for _, event := range events {
		if event.CreatedAt > timestamp {
			b = true
			n = event
			timestamp = event.CreatedAt
		}
	}
	if !b {
		actors.LogCLI("could not find profile for account "+account, 1)
	}
	return
}

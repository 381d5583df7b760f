package eventcatcher

import (
	"context"
	"time"

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
}

// FetchCache returns an event previously seen on the wire, whether or not it
// was handled.
func FetchCache(id library.Sha256) (e *nostr.Event, r bool) {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	ev, re := cache[id]
	return &ev, re
}

// SubscribeToTree follows every event that replies to the ignition event and
// feeds the valid ones to the conductor. It reconnects itself if the relay
// goes quiet for more than two minutes.
func SubscribeToTree(eChan chan nostr.Event, sendChan chan nostr.Event, eose chan bool) {
	var sleepChan = make(chan bool)
	sleeper(sleepChan)
	relay, err := nostr.RelayConnect(context.Background(), actors.MakeOrGetConfig().GetStringSlice("relaysMust")[0])
	if err != nil {
		actors.LogCLI(err.Error(), 1)
		time.Sleep(time.Second * 5)
		go SubscribeToTree(eChan, sendChan, eose)
		return
	}

	tags := make(map[string][]string)
	tags["e"] = []string{actors.IgnitionEvent}
	var filters nostr.Filters
	filters = []nostr.Filter{{
		Tags: tags,
	},
	}

	ctx, cancel := context.WithCancel(context.Background())
	actors.LogCLI("Connecting to "+relay.URL, 4)
	sub, _ := relay.Subscribe(ctx, filters)

	go func() {
		for {
			select {
			case e := <-sendChan:
				go func() {
					sane := library.ValidateSaneExecutionTime()
					_, err := relay.Publish(context.Background(), e)
					if err != nil {
						actors.LogCLI(err.Error(), 2)
					}
					sane()
				}()
			case <-actors.GetTerminateChan():
				return
			}
		}
	}()

	go func() {
		<-sub.EndOfStoredEvents
		eose <- true
	}()
	lastEventTime := time.Now()
L:
	for {
		select {
		case <-sleepChan:
			go func() {
				actors.LogCLI("system sleep detected, terminating application", 2)
				cancel()
				actors.Shutdown()
			}()
		case ev := <-sub.Events:
			sane := library.ValidateSaneExecutionTime()
			if ev == nil {
				actors.LogCLI("Terminating connection to relay", 3)
				cancel()
				actors.LogCLI("Restarting Eventcatcher", 4)
				go SubscribeToTree(eChan, sendChan, eose)
				break L
			} else {
				lastEventTime = time.Now()
				if ev.Kind != 21069 {
					if ok, _ := ev.CheckSignature(); ok {
						pushCache(*ev)
						eChan <- *ev
					}
				}
			}
			sane()
		case <-time.After(time.Minute):
			if time.Since(lastEventTime) > time.Duration(time.Minute*2) {
				go func() {
					actors.LogCLI("Terminating connection to relay", 3)
					cancel()
				}()
				actors.LogCLI("Restarting Eventcatcher", 4)
				go SubscribeToTree(eChan, sendChan, eose)
				break L
			}
			var t = nostr.Tags{}
			t = append(t, nostr.Tag{"e", actors.IgnitionEvent, "", "root"})
			keepAlive := nostr.Event{
				PubKey:    actors.MyWallet().Account,
				CreatedAt: nostr.Timestamp(time.Now().Unix()),
				Kind:      21069,
				Tags:      t,
			}

			keepAlive.ID = keepAlive.GetID()
			keepAlive.Sign(actors.MyWallet().PrivateKey)
			sendChan <- keepAlive
		case <-actors.GetTerminateChan():
			break L
		}
	}
	cancel()
}

package eventconductor

import (
	"fmt"
	"time"

	"github.com/nbd-wtf/go-nostr"
	"github.com/sasha-s/go-deadlock"
	"bondly/engine/actors"
	"bondly/engine/library"
	"bondly/messaging/blocks"
	"bondly/messaging/eventcatcher"
	"bondly/state/movements"
	"bondly/state/projects"
	"bondly/state/replay"
)

type EventMap map[string]nostr.Event

var eventsInState = make(EventMap)
var eventsInStateLock = &deadlock.Mutex{}

var started = make(map[string]bool)

var publishChan = make(chan nostr.Event)

func Publish(event nostr.Event) {
	go func() {
		publishChan <- event
	}()
}

func Start() {
	go handleEvents()
}

// handleEvents pops state change requests off the stack and handles them one
// at a time. This single loop is what makes every treasury operation an
// indivisible step: no second caller can observe a half-updated balance or a
// vote set mid-mutation.
func handleEvents() {
	if !started["handleEvents"] {
		started["handleEvents"] = true
		actors.GetWaitGroup().Add(1)
		var eoseChan = make(chan bool)
		var eventChan = make(chan nostr.Event)
		stack := library.NewEventStack(1)
		var eose bool
		go eventcatcher.SubscribeToTree(eventChan, publishChan, eoseChan)
		for {
			select {
			case <-eoseChan:
				eose = true
			case event := <-eventChan:
				addEventToCache(event)
				stack.Push(&event)
			case <-time.After(time.Millisecond * 150):
				if eose {
					event, ok := stack.Pop()
					if ok {
						if err := HandleEvent(*event); err != nil {
							actors.LogCLI(err.Error(), 2)
						}
					}
				}
			case <-actors.GetTerminateChan():
				actors.GetWaitGroup().Done()
				return
			}
		}
	}
}

// HandleEvent routes a state change request to the mind that owns its kind
// range. The replay mind refuses redelivered events before any mind runs.
func HandleEvent(e nostr.Event) error {
	if replay.AlreadyHandled(e.ID) {
		return fmt.Errorf("event %s has already been handled", e.ID)
	}
	var err error
	switch {
	case e.Kind == 1517:
		_, err = blocks.HandleEvent(e)
	case e.Kind >= 641600 && e.Kind <= 641699:
		_, err = projects.HandleEvent(e)
	case e.Kind >= 641700 && e.Kind <= 641799:
		_, err = movements.HandleEvent(e)
	default:
		return fmt.Errorf("event %s has kind %d which no mind handles", e.ID, e.Kind)
	}
	if err != nil {
		return err
	}
	replay.RecordHandled(e.ID, time.Now().Unix())
	return nil
}

func addEventToCache(e nostr.Event) {
	eventsInStateLock.Lock()
	defer eventsInStateLock.Unlock()
	eventsInState[e.ID] = e
}

func GetEventFromCache(id library.Sha256) (e nostr.Event) {
	eventsInStateLock.Lock()
	defer eventsInStateLock.Unlock()
	if event, ok := eventsInState[id]; ok {
		return event
	}
	if event, ok := eventcatcher.FetchCache(id); ok {
		return *event
	}
	return
}

package replay

import (
	"encoding/json"
	"os"

	"github.com/sasha-s/go-deadlock"
	"bondly/engine/actors"
	"bondly/engine/library"
)

// The replay mind records every state-change event this engine has handled
// so a redelivered event is refused before any other mind runs.

type db struct {
	data  map[library.Sha256]int64
	mutex *deadlock.Mutex
}

var currentState = db{
	data:  make(map[library.Sha256]int64),
	mutex: &deadlock.Mutex{},
}

var started = false
var available = &deadlock.Mutex{}

// StartDb starts the database for this mind (the Mind-state). It blocks until the database is ready to use.
func startDb() {
	available.Lock()
	defer available.Unlock()
	if !started {
		started = true
		// we need a channel to listen for a successful database start
		ready := make(chan struct{})
		// now we can start the database in a new goroutine
		go start(ready)
		// when the database has started, the goroutine will close the `ready` channel.
		<-ready //This channel listener blocks until closed by `startDb`.
		actors.LogCLI("Replay Mind has started", 4)
	}
}

func start(ready chan struct{}) {
	// We add a delta to the provided waitgroup so that upstream knows when the database has been safely shut down
	actors.GetWaitGroup().Add(1)
	c, ok := actors.Open("replay", "current")
	if ok {
		currentState.restoreFromDisk(c)
	}
	close(ready)
	<-actors.GetTerminateChan()
	currentState.mutex.Lock()
	defer currentState.mutex.Unlock()
	currentState.persistToDisk()
	actors.GetWaitGroup().Done()
	actors.LogCLI("Replay Mind has shut down", 4)
}

func (s *db) restoreFromDisk(f *os.File) {
	s.mutex.Lock()
	err := json.NewDecoder(f).Decode(&s.data)
	if err != nil {
		if err.Error() != "EOF" {
			actors.LogCLI(err.Error(), 0)
		}
	}
	s.mutex.Unlock()
	err = f.Close()
	if err != nil {
		actors.LogCLI(err.Error(), 0)
	}
}

// persistToDisk persists the current state to disk
func (s *db) persistToDisk() {
	b, err := json.MarshalIndent(s.data, "", " ")
	if err != nil {
		actors.LogCLI(err.Error(), 0)
	}
	actors.Write("replay", "current", b)
}

// AlreadyHandled reports whether this engine has handled the event before.
func AlreadyHandled(id library.Sha256) bool {
	startDb()
	currentState.mutex.Lock()
	defer currentState.mutex.Unlock()
	_, exists := currentState.data[id]
	return exists
}

// RecordHandled stamps an event id with the time it was handled.
func RecordHandled(id library.Sha256, handledAt int64) {
	startDb()
	currentState.mutex.Lock()
	defer currentState.mutex.Unlock()
	currentState.data[id] = handledAt
	currentState.persistToDisk()
}

func GetMap() map[library.Sha256]int64 {
	startDb()
	currentState.mutex.Lock()
	defer currentState.mutex.Unlock()
	m := make(map[library.Sha256]int64)
	for id, handledAt := range currentState.data {
		m[id] = handledAt
	}
	return m
}

package movements

import (
	"encoding/json"
	"os"

	"github.com/sasha-s/go-deadlock"
	"bondly/engine/actors"
	"bondly/engine/library"
)

type db struct {
	data  map[library.MovementID]Movement
	mutex *deadlock.Mutex
}

var currentState = db{
	data:  make(map[library.MovementID]Movement),
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
		actors.LogCLI("Movements Mind has started", 4)
	}
}

func start(ready chan struct{}) {
	// We add a delta to the provided waitgroup so that upstream knows when the database has been safely shut down
	actors.GetWaitGroup().Add(1)
	// Load current movements from disk
	c, ok := actors.Open("movements", "current")
	if ok {
		currentState.restoreFromDisk(c)
	}
	close(ready)
	<-actors.GetTerminateChan()
	currentState.mutex.Lock()
	defer currentState.mutex.Unlock()
	currentState.persistToDisk()
	actors.GetWaitGroup().Done()
	actors.LogCLI("Movements Mind has shut down", 4)
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
	actors.Write("movements", "current", b)
}

func (s *db) upsert(id library.MovementID, movement Movement) {
	movement.MovementID = id
	s.data[id] = movement
}

func GetMap() Mapped {
	startDb()
	currentState.mutex.Lock()
	defer currentState.mutex.Unlock()
	return getMap()
}

func getMap() Mapped {
	m := make(map[library.MovementID]Movement)
	for id, movement := range currentState.data {
		m[id] = movement
	}
	return m
}

// GetMovement returns a copy of the movement record for the given slug.
func GetMovement(id library.MovementID) (Movement, bool) {
	startDb()
	currentState.mutex.Lock()
	defer currentState.mutex.Unlock()
	return getMovement(id)
}

func getMovement(id library.MovementID) (Movement, bool) {
	mv, ok := currentState.data[id]
	if !ok {
		return Movement{}, false
	}
	approvals := make(map[library.Account]bool, len(mv.Approvals))
	for account, voted := range mv.Approvals {
		approvals[account] = voted
	}
	rejections := make(map[library.Account]bool, len(mv.Rejections))
	for account, voted := range mv.Rejections {
		rejections[account] = voted
	}
	mv.Approvals = approvals
	mv.Rejections = rejections
	return mv, true
}

func TotalMovements() int64 {
	startDb()
	currentState.mutex.Lock()
	defer currentState.mutex.Unlock()
	return int64(len(currentState.data))
}

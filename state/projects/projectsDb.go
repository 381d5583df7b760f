package projects

import (
	"encoding/json"
	"os"

	"github.com/sasha-s/go-deadlock"
	"golang.org/x/exp/slices"
	"bondly/engine/actors"
	"bondly/engine/library"
)

type db struct {
	data  map[library.ProjectID]Project
	mutex *deadlock.Mutex
}

var currentState = db{
	data:  make(map[library.ProjectID]Project),
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
		actors.LogCLI("Projects Mind has started", 4)
	}
}

func start(ready chan struct{}) {
	// We add a delta to the provided waitgroup so that upstream knows when the database has been safely shut down
	actors.GetWaitGroup().Add(1)
	// Load current projects from disk
	c, ok := actors.Open("projects", "current")
	if ok {
		currentState.restoreFromDisk(c)
	}
	close(ready)
	<-actors.GetTerminateChan()
	currentState.mutex.Lock()
	defer currentState.mutex.Unlock()
	currentState.persistToDisk()
	actors.GetWaitGroup().Done()
	actors.LogCLI("Projects Mind has shut down", 4)
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
	actors.Write("projects", "current", b)
}

func (s *db) upsert(id library.ProjectID, project Project) {
	project.ProjectID = id
	s.data[id] = project
}

func GetMap() Mapped {
	startDb()
	currentState.mutex.Lock()
	defer currentState.mutex.Unlock()
	return getMap()
}

func getMap() Mapped {
	m := make(map[library.ProjectID]Project)
	for id, project := range currentState.data {
		m[id] = project
	}
	return m
}

// GetProject returns a copy of the project record for the given slug.
func GetProject(id library.ProjectID) (Project, bool) {
	startDb()
	currentState.mutex.Lock()
	defer currentState.mutex.Unlock()
	return getProject(id)
}

func getProject(id library.ProjectID) (Project, bool) {
	p, ok := currentState.data[id]
	if !ok {
		return Project{}, false
	}
	owners := make([]library.Account, len(p.Owners))
	copy(owners, p.Owners)
	p.Owners = owners
	return p, true
}

func TotalProjects() int64 {
	startDb()
	currentState.mutex.Lock()
	defer currentState.mutex.Unlock()
	return int64(len(currentState.data))
}

// IsOwner reports whether the account is in the project's owner set.
func IsOwner(id library.ProjectID, account library.Account) bool {
	startDb()
	currentState.mutex.Lock()
	defer currentState.mutex.Unlock()
	return isOwner(id, account)
}

func isOwner(id library.ProjectID, account library.Account) bool {
	p, ok := currentState.data[id]
	if !ok {
		return false
	}
	return slices.Contains(p.Owners, account)
}

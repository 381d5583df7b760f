package actors

import (
	"github.com/sasha-s/go-deadlock"
	"bondly/engine/library"
)

var terminateChan chan struct{}
var terminateMu = &deadlock.Mutex{}
var terminated = false

var waitGroup = &deadlock.WaitGroup{}

func SetTerminateChan(term chan struct{}) {
	terminateMu.Lock()
	defer terminateMu.Unlock()
	terminateChan = term
	terminated = false
}

func GetTerminateChan() chan struct{} {
	terminateMu.Lock()
	defer terminateMu.Unlock()
	if terminateChan == nil {
		terminateChan = make(chan struct{})
	}
	return terminateChan
}

func GetWaitGroup() *deadlock.WaitGroup {
	return waitGroup
}

// Shutdown closes the terminate channel and blocks until every mind has
// flushed its state to disk.
func Shutdown() {
	terminateMu.Lock()
	if !terminated && terminateChan != nil {
		terminated = true
		close(terminateChan)
	}
	terminateMu.Unlock()
	waitGroup.Wait()
}

// LogCLI mirrors library.LogCLI so minds that only import actors can log.
func LogCLI(message interface{}, level int) {
	library.LogCLI(message, level)
}

package state

import (
	"time"
)

// newLocalEnv creates a new LocalEnv instance with default values. Logger is
// set after configuration is loaded.
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start: time.Now(),
	}
}

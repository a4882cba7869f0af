package dataset

import (
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
)

const lockFileName = ".tagforge.lock"

// sessionLock enforces single-process access to a dataset folder. The engine
// has no internal synchronization, so two processes editing the same sidecars
// would silently clobber each other without it.
type sessionLock struct {
	fl *flock.Flock
}

func acquireSessionLock(folder string) (*sessionLock, error) {
	path := filepath.Join(folder, lockFileName)
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire dataset lock %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("dataset %s is already in use by another tagforge process", folder)
	}
	return &sessionLock{fl: fl}, nil
}

func (l *sessionLock) release() error {
	if l == nil || l.fl == nil {
		return nil
	}
	return l.fl.Unlock()
}

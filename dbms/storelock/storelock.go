// Copyright 2026 Neo4j Admin contributors
// Licensed under the GPLv3, see LICENCE file for details.

// Package storelock implements the advisory lock a running server
// holds on a database directory. Administrative tools take the same
// lock so they never operate on a store that is in active use.
package storelock

import (
	"os"
	"path/filepath"

	"github.com/juju/errors"
	"github.com/juju/loggo/v2"
)

var logger = loggo.GetLogger("neo4jadmin.dbms.storelock")

// LockFilename is the fixed name of the lock file inside a database
// directory.
const LockFilename = "store_lock"

// ErrLocked is returned by Acquire when another process already holds
// the store lock.
const ErrLocked = errors.ConstError("store is locked")

// Lock is a held store lock. It must be released by the caller.
type Lock struct {
	path string
	file *os.File
}

// Acquire takes an exclusive advisory lock on the database directory.
// The directory must already exist; it is never created as a side
// effect. The lock file itself is created if absent.
//
// Returns ErrLocked when the lock is held elsewhere, and an error
// satisfying errors.Is(err, os.ErrPermission) when the lock file
// cannot be opened for writing.
func Acquire(databaseDir string) (*Lock, error) {
	info, err := os.Stat(databaseDir)
	if err != nil {
		return nil, errors.Trace(err)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("%q is not a directory", databaseDir)
	}
	path := filepath.Join(databaseDir, LockFilename)
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, errors.Trace(err)
	}
	if err := lockFile(f); err != nil {
		_ = f.Close()
		return nil, errors.Trace(err)
	}
	logger.Debugf("acquired store lock %s", path)
	return &Lock{path: path, file: f}, nil
}

// Path returns the location of the lock file.
func (l *Lock) Path() string {
	return l.path
}

// Release drops the lock. It is safe to call more than once.
func (l *Lock) Release() error {
	if l.file == nil {
		return nil
	}
	err := unlockFile(l.file)
	if cerr := l.file.Close(); err == nil {
		err = cerr
	}
	l.file = nil
	logger.Debugf("released store lock %s", l.path)
	return errors.Trace(err)
}

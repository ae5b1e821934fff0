// Copyright 2026 Neo4j Admin contributors
// Licensed under the GPLv3, see LICENCE file for details.

//go:build windows

package storelock

import (
	"os"

	"github.com/juju/errors"
	"golang.org/x/sys/windows"
)

func lockFile(f *os.File) error {
	var overlapped windows.Overlapped
	err := windows.LockFileEx(
		windows.Handle(f.Fd()),
		windows.LOCKFILE_EXCLUSIVE_LOCK|windows.LOCKFILE_FAIL_IMMEDIATELY,
		0, 1, 0, &overlapped,
	)
	if err == windows.ERROR_LOCK_VIOLATION {
		return ErrLocked
	}
	return errors.Trace(err)
}

func unlockFile(f *os.File) error {
	var overlapped windows.Overlapped
	return errors.Trace(windows.UnlockFileEx(
		windows.Handle(f.Fd()), 0, 1, 0, &overlapped,
	))
}

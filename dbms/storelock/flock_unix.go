// Copyright 2026 Neo4j Admin contributors
// Licensed under the GPLv3, see LICENCE file for details.

//go:build !windows

package storelock

import (
	"os"

	"github.com/juju/errors"
	"golang.org/x/sys/unix"
)

func lockFile(f *os.File) error {
	err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB)
	if err == unix.EWOULDBLOCK || err == unix.EAGAIN {
		return ErrLocked
	}
	return errors.Trace(err)
}

func unlockFile(f *os.File) error {
	return errors.Trace(unix.Flock(int(f.Fd()), unix.LOCK_UN))
}

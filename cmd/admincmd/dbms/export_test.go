// Copyright 2026 Neo4j Admin contributors
// Licensed under the GPLv3, see LICENCE file for details.

package dbms

import (
	"github.com/juju/cmd/v4"

	"github.com/neo4j/neo4j-admin/dbms/archive"
	"github.com/neo4j/neo4j-admin/dbms/storelock"
)

// NewDumpCommandForTest returns a dump command with the archiving
// engine replaced by the given test double.
func NewDumpCommandForTest(homeDir, configDir string, dumper archive.Dumper) cmd.Command {
	return &dumpCommand{
		homeDir:   homeDir,
		configDir: configDir,
		dumper:    dumper,
		acquireLock: func(databaseDir string) (lockReleaser, error) {
			return storelock.Acquire(databaseDir)
		},
	}
}

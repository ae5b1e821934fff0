// Copyright 2026 Neo4j Admin contributors
// Licensed under the GPLv3, see LICENCE file for details.

// Package dbms holds the database management subcommands of
// neo4j-admin.
package dbms

import (
	"os"
	"path/filepath"
	"reflect"

	"github.com/juju/cmd/v4"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"
	"github.com/juju/loggo/v2"

	"github.com/neo4j/neo4j-admin/dbms/archive"
	"github.com/neo4j/neo4j-admin/dbms/config"
	"github.com/neo4j/neo4j-admin/dbms/storelock"
)

var logger = loggo.GetLogger("neo4jadmin.cmd.dbms")

// dumpSuffix is appended to the database name when the destination is
// an existing directory.
const dumpSuffix = ".dump"

// lockReleaser is the handle returned by the store-lock primitive.
type lockReleaser interface {
	Release() error
}

// NewDumpCommand returns the dump subcommand, resolving paths against
// the given home and configuration directories.
func NewDumpCommand(homeDir, configDir string) cmd.Command {
	return &dumpCommand{
		homeDir:   homeDir,
		configDir: configDir,
		dumper:    archive.NewDumper(),
		acquireLock: func(databaseDir string) (lockReleaser, error) {
			return storelock.Acquire(databaseDir)
		},
	}
}

// dumpCommand dumps a single database into an archive file.
type dumpCommand struct {
	cmd.CommandBase
	homeDir   string
	configDir string

	database string
	to       string

	dumper      archive.Dumper
	acquireLock func(databaseDir string) (lockReleaser, error)
}

const dumpDoc = `
Dump a database into a single-file archive. The archive can be used by
the load command. <destination-path> can be a file or directory (in
which case a file called <database>.dump will be created). It is not
possible to dump a database that is mounted in a running Neo4j server.
`

// Info implements Command.
func (c *dumpCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:    "dump",
		Args:    "[--database=<name>] --to=<destination-path>",
		Purpose: "Dump a database into a single-file archive.",
		Doc:     dumpDoc,
	}
}

// SetFlags implements Command.
func (c *dumpCommand) SetFlags(f *gnuflag.FlagSet) {
	f.StringVar(&c.database, "database", config.DefaultDatabase, "Name of database.")
	f.StringVar(&c.to, "to", "", "Destination (file or folder) of database dump.")
}

// Init implements Command.
func (c *dumpCommand) Init(args []string) error {
	if c.to == "" {
		return errors.New("Missing argument 'to'")
	}
	return cmd.CheckEmpty(args)
}

// Run implements Command.
func (c *dumpCommand) Run(ctx *cmd.Context) error {
	cfg, err := config.Load(c.homeDir, c.configDir)
	if err != nil {
		return errors.Trace(err)
	}

	databaseDir := cfg.DatabaseDirectory(c.database)
	// Follow a symlinked database directory to its real target, once.
	// The resolved path is what both the lock and the archiver see.
	if real, err := filepath.EvalSymlinks(databaseDir); err == nil {
		databaseDir = real
	} else if !errors.Is(err, os.ErrNotExist) {
		return errors.Trace(err)
	}
	txLogDir := cfg.TransactionLogDirectory(databaseDir)

	destination := c.resolveDestination(ctx)

	if _, err := os.Stat(databaseDir); errors.Is(err, os.ErrNotExist) {
		return errors.Errorf("database does not exist: %s", c.database)
	} else if err != nil {
		return errors.Trace(err)
	}

	lock, err := c.acquireLock(databaseDir)
	if err != nil {
		return translateLockFailure(err)
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Errorf("cannot release store lock: %v", err)
		}
	}()

	logger.Infof("dumping %q to %s", c.database, destination)
	return translateDumpFailure(c.dumper.Dump(databaseDir, txLogDir, destination, excludeStoreLock))
}

// resolveDestination computes the final archive path. An existing
// directory gets the default archive name appended; anything else is
// taken literally, made absolute against the invocation directory.
func (c *dumpCommand) resolveDestination(ctx *cmd.Context) string {
	destination := filepath.Clean(ctx.AbsPath(c.to))
	if info, err := os.Stat(destination); err == nil && info.IsDir() {
		destination = filepath.Join(destination, c.database+dumpSuffix)
	}
	return destination
}

// excludeStoreLock keeps the store-lock file out of the archive so the
// dump never trips over a file the server holds locked.
func excludeStoreLock(path string) bool {
	return filepath.Base(path) == storelock.LockFilename
}

// translateLockFailure maps store-lock failures onto operator-facing
// messages.
func translateLockFailure(err error) error {
	cause := errors.Cause(err)
	switch {
	case errors.Is(cause, storelock.ErrLocked):
		return errors.New("the database is in use -- stop Neo4j and try again")
	case errors.Is(cause, os.ErrPermission):
		return errors.New("you do not have permission to dump the database -- is Neo4j running as a different user?")
	}
	return translateDumpFailure(err)
}

// translateDumpFailure is the single funnel mapping archiver failures
// onto the command's error messages. The underlying error's type name
// is kept in the message; it often carries the only diagnostic signal.
func translateDumpFailure(err error) error {
	if err == nil {
		return nil
	}
	cause := errors.Cause(err)
	switch e := cause.(type) {
	case *archive.FileAlreadyExistsError:
		return errors.Errorf("archive already exists: %s", e.Path)
	case *archive.NoSuchFileError:
		return errors.Errorf("unable to dump database: %s: %s", diagnosticTag(cause), e.Path)
	}
	return errors.Errorf("unable to dump database: %s: %s", diagnosticTag(cause), cause.Error())
}

// diagnosticTag names the concrete type of an error, mirroring how the
// class name of a Java NIO exception is the interesting part of it.
func diagnosticTag(err error) string {
	t := reflect.TypeOf(err)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Name() == "" {
		return t.String()
	}
	return t.Name()
}

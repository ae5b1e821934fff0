// Copyright 2026 Neo4j Admin contributors
// Licensed under the GPLv3, see LICENCE file for details.

// Package admincmd wires the neo4j-admin supercommand together.
package admincmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/juju/cmd/v4"
	"github.com/juju/loggo/v2"
	"github.com/juju/utils/v4"

	"github.com/neo4j/neo4j-admin/cmd/admincmd/dbms"
)

var logger = loggo.GetLogger("neo4jadmin.cmd")

const (
	homeEnvKey   = "NEO4J_HOME"
	configEnvKey = "NEO4J_CONF"
	debugEnvKey  = "NEO4J_DEBUG"
)

const adminDoc = `
neo4j-admin is the administration tool for Neo4j databases. Commands
operate on the installation named by NEO4J_HOME, reading settings from
the neo4j.conf file in the directory named by NEO4J_CONF.
`

// Main runs the neo4j-admin command with the given process arguments
// and returns the process exit code.
func Main(args []string) int {
	ctx, err := cmd.DefaultContext()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}
	if os.Getenv(debugEnvKey) != "" {
		if err := loggo.ConfigureLoggers("<root>=DEBUG"); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
	}
	return cmd.Main(NewAdminCommand(), ctx, args[1:])
}

// NewAdminCommand returns the neo4j-admin supercommand with all
// subcommands registered.
func NewAdminCommand() cmd.Command {
	adminCmd := cmd.NewSuperCommand(cmd.SuperCommandParams{
		Name: "neo4j-admin",
		Doc:  adminDoc,
		Log:  &cmd.Log{},
	})
	homeDir := homeDirectory()
	configDir := configDirectory(homeDir)
	logger.Debugf("home directory %s, config directory %s", homeDir, configDir)
	adminCmd.Register(dbms.NewDumpCommand(homeDir, configDir))
	return adminCmd
}

// homeDirectory returns the installation root, from NEO4J_HOME or the
// working directory.
func homeDirectory() string {
	if home := os.Getenv(homeEnvKey); home != "" {
		if normalized, err := utils.NormalizePath(home); err == nil {
			return normalized
		}
		return home
	}
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	return dir
}

// configDirectory returns the directory holding neo4j.conf, from
// NEO4J_CONF or <home>/conf.
func configDirectory(homeDir string) string {
	if dir := os.Getenv(configEnvKey); dir != "" {
		return dir
	}
	return filepath.Join(homeDir, "conf")
}

// Copyright 2026 Neo4j Admin contributors
// Licensed under the GPLv3, see LICENCE file for details.

// Package config reads the server configuration file and resolves the
// on-disk locations derived from it.
package config

import (
	"os"
	"path/filepath"

	"github.com/juju/errors"
	"github.com/juju/loggo/v2"
	"github.com/magiconair/properties"
)

var logger = loggo.GetLogger("neo4jadmin.dbms.config")

const (
	// Filename is the name of the configuration file inside the
	// configuration directory.
	Filename = "neo4j.conf"

	// DefaultDatabase is the database dumped when no name is given.
	DefaultDatabase = "graph.db"

	// DataDirectorySetting overrides the root under which per-database
	// directories live. Defaults to <home>/data.
	DataDirectorySetting = "dbms.directories.data"

	// TransactionLogsSetting overrides the directory holding a
	// database's transaction logs. Defaults to the database directory.
	TransactionLogsSetting = "dbms.directories.tx_log"

	databasesDir = "databases"
)

// Config holds the resolved directory settings for a single server
// installation.
type Config struct {
	homeDir  string
	dataDir  string
	txLogDir string
}

// Load reads <configDir>/neo4j.conf and returns the directory
// configuration for the installation rooted at homeDir. A missing
// configuration file is not an error; defaults apply.
func Load(homeDir, configDir string) (*Config, error) {
	cfg := &Config{
		homeDir: homeDir,
		dataDir: filepath.Join(homeDir, "data"),
	}
	path := filepath.Join(configDir, Filename)
	loader := &properties.Loader{
		Encoding:         properties.UTF8,
		DisableExpansion: true,
	}
	p, err := loader.LoadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Debugf("no configuration file at %s, using defaults", path)
			return cfg, nil
		}
		return nil, errors.Annotatef(err, "cannot read %s", path)
	}
	if dir, ok := p.Get(DataDirectorySetting); ok && dir != "" {
		cfg.dataDir = cfg.resolve(dir)
	}
	if dir, ok := p.Get(TransactionLogsSetting); ok && dir != "" {
		cfg.txLogDir = cfg.resolve(dir)
	}
	logger.Debugf("data directory %s", cfg.dataDir)
	return cfg, nil
}

// resolve makes a configured path absolute. Relative settings are
// interpreted against the installation's home directory.
func (c *Config) resolve(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(c.homeDir, path)
}

// DataDirectory returns the root under which per-database directories
// live.
func (c *Config) DataDirectory() string {
	return c.dataDir
}

// DatabaseDirectory returns the store directory for the named database.
func (c *Config) DatabaseDirectory(name string) string {
	return filepath.Join(c.dataDir, databasesDir, name)
}

// TransactionLogDirectory returns the directory holding the database's
// transaction logs. Unless the configuration names a separate location
// the logs live in the database directory itself.
func (c *Config) TransactionLogDirectory(databaseDir string) string {
	if c.txLogDir == "" {
		return databaseDir
	}
	return c.txLogDir
}

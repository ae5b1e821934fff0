// Copyright 2026 Neo4j Admin contributors
// Licensed under the GPLv3, see LICENCE file for details.

// neo4j-admin is the administration tool for Neo4j databases.
package main

import (
	"os"

	"github.com/neo4j/neo4j-admin/cmd/admincmd"
)

func main() {
	os.Exit(admincmd.Main(os.Args))
}

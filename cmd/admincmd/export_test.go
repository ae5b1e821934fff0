// Copyright 2026 Neo4j Admin contributors
// Licensed under the GPLv3, see LICENCE file for details.

package admincmd

var (
	HomeDirectory   = homeDirectory
	ConfigDirectory = configDirectory
)

// Package all wires every built-in country importer into the importer
// registry. It exists purely for side effects: a blank import runs each
// importer package's init, which registers its constructor.
package all

import (
	_ "github.com/deekonger/powerwatch/internal/importer/arg"
	_ "github.com/deekonger/powerwatch/internal/importer/bra"
)

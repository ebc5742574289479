package common

import (
	"log"

	"github.com/davecgh/go-spew/spew"
)

var spewConfig *spew.ConfigState

func init() {
	spewConfig = spew.NewDefaultConfig()
	spewConfig.DisableCapacities = true
	spewConfig.DisablePointerAddresses = true
	spewConfig.SortKeys = true
}

// SDump returns a human-readable, deterministic dump of the given values.
// Pointer addresses and slice capacities are omitted so dumps can be diffed between frames.
//
// Parameters:
//   - a: values to dump
//
// Returns:
//   - string: the formatted dump
func SDump(a ...any) string {
	return spewConfig.Sdump(a...)
}

// LogDump writes a dump of the given values to the standard logger.
//
// Parameters:
//   - a: values to dump
func LogDump(a ...any) {
	log.Println(spewConfig.Sdump(a...))
}

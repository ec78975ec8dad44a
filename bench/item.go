// Package bench holds the unit of work the dispatcher hands out to machines
// and the record a job's streamed output is parsed into.
package bench

import (
	"fmt"
	"path/filepath"
)

// Item identifies one benchmark to run: the path of the benchmark file (as
// seen from the remote machine) and the category (set) it belongs to.
// Items are values and are never modified once enumerated.
type Item struct {
	Name     string
	Category string
}

// Basename returns the file name of the benchmark without its directory.
func (i Item) Basename() string {
	return filepath.Base(i.Name)
}

func (i Item) String() string {
	return fmt.Sprintf("%s:%s", i.Category, i.Name)
}

// Package store implements persistence of the auragold state.
//
// Two stores are available: a JSON file holding an "all data" export, and a
// SQLite database.
package store

import (
	"fmt"

	"github.com/etnz/auragold"
)

// Drivers known to Open.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
)

// Open returns the store for 'driver' at 'path'.
// The returned closer must be called when done with the store.
func Open(driver, path string) (auragold.Store, func() error, error) {
	switch driver {
	case DriverFile, "":
		return NewFile(path), func() error { return nil }, nil
	case DriverSQLite:
		s, err := OpenSQLite(path)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", driver)
	}
}

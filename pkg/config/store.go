package config

import (
	"fmt"

	"github.com/ardupar/ardupar-go/pkg/eeprom"
)

// OpenStore opens the configured store. The returned close function is
// never nil.
func (s StoreConfig) OpenStore() (eeprom.Store, func() error, error) {
	noop := func() error { return nil }

	switch s.Kind {
	case StoreMemory:
		return eeprom.NewMemStore(s.Size), noop, nil
	case StoreFile:
		fs, err := eeprom.OpenFileStore(s.Path, s.Size)
		if err != nil {
			return nil, noop, err
		}
		return fs, fs.Close, nil
	case StoreSQLite:
		ss, err := eeprom.OpenSQLiteStore(s.Path, s.Size)
		if err != nil {
			return nil, noop, err
		}
		return ss, ss.Close, nil
	default:
		return nil, noop, fmt.Errorf("%w: unknown store kind %q", ErrInvalid, s.Kind)
	}
}

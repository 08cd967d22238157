// Package persistence saves and restores parameter settings as JSON files.
//
// A settings file is a portable copy of every value in a registry, taken
// from its status records. It complements the byte-level eeprom stores:
// settings survive a change of storage layout and can be moved between
// devices. Restoring applies values through each parameter's own update
// path, so they are clamped, persisted and logged like any other update.
package persistence

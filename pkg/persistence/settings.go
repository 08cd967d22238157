package persistence

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/ardupar/ardupar-go/pkg/param"
	"github.com/ardupar/ardupar-go/pkg/wire"
)

// SettingsVersion is the current version of the settings file format.
const SettingsVersion = 1

// Settings is a saved copy of a registry's values.
type Settings struct {
	// Version is the settings file format version.
	Version int `json:"version"`

	// SavedAt is when the settings were last saved.
	SavedAt time.Time `json:"saved_at"`

	// Device is the name of the device the settings were taken from.
	Device string `json:"device,omitempty"`

	// Values contains one entry per valued parameter, in registration order.
	Values []Value `json:"values,omitempty"`
}

// Value is one saved parameter value.
type Value struct {
	// Command is the parameter's command string.
	Command string `json:"command"`

	// Kind is the status-dump kind name ("int", "float", "string").
	Kind string `json:"kind"`

	// Value is the formatted value. Floats use the shortest form that
	// reads back to the same float32, not the two-decimal dump form.
	Value string `json:"value"`
}

// Capture takes the current settings of reg. Triggers carry no value and
// are skipped.
func Capture(device string, reg *param.Registry) *Settings {
	s := &Settings{Device: device}
	for _, p := range reg.Parameters() {
		if p.Kind() == param.KindCallback {
			continue
		}
		s.Values = append(s.Values, Value{Command: p.Command(), Kind: p.Kind().WireName(), Value: savedValue(p)})
	}
	return s
}

func savedValue(p param.Parameter) string {
	if f, ok := p.(*param.Float); ok {
		return strconv.FormatFloat(float64(f.Value()), 'g', -1, 32)
	}
	return p.Describe().Value
}

// RestoreResult reports what Restore did.
type RestoreResult struct {
	// Applied counts values written to a parameter.
	Applied int

	// Missing lists saved commands with no registered parameter.
	Missing []string

	// Mismatched lists saved commands whose parameter has a different kind.
	Mismatched []string
}

// Restore applies the saved values to reg. Each value is delivered only to
// the parameter with the exact command, never to prefix matches. The
// registry's update lock is held for the whole restore.
func Restore(reg *param.Registry, s *Settings) RestoreResult {
	var res RestoreResult
	if s == nil {
		return res
	}

	lock := reg.Locker()
	lock.Lock()
	defer lock.Unlock()

	for _, v := range s.Values {
		p, ok := reg.Lookup(v.Command)
		if !ok {
			res.Missing = append(res.Missing, v.Command)
			continue
		}
		if p.Kind() == param.KindCallback || p.Kind().WireName() != v.Kind {
			res.Mismatched = append(res.Mismatched, v.Command)
			continue
		}
		restoreValue(p, v)
		res.Applied++
	}
	return res
}

func restoreValue(p param.Parameter, v Value) {
	switch p.Kind() {
	case param.KindString:
		// The text path cannot express an empty string.
		p.Digest(wire.NewMessage(v.Command, wire.StringArg(v.Value)))
		return
	case param.KindFloat:
		if f, err := strconv.ParseFloat(v.Value, 32); err == nil {
			p.Digest(wire.NewMessage(v.Command, wire.FloatArg(float32(f))))
			return
		}
	}
	p.MatchAndParse([]byte(v.Command + " " + v.Value))
}

// SettingsStore manages persistence of settings to a JSON file.
type SettingsStore struct {
	mu   sync.Mutex
	path string
}

// NewSettingsStore creates a new settings store.
func NewSettingsStore(path string) *SettingsStore {
	return &SettingsStore{path: path}
}

// Path returns the settings file path.
func (s *SettingsStore) Path() string {
	return s.path
}

// Save persists the settings to disk.
func (s *SettingsStore) Save(settings *Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Ensure parent directory exists
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	settings.Version = SettingsVersion
	if settings.SavedAt.IsZero() {
		settings.SavedAt = time.Now()
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0644)
}

// Load reads the settings from disk.
// Returns nil, nil if the file doesn't exist.
func (s *SettingsStore) Load() (*Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	settings := &Settings{}
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Clear removes the settings file.
func (s *SettingsStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

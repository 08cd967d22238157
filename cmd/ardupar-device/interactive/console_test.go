package interactive

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardupar/ardupar-go/pkg/eeprom"
	"github.com/ardupar/ardupar-go/pkg/framer"
	"github.com/ardupar/ardupar-go/pkg/param"
)

func newTestConsole() (*Console, *framer.QueueSource, *bytes.Buffer) {
	q := framer.NewQueueSource()
	var out bytes.Buffer
	return &Console{in: q, out: &out}, q, &out
}

func newTestRegistry(t *testing.T) *param.Registry {
	t.Helper()
	reg := param.NewRegistry(param.Config{Capacity: 4, Store: eeprom.NewMemStore(64)})
	_, err := reg.Int("LED", 0, 10, nil, param.Persist())
	require.NoError(t, err)
	_, err = reg.Int("LEDCOLOR", 0, 255, nil)
	require.NoError(t, err)
	return reg
}

func TestHandleFeedsParameterCommands(t *testing.T) {
	c, q, out := newTestConsole()
	reg := newTestRegistry(t)

	assert.True(t, c.Handle("  LED 3  ", reg))
	assert.Equal(t, "LED 3", string(drain(q)))
	assert.Empty(t, out.String())
}

func TestHandleIgnoresBlankLines(t *testing.T) {
	c, q, _ := newTestConsole()

	assert.True(t, c.Handle("   ", nil))
	assert.True(t, c.Handle(":", nil))
	assert.Equal(t, 0, q.Len())
}

func TestHandleDump(t *testing.T) {
	c, q, out := newTestConsole()
	reg := newTestRegistry(t)

	assert.True(t, c.Handle(":dump", reg))
	assert.Equal(t, 0, q.Len())
	assert.Contains(t, out.String(), "int\tLED\tLED\t0\t0\t10")
	assert.Contains(t, out.String(), "int\tLEDCOLOR\tLEDCOLOR\t0\t0\t255")
}

func TestHandleList(t *testing.T) {
	c, _, out := newTestConsole()
	reg := newTestRegistry(t)

	assert.True(t, c.Handle(":list", reg))
	assert.Contains(t, out.String(), "2/4 parameters, next free address 2")
	assert.Contains(t, out.String(), "eeprom=0")
	assert.Contains(t, out.String(), "bridge=LEDCOLOR")
}

func TestHandleOverlaps(t *testing.T) {
	c, _, out := newTestConsole()
	reg := newTestRegistry(t)

	assert.True(t, c.Handle(":overlaps", reg))
	assert.Contains(t, out.String(), "LED is a prefix of LEDCOLOR")
}

func TestHandleUnknownAndQuit(t *testing.T) {
	c, _, out := newTestConsole()

	assert.True(t, c.Handle(":bogus", nil))
	assert.Contains(t, out.String(), "Unknown command: bogus")
	assert.False(t, c.Handle(":quit", nil))
}

func drain(q *framer.QueueSource) []byte {
	var b []byte
	for {
		c, ok := q.Poll()
		if !ok {
			return b
		}
		b = append(b, c)
	}
}

func TestHandleSaveAndRestore(t *testing.T) {
	c, _, out := newTestConsole()
	c.device = "bench"
	reg := newTestRegistry(t)
	path := filepath.Join(t.TempDir(), "settings.json")

	led, ok := reg.Lookup("LEDCOLOR")
	require.True(t, ok)
	led.MatchAndParse([]byte("LEDCOLOR 42"))

	assert.True(t, c.Handle(":save "+path, reg))
	assert.Contains(t, out.String(), "Saved 2 values")

	other := newTestRegistry(t)
	assert.True(t, c.Handle(":restore "+path, other))
	assert.Contains(t, out.String(), "Restored 2 values")
	assert.Equal(t, "42", other.Snapshot()[1].Value)
}

func TestHandleSaveUsage(t *testing.T) {
	c, _, out := newTestConsole()

	assert.True(t, c.Handle(":save", nil))
	assert.Contains(t, out.String(), "Usage: :save <file>")
	assert.True(t, c.Handle(":restore "+filepath.Join(t.TempDir(), "missing.json"), newTestRegistry(t)))
	assert.Contains(t, out.String(), "No settings file")
}

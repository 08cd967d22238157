package param

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardupar/ardupar-go/pkg/eeprom"
	"github.com/ardupar/ardupar-go/pkg/wire"
)

func TestStringTruncatesToCapacity(t *testing.T) {
	reg := newTestRegistry(Config{})
	p, err := reg.String("NAME", NewBuffer(8))
	require.NoError(t, err)

	assert.True(t, p.MatchAndParse([]byte("NAME=12345678901234")))
	assert.Equal(t, "1234567", p.Value())

	block := p.Buffer().Bytes()
	assert.Len(t, block, 8)
	assert.Equal(t, byte(0), block[7], "always terminated")
}

func TestStringShortRemainderIgnored(t *testing.T) {
	reg := newTestRegistry(Config{})
	buf := NewBuffer(8)
	p, err := reg.String("NAME", buf)
	require.NoError(t, err)

	p.MatchAndParse([]byte("NAME=abc"))
	require.Equal(t, "abc", p.Value())

	assert.True(t, p.MatchAndParse([]byte("NAME")), "prefix matched")
	assert.True(t, p.MatchAndParse([]byte("NAME=")))
	assert.Equal(t, "abc", p.Value())

	p.MatchAndParse([]byte("NAME x"))
	assert.Equal(t, "x", p.Value())
}

func TestStringShorterValueClearsTail(t *testing.T) {
	reg := newTestRegistry(Config{})
	p, err := reg.String("NAME", NewBuffer(8))
	require.NoError(t, err)

	p.MatchAndParse([]byte("NAME=abcdef"))
	p.MatchAndParse([]byte("NAME=xy"))
	assert.Equal(t, "xy", p.Value())
	assert.Equal(t, []byte{'x', 'y', 0, 0, 0, 0, 0, 0}, p.Buffer().Bytes())
}

func TestStringBoundBuffer(t *testing.T) {
	raw := []byte("old\x00\x00\x00")
	reg := newTestRegistry(Config{})
	p, err := reg.String("SSID", BindBuffer(raw))
	require.NoError(t, err)

	assert.False(t, p.Buffer().Owned())
	assert.Equal(t, "old", p.Value())

	reg.Dispatch([]byte("SSID:home"))
	assert.Equal(t, "home\x00\x00", string(raw))
}

func TestStringDigest(t *testing.T) {
	reg := newTestRegistry(Config{})
	p, err := reg.String("NAME", NewBuffer(4))
	require.NoError(t, err)

	assert.True(t, p.Digest(wire.NewMessage("NAME", wire.StringArg("abcdef"))))
	assert.Equal(t, "abc", p.Value())

	assert.False(t, p.Digest(wire.NewMessage("NAME", wire.IntArg(1))))
	assert.False(t, p.Digest(wire.NewMessage("NAME")))
	assert.Equal(t, "abc", p.Value())
}

func TestStringPersistsWholeBlock(t *testing.T) {
	reg, store := newPersistentRegistry(32)
	_, err := reg.Int("PAD", 0, 1, nil, Persist())
	require.NoError(t, err)
	p, err := reg.String("NAME", NewBuffer(6), Persist())
	require.NoError(t, err)
	require.Equal(t, eeprom.Address(2), p.StorageAddress())

	reg.Dispatch([]byte("NAME=hi"))
	assert.Equal(t, []byte{'h', 'i', 0, 0, 0, 0}, store.Bytes()[2:8])
}

func TestStringLoadsAtSetup(t *testing.T) {
	store := eeprom.NewMemStore(16)
	require.NoError(t, store.WriteBlock([]byte("kitchen!"), 0))

	reg := newTestRegistry(Config{Store: store})
	p, err := reg.String("NAME", NewBuffer(8), Persist())
	require.NoError(t, err)
	assert.Equal(t, "kitchen", p.Value(), "last byte forced to terminator")

	p2, err := reg.String("ERASED", NewBuffer(4), Persist())
	require.NoError(t, err)
	assert.Equal(t, "", p2.Value(), "erased block loads empty")
}

func TestStringRejectsTinyCapacity(t *testing.T) {
	reg := newTestRegistry(Config{})
	_, err := reg.String("X", NewBuffer(1))
	assert.ErrorIs(t, err, ErrInvalidConfig)
	_, err = reg.String("Y", nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

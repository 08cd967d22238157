package param

import (
	"github.com/ardupar/ardupar-go/pkg/eeprom"
	plog "github.com/ardupar/ardupar-go/pkg/log"
	"github.com/ardupar/ardupar-go/pkg/wire"
)

// Callback is a trigger: a match invokes its action once and the rest of
// the buffer is ignored.
type Callback struct {
	base
	fn func()
}

func newCallback(cmd string, fn func()) *Callback {
	return &Callback{
		base: base{command: cmd, kind: KindCallback, addr: eeprom.NotPersisted},
		fn:   fn,
	}
}

// MatchAndParse invokes the action if buf starts with the command.
func (c *Callback) MatchAndParse(buf []byte) bool {
	if _, ok := c.match(buf); !ok {
		return false
	}
	c.fire(plog.OriginSerial)
	return true
}

// Digest invokes the action regardless of arguments.
func (c *Callback) Digest(*wire.Message) bool {
	c.fire(plog.OriginBridge)
	return true
}

func (c *Callback) fire(origin plog.Origin) {
	c.env.emit(origin, plog.CategoryTrigger, &c.base, "")
	c.fn()
}

// Describe returns the trigger record.
func (c *Callback) Describe() Record {
	return Record{Kind: KindCallback, Name: c.command}
}

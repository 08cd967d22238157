package log

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// An event log is a concatenation of CBOR maps, one per Event, with no
// framing between them. Timestamps are tag 0 RFC 3339 strings carrying
// nanoseconds, so generic CBOR tools read them as times and events logged
// within the same second keep their order.
var (
	eventEnc cbor.EncMode
	eventDec cbor.DecMode
)

func init() {
	encOpts := cbor.CoreDetEncOptions()
	encOpts.Time = cbor.TimeRFC3339Nano
	encOpts.TimeTag = cbor.EncTagRequired

	var err error
	eventEnc, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("event log encoder: %v", err))
	}

	// Events are flat maps; anything deeper is a corrupt file.
	eventDec, err = cbor.DecOptions{
		TimeTag:         cbor.DecTagOptional,
		MaxNestedLevels: 4,
		MaxMapPairs:     16,
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("event log decoder: %v", err))
	}
}

// EncodeEvent encodes one event log record.
func EncodeEvent(event Event) ([]byte, error) {
	return eventEnc.Marshal(event)
}

func newEventDecoder(r io.Reader) *cbor.Decoder {
	return eventDec.NewDecoder(r)
}

package status

import (
	"bufio"
	"errors"
	"io"
	"sync"

	"github.com/fxamacker/cbor/v2"

	"github.com/ardupar/ardupar-go/pkg/param"
	"github.com/ardupar/ardupar-go/pkg/wire"
)

// TextSink writes records as newline-terminated tab-separated lines.
type TextSink struct {
	w *bufio.Writer
}

// NewTextSink creates a sink writing to w. Call Flush after a dump.
func NewTextSink(w io.Writer) *TextSink {
	return &TextSink{w: bufio.NewWriter(w)}
}

// Emit writes one line.
func (s *TextSink) Emit(r param.Record) error {
	if _, err := s.w.WriteString(r.String()); err != nil {
		return err
	}
	return s.w.WriteByte('\n')
}

// Flush writes buffered lines.
func (s *TextSink) Flush() error {
	return s.w.Flush()
}

// Entry is the CBOR form of a record. Bounds are omitted for kinds
// without them.
type Entry struct {
	Kind  string  `cbor:"1,keyasint"`
	Name  string  `cbor:"2,keyasint"`
	Value *string `cbor:"3,keyasint,omitempty"`
	Min   *string `cbor:"4,keyasint,omitempty"`
	Max   *string `cbor:"5,keyasint,omitempty"`
}

// EntryFromRecord converts a record to its CBOR form.
func EntryFromRecord(r param.Record) Entry {
	e := Entry{Kind: r.Kind.WireName(), Name: r.Name}
	if r.Kind != param.KindCallback {
		v := r.Value
		e.Value = &v
	}
	if r.HasBounds {
		lo, hi := r.Min, r.Max
		e.Min, e.Max = &lo, &hi
	}
	return e
}

// CBORSink writes one CBOR-encoded Entry per record.
type CBORSink struct {
	enc *cbor.Encoder
}

// NewCBORSink creates a sink writing to w.
func NewCBORSink(w io.Writer) *CBORSink {
	return &CBORSink{enc: wire.NewEncoder(w)}
}

// Emit encodes one entry.
func (s *CBORSink) Emit(r param.Record) error {
	return s.enc.Encode(EntryFromRecord(r))
}

// ReadEntries decodes entries written by a CBORSink until EOF.
func ReadEntries(r io.Reader) ([]Entry, error) {
	dec := wire.NewDecoder(r)
	var out []Entry
	for {
		var e Entry
		if err := dec.Decode(&e); err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return out, err
		}
		out = append(out, e)
	}
}

// CollectSink keeps every record it receives. It is safe for concurrent use.
type CollectSink struct {
	mu      sync.Mutex
	records []param.Record
}

// Emit appends the record.
func (s *CollectSink) Emit(r param.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, r)
	return nil
}

// Records returns a copy of the collected records.
func (s *CollectSink) Records() []param.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]param.Record, len(s.records))
	copy(out, s.records)
	return out
}

// Reset drops collected records.
func (s *CollectSink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
}

// Compile-time interface satisfaction checks.
var (
	_ param.StatusSink = (*TextSink)(nil)
	_ param.StatusSink = (*CBORSink)(nil)
	_ param.StatusSink = (*CollectSink)(nil)
)

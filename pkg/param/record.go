package param

import "strings"

// Record is the status description of one parameter.
type Record struct {
	Kind      Kind
	Name      string
	Value     string
	Min       string
	Max       string
	HasBounds bool
}

// String returns the tab-separated status line without the newline:
// kind, name, name, value and, for numeric kinds, min and max. Trigger
// lines carry no value.
func (r Record) String() string {
	var sb strings.Builder
	sb.WriteString(r.Kind.WireName())
	sb.WriteByte('\t')
	sb.WriteString(r.Name)
	sb.WriteByte('\t')
	sb.WriteString(r.Name)
	if r.Kind == KindCallback {
		return sb.String()
	}
	sb.WriteByte('\t')
	sb.WriteString(r.Value)
	if r.HasBounds {
		sb.WriteByte('\t')
		sb.WriteString(r.Min)
		sb.WriteByte('\t')
		sb.WriteString(r.Max)
	}
	return sb.String()
}

// StatusSink accepts status records, one per parameter.
type StatusSink interface {
	Emit(r Record) error
}

// StatusSinkFunc adapts a function to StatusSink.
type StatusSinkFunc func(r Record) error

// Emit calls f(r).
func (f StatusSinkFunc) Emit(r Record) error { return f(r) }

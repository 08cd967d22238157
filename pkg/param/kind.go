package param

// Kind identifies a parameter variant.
type Kind uint8

const (
	KindInt Kind = iota
	KindLong
	KindFloat
	KindString
	KindCallback
)

// String returns the variant name.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindLong:
		return "long"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindCallback:
		return "callback"
	default:
		return "unknown"
	}
}

// WireName returns the kind as written in the status dump. Long reports as
// "int" and Callback as "trigger".
func (k Kind) WireName() string {
	switch k {
	case KindInt, KindLong:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindCallback:
		return "trigger"
	default:
		return "unknown"
	}
}

// HasBounds reports whether the kind carries a numeric range.
func (k Kind) HasBounds() bool {
	switch k {
	case KindInt, KindLong, KindFloat:
		return true
	default:
		return false
	}
}

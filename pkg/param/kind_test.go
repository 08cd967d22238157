package param

import "testing"

func TestKindNames(t *testing.T) {
	tests := []struct {
		k         Kind
		name      string
		wire      string
		hasBounds bool
	}{
		{KindInt, "int", "int", true},
		{KindLong, "long", "int", true},
		{KindFloat, "float", "float", true},
		{KindString, "string", "string", false},
		{KindCallback, "callback", "trigger", false},
		{Kind(42), "unknown", "unknown", false},
	}
	for _, tt := range tests {
		if got := tt.k.String(); got != tt.name {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.k, got, tt.name)
		}
		if got := tt.k.WireName(); got != tt.wire {
			t.Errorf("Kind(%d).WireName() = %q, want %q", tt.k, got, tt.wire)
		}
		if got := tt.k.HasBounds(); got != tt.hasBounds {
			t.Errorf("Kind(%d).HasBounds() = %v, want %v", tt.k, got, tt.hasBounds)
		}
	}
}

func TestRecordString(t *testing.T) {
	tests := []struct {
		name string
		r    Record
		want string
	}{
		{"long reports as int", Record{Kind: KindLong, Name: "N", Value: "1", Min: "0", Max: "9", HasBounds: true}, "int\tN\tN\t1\t0\t9"},
		{"string has no bounds", Record{Kind: KindString, Name: "S", Value: "hi"}, "string\tS\tS\thi"},
		{"empty string value", Record{Kind: KindString, Name: "S"}, "string\tS\tS\t"},
		{"trigger has no value", Record{Kind: KindCallback, Name: "T", Value: "ignored"}, "trigger\tT\tT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

package log

import (
	"bytes"
	"testing"
	"time"
)

func TestOriginString(t *testing.T) {
	tests := []struct {
		o    Origin
		want string
	}{
		{OriginSerial, "SERIAL"},
		{OriginBridge, "BRIDGE"},
		{OriginStorage, "STORAGE"},
		{OriginSetup, "SETUP"},
		{Origin(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.o.String(); got != tt.want {
			t.Errorf("Origin(%d).String() = %q, want %q", tt.o, got, tt.want)
		}
	}
}

func TestCategoryString(t *testing.T) {
	tests := []struct {
		c    Category
		want string
	}{
		{CategoryUpdate, "UPDATE"},
		{CategoryTrigger, "TRIGGER"},
		{CategoryLoad, "LOAD"},
		{CategoryRegister, "REGISTER"},
		{CategoryReject, "REJECT"},
		{Category(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("Category(%d).String() = %q, want %q", tt.c, got, tt.want)
		}
	}
}

func TestParseOriginAndCategory(t *testing.T) {
	if o, ok := ParseOrigin("BRIDGE"); !ok || o != OriginBridge {
		t.Errorf("ParseOrigin(BRIDGE) = %v, %v", o, ok)
	}
	if _, ok := ParseOrigin("bridge"); ok {
		t.Error("ParseOrigin is case-sensitive")
	}
	if c, ok := ParseCategory("REJECT"); !ok || c != CategoryReject {
		t.Errorf("ParseCategory(REJECT) = %v, %v", c, ok)
	}
	if _, ok := ParseCategory("NOPE"); ok {
		t.Error("ParseCategory(NOPE) ok = true")
	}
}

func TestEventRoundTrip(t *testing.T) {
	ts := time.Date(2026, 3, 1, 12, 0, 0, 123456789, time.UTC)
	event := Event{
		Timestamp: ts,
		SessionID: "7b0c5a6e-0000-4000-8000-000000000001",
		Origin:    OriginSerial,
		Category:  CategoryUpdate,
		Command:   "LED",
		Kind:      "int",
		Value:     "42",
		Address:   AddressPtr(6),
	}

	data, err := EncodeEvent(event)
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}
	// Eight-entry map, key 1, then the tag 0 timestamp.
	if !bytes.HasPrefix(data, []byte{0xa8, 0x01, 0xc0}) {
		t.Errorf("encoding starts % x, want a8 01 c0", data[:3])
	}

	var decoded Event
	if err := newEventDecoder(bytes.NewReader(data)).Decode(&decoded); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if !decoded.Timestamp.Equal(ts) {
		t.Errorf("Timestamp: got %v, want %v (nanoseconds must survive)", decoded.Timestamp, ts)
	}
	if decoded.Command != "LED" || decoded.Kind != "int" || decoded.Value != "42" {
		t.Errorf("decoded = %+v", decoded)
	}
	if decoded.Address == nil || *decoded.Address != 6 {
		t.Errorf("Address: got %v, want 6", decoded.Address)
	}
}

func TestDecodeRejectsNesting(t *testing.T) {
	// {1: [[[[0]]]]} nests deeper than any event.
	data := []byte{0xa1, 0x01, 0x81, 0x81, 0x81, 0x81, 0x00}
	var e Event
	if err := newEventDecoder(bytes.NewReader(data)).Decode(&e); err == nil {
		t.Error("Decode accepted a nested record")
	}
}

func TestAddressPtr(t *testing.T) {
	if AddressPtr(-1) != nil {
		t.Error("AddressPtr(-1) should be nil")
	}
	if p := AddressPtr(0); p == nil || *p != 0 {
		t.Errorf("AddressPtr(0) = %v", p)
	}
}

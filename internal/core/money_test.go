package core

import (
	"encoding/json"
	"testing"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in    string
		cents int64
		ok    bool
	}{
		{"12.34", 1234, true},
		{"12,34", 1234, true},
		{"12.345", 1234, true},
		{"12.346", 1235, true},
		{"50", 5000, true},
		{"0", 0, true},
		{".5", 50, true},
		{"-3", 0, false},
		{"+3", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok && (err != nil || got.Cents != tc.cents) {
			t.Fatalf("ParseAmount(%q) = %v, %v; want %d cents", tc.in, got.Cents, err, tc.cents)
		}
		if !tc.ok && err == nil {
			t.Fatalf("ParseAmount(%q) expected error", tc.in)
		}
	}
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{5000, "50"},
		{1250, "12.5"},
		{1234, "12.34"},
		{0, "0"},
	}
	for _, tc := range cases {
		b, err := json.Marshal(Money{Cents: tc.cents})
		if err != nil {
			t.Fatalf("marshal %d: %v", tc.cents, err)
		}
		if string(b) != tc.want {
			t.Fatalf("marshal %d = %s, want %s", tc.cents, b, tc.want)
		}
		var back Money
		if err := json.Unmarshal(b, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", b, err)
		}
		if back.Cents != tc.cents {
			t.Fatalf("round trip %d -> %d", tc.cents, back.Cents)
		}
	}
}

func TestMoneyUnmarshalLenient(t *testing.T) {
	var m Money
	if err := json.Unmarshal([]byte(`"garbage"`), &m); err != nil {
		t.Fatalf("lenient unmarshal returned error: %v", err)
	}
	if m.Cents != 0 {
		t.Fatalf("expected 0 cents, got %d", m.Cents)
	}
}

func TestMoneyString(t *testing.T) {
	if got := (Money{Cents: 1205}).String(); got != "12.05" {
		t.Fatalf("got %q", got)
	}
	if got := (Money{Cents: -50}).String(); got != "-0.50" {
		t.Fatalf("got %q", got)
	}
}

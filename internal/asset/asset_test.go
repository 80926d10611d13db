package asset

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestFromDenomDeterministic(t *testing.T) {
	a := FromDenom("ushd")
	b := FromDenom("ushd")
	if !a.Equal(b) {
		t.Fatalf("same denom produced different ids: %s vs %s", a, b)
	}
	if a.Equal(FromDenom("transfer/channel-0/uatom")) {
		t.Fatalf("different denoms produced the same id")
	}
}

func TestIDStringRoundTrip(t *testing.T) {
	id := FromDenom("transfer/channel-0/uatom")
	text := id.String()
	if !strings.HasPrefix(text, Bech32HRP+"1") {
		t.Fatalf("textual form %q missing %q prefix", text, Bech32HRP)
	}
	back, err := ParseID(text)
	if err != nil {
		t.Fatalf("parse %q: %v", text, err)
	}
	if !back.Equal(id) {
		t.Fatalf("round trip changed id: %s -> %s", id, back)
	}
}

func TestParseIDRejectsBadInput(t *testing.T) {
	cases := []string{
		"",
		"notbech32",
		"bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4", // wrong prefix
	}
	for _, s := range cases {
		if _, err := ParseID(s); err == nil {
			t.Errorf("ParseID(%q) succeeded, want error", s)
		}
	}
}

func TestIDFromBytesLength(t *testing.T) {
	if _, err := IDFromBytes(make([]byte, 31)); err == nil {
		t.Fatalf("expected error for short input")
	}
	id, err := IDFromBytes(make([]byte, 32))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !id.IsZero() {
		t.Fatalf("zero bytes should produce the zero id")
	}
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "0", want: "0"},
		{in: "1234567", want: "1234567"},
		// Larger than 2^64, must survive intact.
		{in: "340282366920938463463374607431768211455", want: "340282366920938463463374607431768211455"},
		{in: "-3", wantErr: true},
		{in: "12.5", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseAmount(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseAmount(%q) succeeded, want error", tc.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAmount(%q): %v", tc.in, err)
			}
			if got.String() != tc.want {
				t.Fatalf("ParseAmount(%q) = %s, want %s", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseAmountClamped(t *testing.T) {
	got, err := ParseAmountClamped("-3")
	if err != nil {
		t.Fatalf("ParseAmountClamped(-3): %v", err)
	}
	if !got.IsZero() {
		t.Fatalf("negative input should clamp to zero, got %s", got)
	}
	if _, err := ParseAmountClamped("bogus"); err == nil {
		t.Fatalf("expected error for non-numeric input")
	}
}

func TestAmountJSON(t *testing.T) {
	a := NewAmount(18446744073709551615)
	raw, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `"18446744073709551615"` {
		t.Fatalf("amount marshaled as %s, want quoted decimal string", raw)
	}
	var back Amount
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Cmp(a) != 0 {
		t.Fatalf("round trip changed amount: %s -> %s", a, back)
	}
}

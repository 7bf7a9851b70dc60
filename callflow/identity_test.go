package callflow

import (
	"testing"
	"time"
)

func testIdentity() Identity {
	return NewIdentity("Azər Həsənzadə", "Anar", time.Date(2001, time.July, 12, 0, 0, 0, 0, time.UTC))
}

func TestIdentityVerify(t *testing.T) {
	id := testIdentity()

	cases := []struct {
		father string
		birth  string
		want   bool
	}{
		{"Anar", "12 iyul 2001", true},
		{"anar", "12.07.2001", true},
		{"ANAR", "2001-07-12", true},
		{" Anar ", "12/07/2001", true},
		{"Elçin", "12 iyul 2001", false},
		{"Anar", "13 iyul 2001", false},
		{"Anar", "12 iyun 2001", false},
		{"Anar", "nonsense", false},
		{"", "", false},
	}
	for _, tc := range cases {
		if got := id.Verify(tc.father, tc.birth); got != tc.want {
			t.Errorf("Verify(%q, %q) = %v, want %v", tc.father, tc.birth, got, tc.want)
		}
	}
}

func TestIdentityNeverExposesSecrets(t *testing.T) {
	id := testIdentity()
	if id.FullName() != "Azər Həsənzadə" {
		t.Errorf("FullName = %q", id.FullName())
	}
	// The only exported accessors are FullName and the match methods; this
	// test documents that contract by exercising everything exported.
	if !id.MatchFather("Anar") || !id.MatchBirthDate("12 iyul 2001") {
		t.Error("match methods should accept the reference values")
	}
}

func TestParseSpokenDate(t *testing.T) {
	want := time.Date(2001, time.July, 12, 0, 0, 0, 0, time.UTC)
	for _, raw := range []string{"12.07.2001", "12/07/2001", "2001-07-12", "12 iyul 2001", "12 IYUL 2001"} {
		got, ok := ParseSpokenDate(raw)
		if !ok {
			t.Errorf("ParseSpokenDate(%q): not parsed", raw)
			continue
		}
		y1, m1, d1 := got.Date()
		y2, m2, d2 := want.Date()
		if y1 != y2 || m1 != m2 || d1 != d2 {
			t.Errorf("ParseSpokenDate(%q) = %v", raw, got)
		}
	}

	for _, raw := range []string{"", "iyul", "12 foo 2001", "32.07.2001"} {
		if _, ok := ParseSpokenDate(raw); ok {
			t.Errorf("ParseSpokenDate(%q): expected failure", raw)
		}
	}
}

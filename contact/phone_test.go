package contact

import (
	"errors"
	"testing"
)

func TestValidatePhone(t *testing.T) {
	cases := []struct {
		number  string
		wantErr error
	}{
		{"0501234567", nil},
		{"0551234567", nil},
		{"0101234567", nil},
		{"0701234567", nil},
		{"0771234567", nil},
		{"0991234567", nil},
		{"0601234567", ErrPhonePrefix},
		{"0511234567", ErrPhonePrefix},
		{"050123456", ErrPhoneLength},
		{"05012345678", ErrPhoneLength},
		{"", ErrPhoneLength},
		{"050123456a", ErrPhoneNotDigits},
		{"050 123 45", ErrPhoneNotDigits},
	}

	for _, tc := range cases {
		err := ValidatePhone(tc.number)
		if tc.wantErr == nil {
			if err != nil {
				t.Errorf("ValidatePhone(%q): unexpected error: %v", tc.number, err)
			}
			continue
		}
		if !errors.Is(err, tc.wantErr) {
			t.Errorf("ValidatePhone(%q) = %v, want %v", tc.number, err, tc.wantErr)
		}
	}
}

func TestNormalizePhone(t *testing.T) {
	cases := map[string]string{
		"050 123 45 67":  "0501234567",
		"050-123-45-67":  "0501234567",
		"(050) 1234567":  "0501234567",
		"050.123.45.67":  "0501234567",
		"0501234567":     "0501234567",
		"+994501234567":  "+994501234567", // country code left intact, fails validation
	}
	for raw, want := range cases {
		if got := NormalizePhone(raw); got != want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestFormatPhone(t *testing.T) {
	if got := FormatPhone("0501234567"); got != "050 123 45 67" {
		t.Errorf("FormatPhone = %q, want %q", got, "050 123 45 67")
	}
}

func TestRecordComplete(t *testing.T) {
	r := Record{}
	if r.Complete() {
		t.Fatal("empty record must not be complete")
	}

	r.Sector = "Ticarət"
	r.SubSector = "Pərakəndə satış"
	r.City = "Bakı"
	r.District = "Nəsimi"
	if r.Complete() {
		t.Fatal("record without phones must not be complete")
	}

	if err := r.SetPhones([]string{"0501234567"}); err != nil {
		t.Fatalf("SetPhones: %v", err)
	}
	if r.Complete() {
		t.Fatal("record with one phone must not be complete")
	}

	if err := r.SetPhones([]string{"0501234567", "0601234567"}); err == nil {
		t.Fatal("SetPhones must reject an invalid number")
	}

	if err := r.SetPhones([]string{"0501234567", "0771234567"}); err != nil {
		t.Fatalf("SetPhones: %v", err)
	}
	if !r.Complete() {
		t.Fatal("record with all fields and two valid phones must be complete")
	}

	// The same number twice is allowed.
	if err := r.SetPhones([]string{"0501234567", "0501234567"}); err != nil {
		t.Fatalf("SetPhones duplicate: %v", err)
	}
	if !r.Complete() {
		t.Fatal("duplicate valid numbers still complete the record")
	}
}

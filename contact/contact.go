package contact

// RequiredPhones is how many valid contact numbers a record needs to be
// complete. The two numbers are not required to differ.
const RequiredPhones = 2

// Record holds the business data collected during a call. All fields are
// free text except the phones, which must each pass ValidatePhone before
// being stored.
type Record struct {
	Sector    string
	SubSector string
	City      string
	District  string
	Phones    []string
}

// SetPhones replaces the stored numbers. Every candidate must already be
// normalized; any invalid number rejects the whole set.
func (r *Record) SetPhones(numbers []string) error {
	for _, n := range numbers {
		if err := ValidatePhone(n); err != nil {
			return err
		}
	}
	r.Phones = append([]string(nil), numbers...)
	return nil
}

// HasSector reports whether both sector fields are present.
func (r *Record) HasSector() bool {
	return r.Sector != "" && r.SubSector != ""
}

// HasLocation reports whether both location fields are present.
func (r *Record) HasLocation() bool {
	return r.City != "" && r.District != ""
}

// Complete reports whether the record can back a dispatch: both free-text
// pairs present and exactly two valid phone numbers held.
func (r *Record) Complete() bool {
	if !r.HasSector() || !r.HasLocation() {
		return false
	}
	if len(r.Phones) != RequiredPhones {
		return false
	}
	for _, n := range r.Phones {
		if ValidatePhone(n) != nil {
			return false
		}
	}
	return true
}

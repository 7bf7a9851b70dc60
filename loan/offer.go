package loan

// Offer is the negotiated (amount, term) pair for one call. Every accepted
// change produces a new version; dispatch bookkeeping is keyed on the
// version so an already confirmed version is never sent twice.
type Offer struct {
	amount     float64
	termMonths int
	version    int
}

// NewOffer validates the campaign's pre-approved amount and term and returns
// version 1 of the offer.
func NewOffer(amount float64, termMonths int) (*Offer, error) {
	if err := ValidateAmount(amount); err != nil {
		return nil, err
	}
	if err := ValidateTerm(termMonths); err != nil {
		return nil, err
	}
	return &Offer{amount: amount, termMonths: termMonths, version: 1}, nil
}

func (o *Offer) Amount() float64 { return o.amount }

func (o *Offer) TermMonths() int { return o.termMonths }

func (o *Offer) Version() int { return o.version }

// Rate always derives from the current term; it is never cached.
func (o *Offer) Rate() float64 {
	rate, _ := RateFor(o.termMonths)
	return rate
}

// SetAmount amends the principal and bumps the offer version.
func (o *Offer) SetAmount(amount float64) error {
	if err := ValidateAmount(amount); err != nil {
		return err
	}
	if amount == o.amount {
		return nil
	}
	o.amount = amount
	o.version++
	return nil
}

// SetTerm amends the term and bumps the offer version. The interest rate
// follows the term automatically via Rate.
func (o *Offer) SetTerm(termMonths int) error {
	if err := ValidateTerm(termMonths); err != nil {
		return err
	}
	if termMonths == o.termMonths {
		return nil
	}
	o.termMonths = termMonths
	o.version++
	return nil
}

// Estimate returns the illustrative repayment figures for the current version.
func (o *Offer) Estimate() Estimate {
	est, _ := EstimatePayments(o.amount, o.termMonths)
	return est
}

package lending

// Policy holds the configurable lending rules.
type Policy struct {
	// AllowCheckoutFromReserved lets a checkout fulfil a reservation.
	// When false, a reserved book rejects checkout with catalog.ErrInvalidTransition.
	AllowCheckoutFromReserved bool
}

// DefaultPolicy allows checking out reserved books.
func DefaultPolicy() Policy {
	return Policy{AllowCheckoutFromReserved: true}
}

package enums

// CheckoutState is the position of a checkout attempt in its state machine.
type CheckoutState string

const (
	CheckoutStateForm       CheckoutState = "form"
	CheckoutStateSubmitting CheckoutState = "submitting"
	CheckoutStateSuccess    CheckoutState = "success"
	// CheckoutStateRedirect is entered when there is nothing to buy; the shopper is sent back to the cart.
	CheckoutStateRedirect CheckoutState = "redirect"
)

// String implements fmt.Stringer.
func (s CheckoutState) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition is possible.
func (s CheckoutState) IsTerminal() bool {
	return s == CheckoutStateSuccess || s == CheckoutStateRedirect
}

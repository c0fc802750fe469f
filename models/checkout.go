package models

// CheckoutSteps are the Bengali labels of the linear checkout wizard.
var CheckoutSteps = []string{"তথ্য", "পর্যালোচনা", "নিশ্চিতকরণ"}

// CheckoutProgress is a bounded step counter for the checkout wizard.
// Current always stays within [1, len(CheckoutSteps)].
type CheckoutProgress struct {
	Current int `json:"current"`
}

func NewCheckoutProgress() CheckoutProgress {
	return CheckoutProgress{Current: 1}
}

// Next advances one step, clamping at the last step.
func (p *CheckoutProgress) Next() {
	if p.Current < len(CheckoutSteps) {
		p.Current++
	}
}

// Prev steps back, clamping at the first step.
func (p *CheckoutProgress) Prev() {
	if p.Current > 1 {
		p.Current--
	}
}

// Label returns the Bengali label of the current step.
func (p CheckoutProgress) Label() string {
	i := p.Current
	if i < 1 {
		i = 1
	}
	if i > len(CheckoutSteps) {
		i = len(CheckoutSteps)
	}
	return CheckoutSteps[i-1]
}

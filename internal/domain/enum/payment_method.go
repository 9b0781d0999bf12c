package enum

import "encoding/json"

// PaymentMethod represents how a bill was settled.
type PaymentMethod int

const (
	PaymentCash PaymentMethod = 0
	PaymentCard PaymentMethod = 1
	PaymentUPI  PaymentMethod = 2
)

func (p PaymentMethod) String() string {
	names := [...]string{"cash", "card", "upi"}
	if int(p) < 0 || int(p) >= len(names) {
		return "cash"
	}
	return names[p]
}

// Valid reports whether the value is one of the known methods.
func (p PaymentMethod) Valid() bool {
	return p >= PaymentCash && p <= PaymentUPI
}

// ParsePaymentMethod maps a wire string onto a PaymentMethod.
// Unknown values fall back to cash, the source default.
func ParsePaymentMethod(s string) PaymentMethod {
	switch s {
	case "card":
		return PaymentCard
	case "upi":
		return PaymentUPI
	default:
		return PaymentCash
	}
}

func (p PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*p = PaymentMethod(i)
		return nil
	}
	*p = ParsePaymentMethod(str)
	return nil
}

package domain

// DiscountCode maps a promotional code to a percentage off the subtotal.
type DiscountCode struct {
	Code    string `json:"code"`
	Percent int    `json:"percent"`
}

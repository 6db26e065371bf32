package domain

import "time"

// Customer is the contact snapshot copied into an order at checkout.
type Customer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Gift carries the optional gift wrapping request of an order.
type Gift struct {
	IsGift  bool   `json:"isGift"`
	Message string `json:"message,omitempty"`
}

// Identity is the display identity of a logged in session. It is not backed by
// any credential.
type Identity struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	LoggedInAt time.Time `json:"loggedInAt"`
}

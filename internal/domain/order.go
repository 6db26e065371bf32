package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderDateLayout formats the human readable order date.
const OrderDateLayout = "January 2, 2006, 03:04 PM"

// Order is a frozen checkout record. Only Status changes after creation.
type Order struct {
	ID            string            `json:"id"`
	Date          string            `json:"date"`
	CreatedAt     time.Time         `json:"createdAt"`
	Customer      Customer          `json:"customer"`
	Gift          *Gift             `json:"gift,omitempty"`
	Items         []OrderItem       `json:"items"`
	Subtotal      decimal.Decimal   `json:"subtotal"`
	Shipping      decimal.Decimal   `json:"shipping"`
	Discount      decimal.Decimal   `json:"discount"`
	DiscountCode  string            `json:"discountCode,omitempty"`
	Total         decimal.Decimal   `json:"total"`
	PaymentMethod PaymentMethod     `json:"paymentMethod"`
	Status        FulfillmentStatus `json:"status"`
	UserID        *string           `json:"userId"`
}

// OrderItem is a copy of a cart line taken at checkout.
type OrderItem struct {
	ProductID int             `json:"productId"`
	Name      string          `json:"name"`
	Qty       int             `json:"qty"`
	Price     decimal.Decimal `json:"price"`
}

// SameOrderID compares order identifiers case-insensitively.
func SameOrderID(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// PaymentMethod is the cosmetic payment tag chosen at checkout.
type PaymentMethod string

const (
	PaymentEasypaisa      PaymentMethod = "easypaisa"
	PaymentJazzCash       PaymentMethod = "jazzcash"
	PaymentBankTransfer   PaymentMethod = "bank"
	PaymentCashOnDelivery PaymentMethod = "cod"
)

// PaymentMethods lists the accepted payment tags.
var PaymentMethods = []PaymentMethod{PaymentEasypaisa, PaymentJazzCash, PaymentBankTransfer, PaymentCashOnDelivery}

// Valid reports whether m is one of PaymentMethods.
func (m PaymentMethod) Valid() bool {
	for _, pm := range PaymentMethods {
		if m == pm {
			return true
		}
	}
	return false
}

// ProcessingState tracks order preparation.
type ProcessingState string

const (
	ProcessingPending    ProcessingState = "pending"
	ProcessingInProgress ProcessingState = "processing"
	ProcessingCompleted  ProcessingState = "completed"
)

// DeliveryState tracks shipment.
type DeliveryState string

const (
	DeliveryPending   DeliveryState = "pending"
	DeliveryShipped   DeliveryState = "shipped"
	DeliveryDelivered DeliveryState = "delivered"
)

// PaymentState tracks payment collection.
type PaymentState string

const (
	PaymentPending PaymentState = "pending"
	PaymentPaid    PaymentState = "paid"
)

// StatusField names one of the three fulfillment fields.
type StatusField string

const (
	FieldProcessing StatusField = "processing"
	FieldDelivery   StatusField = "delivery"
	FieldPayment    StatusField = "payment"
)

var statusDomains = map[StatusField][]string{
	FieldProcessing: {string(ProcessingPending), string(ProcessingInProgress), string(ProcessingCompleted)},
	FieldDelivery:   {string(DeliveryPending), string(DeliveryShipped), string(DeliveryDelivered)},
	FieldPayment:    {string(PaymentPending), string(PaymentPaid)},
}

// StatusValues returns the legal values of field, or nil for an unknown field.
func StatusValues(field StatusField) []string {
	return statusDomains[field]
}

// FulfillmentStatus holds three independently settable progress fields. No
// ordering is enforced between them.
type FulfillmentStatus struct {
	Processing ProcessingState `json:"processing"`
	Delivery   DeliveryState   `json:"delivery"`
	Payment    PaymentState    `json:"payment"`
}

// InitialStatus is the status of a freshly placed order.
func InitialStatus(method PaymentMethod) FulfillmentStatus {
	payment := PaymentPaid
	if method == PaymentCashOnDelivery {
		payment = PaymentPending
	}
	return FulfillmentStatus{
		Processing: ProcessingPending,
		Delivery:   DeliveryPending,
		Payment:    payment,
	}
}

// Set overwrites one field after checking value against the field's domain.
func (s *FulfillmentStatus) Set(field StatusField, value string) error {
	values, ok := statusDomains[field]
	if !ok {
		return NewValidationError("field", "unknown status field "+string(field))
	}
	legal := false
	for _, v := range values {
		if v == value {
			legal = true
			break
		}
	}
	if !legal {
		return NewValidationError("value", "illegal "+string(field)+" status "+value)
	}
	switch field {
	case FieldProcessing:
		s.Processing = ProcessingState(value)
	case FieldDelivery:
		s.Delivery = DeliveryState(value)
	case FieldPayment:
		s.Payment = PaymentState(value)
	}
	return nil
}

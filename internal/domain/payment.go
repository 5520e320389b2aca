package domain

import "time"

type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "Cash"
	PaymentMethodCreditCard   PaymentMethod = "Credit Card"
	PaymentMethodBankTransfer PaymentMethod = "Bank Transfer"
	PaymentMethodOnline       PaymentMethod = "Online Gateway"
)

type PaymentType string

const (
	PaymentTypeAdvance    PaymentType = "Advance"
	PaymentTypeSettlement PaymentType = "Settlement"
	PaymentTypeRefund     PaymentType = "Refund"
)

type Payment struct {
	ID        string
	BookingID string
	Amount    float64
	Date      time.Time
	Method    PaymentMethod
	Type      PaymentType
	Notes     string
}

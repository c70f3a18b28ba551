package valueobjects

import (
	"fmt"
	"strings"
)

type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "UNPAID"
	PaymentStatusPaid   PaymentStatus = "PAID"
)

func (s PaymentStatus) String() string {
	return string(s)
}

func (s PaymentStatus) IsValid() bool {
	return s == PaymentStatusUnpaid || s == PaymentStatusPaid
}

func (s PaymentStatus) IsPaid() bool {
	return s == PaymentStatusPaid
}

func NewPaymentStatus(s string) (PaymentStatus, error) {
	ps := PaymentStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !ps.IsValid() {
		return "", fmt.Errorf("invalid payment status: %s", s)
	}
	return ps, nil
}

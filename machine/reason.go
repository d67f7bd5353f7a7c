package machine

import (
	"errors"
	"strings"
)

// FailureReason says why a purchase was refused. The zero value means the
// purchase succeeded.
type FailureReason uint8

const (
	// OutOfStock: no stocked product matches the requested name.
	OutOfStock FailureReason = iota + 1
	// InsufficientBalance: a product matches but costs more than the balance.
	InsufficientBalance
	// InsufficientChange: the overpayment cannot be returned exactly.
	InsufficientChange
)

var (
	ErrOutOfStock          = errors.New("out of stock")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInsufficientChange  = errors.New("insufficient change")
)

func (r FailureReason) String() string {
	switch r {
	case 0:
		return "ok"
	case OutOfStock:
		return "out_of_stock"
	case InsufficientBalance:
		return "insufficient_balance"
	case InsufficientChange:
		return "insufficient_change"
	default:
		return "unknown"
	}
}

// Message is the customer-facing description of r.
func (r FailureReason) Message() string {
	if err := r.Err(); err != nil {
		return capitalize(err.Error())
	}
	return ""
}

// Err returns the sentinel error for r, or nil for success.
func (r FailureReason) Err() error {
	switch r {
	case OutOfStock:
		return ErrOutOfStock
	case InsufficientBalance:
		return ErrInsufficientBalance
	case InsufficientChange:
		return ErrInsufficientChange
	default:
		return nil
	}
}

func (r FailureReason) IsValid() bool {
	switch r {
	case OutOfStock, InsufficientBalance, InsufficientChange:
		return true
	default:
		return false
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

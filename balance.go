package investpro

import (
	"strings"
)

// CashKind is the direction of a cash operation. Its value is the backend's name.
type CashKind string

const (
	Deposit  CashKind = "deposito"
	Withdraw CashKind = "retirada"
)

// ParseCashKind accepts the backend names and their English equivalents.
func ParseCashKind(s string) (CashKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "deposito", "depósito", "deposit":
		return Deposit, nil
	case "retirada", "withdraw", "withdrawal":
		return Withdraw, nil
	default:
		return "", invalid("kind", ErrInvalidKind)
	}
}

func (k CashKind) String() string {
	if k == Withdraw {
		return "withdrawal"
	}
	return "deposit"
}

// CashForm is the raw user input of a deposit or withdrawal.
type CashForm struct {
	Kind   CashKind
	Amount string
}

// PendingCashOperation is a validated cash operation ready to be submitted.
type PendingCashOperation struct {
	Kind   CashKind
	Amount Money
}

// BalanceProjection is the forecast of the cash balance after a pending
// cash operation. It is never applied as committed state.
type BalanceProjection struct {
	Operation PendingCashOperation
	Current   Money
	Projected Money
	Err       error // nil when the operation may be submitted
}

// Valid reports whether the operation may be submitted.
func (p BalanceProjection) Valid() bool { return p.Err == nil }

// ParseAmount parses a strictly positive amount.
func ParseAmount(s string) (Money, error) {
	m, err := ParseMoney(s)
	if err != nil || !m.IsPositive() {
		return Money{}, invalid("amount", ErrInvalidAmount)
	}
	return m, nil
}

// ProjectBalance computes the balance after the cash operation in form.
//
// An amount that is not a positive number makes the projection invalid
// whatever the kind, and the projected balance stays at current. A
// withdrawal larger than current is invalid with ErrInsufficientFunds;
// withdrawing exactly current is valid and projects a zero balance.
func ProjectBalance(current Money, form CashForm) BalanceProjection {
	p := BalanceProjection{Current: current, Projected: current}
	amount, err := ParseAmount(form.Amount)
	if err != nil {
		p.Err = err
		return p
	}
	p.Operation = PendingCashOperation{Kind: form.Kind, Amount: amount}

	switch form.Kind {
	case Deposit:
		p.Projected = current.Add(amount)
	case Withdraw:
		p.Projected = current.Sub(amount)
		if amount.GreaterThan(current) {
			p.Err = ErrInsufficientFunds
		}
	default:
		p.Err = invalid("kind", ErrInvalidKind)
	}
	return p
}

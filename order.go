package investpro

import (
	"strconv"
	"strings"
)

// OrderKind is the side of an order. Its value is the backend's name.
type OrderKind string

const (
	Buy  OrderKind = "compra"
	Sell OrderKind = "venda"
)

// ParseOrderKind accepts the backend names and their English equivalents.
func ParseOrderKind(s string) (OrderKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "compra", "buy":
		return Buy, nil
	case "venda", "sell":
		return Sell, nil
	default:
		return "", invalid("kind", ErrInvalidKind)
	}
}

func (k OrderKind) String() string {
	if k == Sell {
		return "sell"
	}
	return "buy"
}

// OrderForm is the raw user input of an order. Ticker is the selected asset.
type OrderForm struct {
	Kind     OrderKind
	Ticker   string
	Quantity string
}

// PendingOrder is a validated order ready to be submitted.
type PendingOrder struct {
	Kind     OrderKind
	Ticker   string
	Quantity int64
}

// OrderProjection is what the order form shows before submission. UnitPrice,
// Total and Projected are nil when they cannot be computed.
type OrderProjection struct {
	Order     PendingOrder
	UnitPrice *Money
	Total     *Money
	Projected *Money // cash after a buy, informational only
	Err       error  // nil when the order may be submitted
}

// Valid reports whether the order may be submitted.
func (p OrderProjection) Valid() bool { return p.Err == nil }

// ParseQuantity parses a strictly positive integer quantity.
func ParseQuantity(s string) (int64, error) {
	q, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || q <= 0 {
		return 0, invalid("quantity", ErrInvalidQuantity)
	}
	return q, nil
}

// ProjectOrder computes the total of the order in form, priced with asset,
// against the available cash.
//
// The checks run in order and the first failure wins: an asset must be
// selected, the quantity must be a positive integer, the asset must be
// priced, and a buy must not cost more than cash. Sells are not checked
// against cash nor against the quantity held.
func ProjectOrder(form OrderForm, asset *Asset, cash Money) OrderProjection {
	var p OrderProjection
	if asset != nil && asset.Price != nil {
		price := *asset.Price
		p.UnitPrice = &price
	}
	quantity, qerr := ParseQuantity(form.Quantity)
	if p.UnitPrice != nil && qerr == nil {
		total := p.UnitPrice.Times(quantity)
		p.Total = &total
		if form.Kind == Buy {
			projected := cash.Sub(total)
			p.Projected = &projected
		}
	}

	switch {
	case form.Ticker == "" || asset == nil || asset.Ticker != form.Ticker:
		p.Err = invalid("ticker", ErrNoAsset)
	case qerr != nil:
		p.Err = qerr
	case form.Kind != Buy && form.Kind != Sell:
		p.Err = invalid("kind", ErrInvalidKind)
	case p.Total == nil:
		p.Err = invalid("ticker", ErrPriceUnavailable)
	case form.Kind == Buy && p.Total.GreaterThan(cash):
		p.Err = ErrInsufficientFunds
	}
	if p.Err == nil {
		p.Order = PendingOrder{Kind: form.Kind, Ticker: form.Ticker, Quantity: quantity}
	}
	return p
}

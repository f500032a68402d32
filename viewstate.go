package investpro

// ViewState is the immutable state of the client for one revision. Every
// With* method returns a new value with an incremented Revision and leaves
// the receiver untouched. Slices held by a ViewState are never modified in
// place.
type ViewState struct {
	Revision uint64
	Account  AccountID       // 0 when no account is selected
	Summary  *AccountSummary // nil until fetched for Account
	Holdings []Holding
	Catalog  []Asset
	Filter   AssetFilter
	Cash     CashForm
	Order    OrderForm // Order.Ticker is the selected asset
}

func (v ViewState) next() ViewState {
	v.Revision++
	return v
}

// WithAccount switches to account id. Account scoped data and pending forms
// are dropped; the catalog is kept.
func (v ViewState) WithAccount(id AccountID) ViewState {
	v = v.next()
	v.Account = id
	v.Summary = nil
	v.Holdings = nil
	v.Cash = CashForm{Kind: v.Cash.Kind}
	v.Order = OrderForm{Kind: v.Order.Kind}
	return v
}

// WithSummary records a freshly fetched summary.
func (v ViewState) WithSummary(s AccountSummary) ViewState {
	v = v.next()
	v.Summary = &s
	return v
}

// WithHoldings records freshly fetched holdings.
func (v ViewState) WithHoldings(h []Holding) ViewState {
	v = v.next()
	v.Holdings = h
	return v
}

// WithCatalog records a freshly fetched catalog. A selection that is no
// longer listed is cleared.
func (v ViewState) WithCatalog(c []Asset) ViewState {
	v = v.next()
	v.Catalog = c
	if v.Order.Ticker != "" && LookupAsset(c, v.Order.Ticker) == nil {
		v.Order.Ticker = ""
	}
	return v
}

// WithTypeFilter filters the catalog on type t, resetting the sector filter
// and the selection.
func (v ViewState) WithTypeFilter(t AssetType) ViewState {
	v = v.next()
	v.Filter = v.Filter.WithType(t)
	v.Order.Ticker = ""
	return v
}

// WithSectorFilter filters the catalog on sector s. The selection is cleared
// if the filter hides it.
func (v ViewState) WithSectorFilter(s string) ViewState {
	v = v.next()
	v.Filter = v.Filter.WithSector(s)
	if a := LookupAsset(v.Catalog, v.Order.Ticker); a == nil || !v.Filter.Match(*a) {
		v.Order.Ticker = ""
	}
	return v
}

// WithSelection selects the asset ticker for the order form.
func (v ViewState) WithSelection(ticker string) ViewState {
	v = v.next()
	v.Order.Ticker = ticker
	return v
}

// WithCashForm replaces the cash form.
func (v ViewState) WithCashForm(f CashForm) ViewState {
	v = v.next()
	v.Cash = f
	return v
}

// WithOrderForm replaces the order form.
func (v ViewState) WithOrderForm(f OrderForm) ViewState {
	v = v.next()
	v.Order = f
	return v
}

// AfterCash clears the amount once a cash operation has been submitted.
func (v ViewState) AfterCash() ViewState {
	v = v.next()
	v.Cash.Amount = ""
	return v
}

// AfterOrder clears the quantity once an order has been submitted; the
// selection is kept.
func (v ViewState) AfterOrder() ViewState {
	v = v.next()
	v.Order.Quantity = ""
	return v
}

// VisibleAssets is the catalog filtered by the current filter.
func (v ViewState) VisibleAssets() []Asset { return FilterAssets(v.Catalog, v.Filter) }

// SelectedAsset returns the catalog entry of the selection, or nil.
func (v ViewState) SelectedAsset() *Asset {
	if v.Order.Ticker == "" {
		return nil
	}
	return LookupAsset(v.Catalog, v.Order.Ticker)
}

// CashProjection projects the cash form against the current summary.
func (v ViewState) CashProjection() BalanceProjection {
	if v.Summary == nil {
		return BalanceProjection{Err: ErrSummaryUnavailable}
	}
	return ProjectBalance(v.Summary.Cash, v.Cash)
}

// OrderProjection projects the order form against the current summary and
// catalog.
func (v ViewState) OrderProjection() OrderProjection {
	if v.Summary == nil {
		return OrderProjection{Err: ErrSummaryUnavailable}
	}
	return ProjectOrder(v.Order, v.SelectedAsset(), v.Summary.Cash)
}

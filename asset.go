package investpro

import (
	"fmt"
	"strings"
)

// AssetType is the class of a tradable asset. Its value is the backend's name.
type AssetType string

const (
	Stock AssetType = "ACAO"
	REIT  AssetType = "FII"
	Bond  AssetType = "DEBENTURE"
)

// AssetTypes lists the known types in display order.
var AssetTypes = []AssetType{Stock, REIT, Bond}

// ParseAssetType accepts the backend names and their English equivalents.
// The empty string parses to the empty type, meaning no type filter.
func ParseAssetType(s string) (AssetType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case "ACAO", "AÇÃO", "STOCK":
		return Stock, nil
	case "FII", "REIT":
		return REIT, nil
	case "DEBENTURE", "DEBÊNTURE", "BOND":
		return Bond, nil
	default:
		return "", invalid("type", fmt.Errorf("unknown asset type %q", s))
	}
}

// String returns the English name of the type.
func (t AssetType) String() string {
	switch t {
	case Stock:
		return "STOCK"
	case REIT:
		return "REIT"
	case Bond:
		return "BOND"
	default:
		return string(t)
	}
}

// Asset is an entry of the tradable-asset catalog. A nil Price means the
// asset cannot be priced for an order.
type Asset struct {
	Ticker string    `json:"ticker"`
	Name   string    `json:"nome"`
	Type   AssetType `json:"tipo"`
	Sector string    `json:"setor"`
	Price  *Money    `json:"preco_atual"`
}

// AssetFilter restricts the catalog by type and sector. Empty fields match
// everything.
type AssetFilter struct {
	Type   AssetType
	Sector string
}

// Match reports whether a passes the filter.
func (f AssetFilter) Match(a Asset) bool {
	return (f.Type == "" || f.Type == a.Type) && (f.Sector == "" || f.Sector == a.Sector)
}

// WithType returns a filter on type t. The sector is reset: a sector of one
// type is meaningless for another.
func (f AssetFilter) WithType(t AssetType) AssetFilter { return AssetFilter{Type: t} }

// WithSector returns a copy of f on sector s.
func (f AssetFilter) WithSector(s string) AssetFilter {
	f.Sector = s
	return f
}

// FilterAssets returns the assets of catalog passing f, in catalog order.
func FilterAssets(catalog []Asset, f AssetFilter) []Asset {
	filtered := make([]Asset, 0, len(catalog))
	for _, a := range catalog {
		if f.Match(a) {
			filtered = append(filtered, a)
		}
	}
	return filtered
}

// Sectors returns the distinct non-empty sectors of assets of type t (all
// types if t is empty), in first-seen order.
func Sectors(catalog []Asset, t AssetType) []string {
	seen := make(map[string]bool)
	var sectors []string
	for _, a := range catalog {
		if (t != "" && a.Type != t) || a.Sector == "" || seen[a.Sector] {
			continue
		}
		seen[a.Sector] = true
		sectors = append(sectors, a.Sector)
	}
	return sectors
}

// LookupAsset returns the catalog entry for ticker, or nil.
func LookupAsset(catalog []Asset, ticker string) *Asset {
	for i := range catalog {
		if catalog[i].Ticker == ticker {
			a := catalog[i]
			return &a
		}
	}
	return nil
}

package api

import (
	"context"
	"net/url"

	"github.com/etnz/investpro"
)

// Assets returns the whole tradable-asset catalog.
func (c *Client) Assets(ctx context.Context) ([]investpro.Asset, error) {
	var assets []investpro.Asset
	err := c.get(ctx, "/ativos", nil, "could not list assets", &assets)
	return assets, err
}

// FilterAssets asks the backend for the catalog restricted by f. Note that
// the backend matches sectors by substring, unlike investpro.FilterAssets.
func (c *Client) FilterAssets(ctx context.Context, f investpro.AssetFilter) ([]investpro.Asset, error) {
	q := url.Values{}
	if f.Type != "" {
		q.Set("tipo", string(f.Type))
	}
	if f.Sector != "" {
		q.Set("setor", f.Sector)
	}
	var assets []investpro.Asset
	err := c.get(ctx, "/ativos/filtro", q, "could not filter assets", &assets)
	return assets, err
}

// Sectors returns the sectors the backend knows for type t. Only stocks and
// REITs have sector lists; other types have none.
func (c *Client) Sectors(ctx context.Context, t investpro.AssetType) ([]string, error) {
	var path string
	switch t {
	case investpro.Stock:
		path = "/ativos/acao/setores"
	case investpro.REIT:
		path = "/ativos/fii/setores"
	default:
		return nil, nil
	}
	var rows []struct {
		Sector string `json:"setor"`
	}
	if err := c.get(ctx, path, nil, "could not list sectors", &rows); err != nil {
		return nil, err
	}
	sectors := make([]string, 0, len(rows))
	for _, r := range rows {
		sectors = append(sectors, r.Sector)
	}
	return sectors, nil
}

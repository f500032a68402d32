package cmd

import (
	"context"
	"flag"

	"github.com/etnz/investpro"
	"github.com/etnz/investpro/renderer"
	"github.com/google/subcommands"
)

type assetsCmd struct {
	assetType string
	sector    string
	remote    bool
}

func (*assetsCmd) Name() string     { return "assets" }
func (*assetsCmd) Synopsis() string { return "list tradable assets" }
func (*assetsCmd) Usage() string {
	return `ipro assets [-type stock|reit|bond] [-sector <sector>] [-remote]

  Lists the asset catalog, optionally filtered by type and exact sector.
  With -remote the backend filters instead, matching sectors by substring.
`
}

func (c *assetsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.assetType, "type", "", "asset type: stock (ACAO), reit (FII) or bond (DEBENTURE)")
	f.StringVar(&c.sector, "sector", "", "sector")
	f.BoolVar(&c.remote, "remote", false, "let the backend filter the catalog")
}

func (c *assetsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	t, err := investpro.ParseAssetType(c.assetType)
	if err != nil {
		return fail(err)
	}
	filter := investpro.AssetFilter{}.WithType(t).WithSector(c.sector)

	client, err := newClient()
	if err != nil {
		return fail(err)
	}
	var assets []investpro.Asset
	if c.remote {
		assets, err = client.FilterAssets(ctx, filter)
	} else {
		assets, err = client.Assets(ctx)
		assets = investpro.FilterAssets(assets, filter)
	}
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.RenderAssets(renderer.Catalog{Filter: filter, Assets: assets}))
	return subcommands.ExitSuccess
}

type sectorsCmd struct {
	assetType string
}

func (*sectorsCmd) Name() string     { return "sectors" }
func (*sectorsCmd) Synopsis() string { return "list the sectors of an asset type" }
func (*sectorsCmd) Usage() string {
	return `ipro sectors [-type stock|reit|bond]

  Lists the sectors of stocks or REITs as known by the backend. Other types
  list the sectors found in the catalog.
`
}

func (c *sectorsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.assetType, "type", "stock", "asset type: stock, reit or bond")
}

func (c *sectorsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	t, err := investpro.ParseAssetType(c.assetType)
	if err != nil {
		return fail(err)
	}
	client, err := newClient()
	if err != nil {
		return fail(err)
	}
	var sectors []string
	switch t {
	case investpro.Stock, investpro.REIT:
		sectors, err = client.Sectors(ctx, t)
	default:
		var catalog []investpro.Asset
		catalog, err = client.Assets(ctx)
		sectors = investpro.Sectors(catalog, t)
	}
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.RenderSectors(renderer.SectorList{Type: t, Sectors: sectors}))
	return subcommands.ExitSuccess
}

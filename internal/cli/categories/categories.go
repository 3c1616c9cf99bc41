package categories

import (
	"fmt"

	"github.com/julianstephens/tracklit/internal/cli"
)

type CategoryListCmd struct{}

func (c *CategoryListCmd) Run(ctx *cli.Context) error {
	cats, err := ctx.Service.Categories()
	if err != nil {
		return err
	}
	ctx.Printer().Categories(cats)
	return nil
}

type CategoryAddCmd struct {
	Name string `arg:"" help:"Category name."`
}

func (c *CategoryAddCmd) Run(ctx *cli.Context) error {
	return ctx.WithLock("category add", func() error {
		if err := ctx.Service.AddCategory(c.Name); err != nil {
			return err
		}
		ctx.Printer().Success("Added category: %s", c.Name)
		return nil
	})
}

type CategoryRenameCmd struct {
	Old string `arg:"" help:"Current category name."`
	New string `arg:"" help:"New category name. An existing name merges the two."`
}

func (c *CategoryRenameCmd) Run(ctx *cli.Context) error {
	return ctx.WithLock("category rename", func() error {
		if err := ctx.Service.RenameCategory(c.Old, c.New); err != nil {
			return err
		}
		ctx.Printer().Success("Renamed category %s to %s", c.Old, c.New)
		return nil
	})
}

type CategoryDeleteCmd struct {
	Name string `arg:"" help:"Category name."`
	Yes  bool   `short:"y" help:"Do not ask for confirmation."`
}

func (c *CategoryDeleteCmd) Run(ctx *cli.Context) error {
	out := ctx.Printer()
	if !c.Yes {
		trackers, err := ctx.Service.TrackersInCategory(c.Name)
		if err != nil {
			return err
		}
		ok, err := ctx.Confirm(fmt.Sprintf("Delete category %s? Its %d trackers become uncategorized.", c.Name, len(trackers)))
		if err != nil {
			return err
		}
		if !ok {
			out.Line("Delete cancelled.")
			return nil
		}
	}

	return ctx.WithLock("category delete", func() error {
		if err := ctx.Service.DeleteCategory(c.Name); err != nil {
			return err
		}
		out.Line("Deleted category: %s", c.Name)
		return nil
	})
}

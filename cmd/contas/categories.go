package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"contas/internal/core"
	"contas/internal/events"
	"contas/internal/ledger"
)

func (a *app) cmdCategories(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("categories: expected one of list, create, deactivate, merge")
	}
	a.warnIfTokenStale()
	switch args[0] {
	case "list":
		return a.categoriesList(ctx, args[1:])
	case "create":
		return a.categoriesCreate(ctx, args[1:])
	case "deactivate":
		return a.categoriesDeactivate(ctx, args[1:])
	case "merge":
		return a.categoriesMerge(ctx, args[1:])
	default:
		return fmt.Errorf("categories: unknown subcommand %q", args[0])
	}
}

func parseCategoryType(s string) (core.CategoryType, error) {
	switch s {
	case "":
		return "", nil
	case "income":
		return core.Income, nil
	case "expense":
		return core.Expense, nil
	default:
		return "", fmt.Errorf("invalid category type %q (want income or expense)", s)
	}
}

func (a *app) categoriesList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("categories list", flag.ExitOnError)
	typ := fs.String("type", "", "filter by type: income or expense")
	includeInactive := fs.Bool("include-inactive", false, "include deactivated categories")
	fs.Parse(args)

	ct, err := parseCategoryType(*typ)
	if err != nil {
		return err
	}
	categories, err := a.client.ListCategories(ctx, ledger.CategoryFilter{
		Type:            ct,
		IncludeInactive: *includeInactive,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE")
	for _, c := range categories {
		fmt.Fprintf(w, "%d\t%s\t%s\n", c.ID, c.Name, c.Type)
	}
	return w.Flush()
}

func (a *app) categoriesCreate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("categories create", flag.ExitOnError)
	name := fs.String("name", "", "category name")
	typ := fs.String("type", "", "income or expense")
	fs.Parse(args)

	if *name == "" || *typ == "" {
		return fmt.Errorf("categories create: -name and -type are required")
	}
	ct, err := parseCategoryType(*typ)
	if err != nil {
		return err
	}
	c, err := a.client.CreateCategory(ctx, ledger.CategoryCreate{Name: *name, Type: ct})
	if err != nil {
		return err
	}
	a.publish(ctx, events.KindCategoryChanged, c.ID)
	fmt.Printf("created category %d (%s, %s)\n", c.ID, c.Name, c.Type)
	return nil
}

func (a *app) categoriesDeactivate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("categories deactivate", flag.ExitOnError)
	id := fs.Int64("id", 0, "category id")
	fs.Parse(args)

	if *id == 0 {
		return fmt.Errorf("categories deactivate: -id is required")
	}
	c, err := a.client.DeactivateCategory(ctx, *id)
	if err != nil {
		return err
	}
	a.publish(ctx, events.KindCategoryChanged, c.ID)
	fmt.Printf("deactivated category %d (%s)\n", c.ID, c.Name)
	return nil
}

func (a *app) categoriesMerge(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("categories merge", flag.ExitOnError)
	src := fs.Int64("src", 0, "category to fold away")
	dst := fs.Int64("dst", 0, "category that absorbs it")
	fs.Parse(args)

	if *src == 0 || *dst == 0 {
		return fmt.Errorf("categories merge: -src and -dst are required")
	}
	if err := a.client.MergeCategories(ctx, *src, *dst); err != nil {
		return err
	}
	a.publish(ctx, events.KindCategoryChanged, *dst)
	fmt.Printf("merged category %d into %d\n", *src, *dst)
	return nil
}

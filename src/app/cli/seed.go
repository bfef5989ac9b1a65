package cli

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"inventory/src/core/domain"
	"inventory/src/core/usecase"
	"inventory/src/core/validation"
	"inventory/src/infra/logger"
	"inventory/src/infra/repo"
)

type seedProduct struct {
	name, description, price string
	stock                    int
}

var seedCatalog = []struct {
	name, description string
	products          []seedProduct
}{
	{"Electronics", "Devices and accessories", []seedProduct{
		{"Headphones", "Over-ear wireless headphones", "129.99", 5},
		{"USB-C Cable", "1m braided charging cable", "9.99", 120},
		{"Keyboard", "Mechanical keyboard", "89.00", 14},
	}},
	{"Books", "Printed and bound", []seedProduct{
		{"Go in Practice", "Hands-on Go recipes", "39.50", 8},
		{"Domain Modeling", "Designing with aggregates", "45.00", 22},
	}},
	{"Home & Kitchen", "Things for the house", []seedProduct{
		{"Kettle", "1.7l electric kettle", "34.95", 3},
	}},
}

func newSeedCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load sample categories and products into the configured store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, closeStore, err := repo.Open(ctx, a.cfg, a.log)
			if err != nil {
				return err
			}
			defer closeStore()

			uc := usecase.NewHandlers(store, validation.New(), logger.Components(a.log))
			categories, products, err := seed(ctx, uc)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d categories and %d products\n", categories, products)
			return nil
		},
	}
}

// seed creates the sample catalog through the use-case handlers. Categories
// that already exist are skipped together with their products.
func seed(ctx context.Context, uc *usecase.Handlers) (int, int, error) {
	var categories, products int
	for _, c := range seedCatalog {
		created, err := uc.CreateCategory.Handle(ctx, usecase.CreateCategoryCommand{Name: c.name, Description: c.description})
		if err != nil {
			if domain.IsAlreadyExists(err) {
				continue
			}
			return categories, products, err
		}
		categories++

		for _, p := range c.products {
			_, err := uc.CreateProduct.Handle(ctx, usecase.CreateProductCommand{
				Name:          p.name,
				Description:   p.description,
				Price:         decimal.RequireFromString(p.price),
				Currency:      domain.DefaultCurrency,
				CategoryID:    created.ID,
				StockQuantity: p.stock,
			})
			if err != nil {
				return categories, products, err
			}
			products++
		}
	}
	return categories, products, nil
}

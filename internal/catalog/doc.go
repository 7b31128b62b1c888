// Package catalog flags products in a catalog table as trending.
//
// A run loads a Table through a TableLoader, leaves it untouched when the
// isTrending column already exists, and otherwise draws the flag for every
// row, promotes extra rows until the configured floor is reached, writes the
// table back through a TableWriter and prints a short summary.
//
// Basic usage:
//
//	store := workbook.NewStore()
//	runner := catalog.NewRunner(store, store, catalog.WithRand(catalog.NewRand(42)))
//	result, err := runner.Run(ctx, catalog.RunConfig{
//	    SourcePath: "src/data/products.xlsx",
//	    OutputPath: "src/data/products.xlsx",
//	    Options:    catalog.DefaultOptions(),
//	})
//
// Enrich can also be used on its own against an in-memory Table.
package catalog

// Package files provides the file operations around a catalog run: existence
// checks and timestamped backups of a workbook before it is overwritten.
//
// Example usage:
//
//	manager := files.NewManager("backups", logger)
//	backupPath, err := manager.Backup(ctx, "src/data/products.xlsx")
//	// backups/products.20261019T101500.bak.xlsx
package files

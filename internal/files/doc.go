// Package files provides discovery of candidate price-data files.
//
// Discovery enumerates a directory, filters by extension, and returns
// matches in deterministic name order so analysis runs are reproducible
// regardless of filesystem iteration order.
//
// Example usage:
//
//	discovery := files.NewDiscovery("/path/to/base")
//
//	// Find all CSV files under data/stocks
//	csvFiles, err := discovery.FindCSVFiles("data/stocks")
package files

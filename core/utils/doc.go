// Package utils provides common utility functions for the catalog-sync application.
//
// The conversion helpers coerce loosely typed JSON values (as produced by decoding
// into map[string]any) into the concrete Go types the rest of the code expects.
// The remote catalog is not schema-strict: a numeric field may arrive as a string,
// a boolean as "1", and any of them as null.
package utils

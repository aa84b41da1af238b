// file: internal/library/taglib_support.go
// version: 1.0.0
// guid: 4d5e6f7a-8b9c-0d1e-2f3a-4b5c6d7e8f9a

//go:build taglib

package library

import (
	"fmt"

	"go.senan.xyz/taglib"
)

// writeFileYear rewrites the DATE tag of one audio file in place.
func writeFileYear(path, year string) error {
	err := taglib.WriteTags(path, map[string][]string{
		taglib.Date: {year},
	}, 0)
	if err != nil {
		return fmt.Errorf("write year tag: %w", err)
	}
	return nil
}

// file: internal/library/taglib_stub.go
// version: 1.0.0
// guid: 5e6f7a8b-9c0d-1e2f-3a4b-5c6d7e8f9a0b

//go:build !taglib

package library

import "fmt"

// writeFileYear requires the taglib build tag; the default build reads
// folder libraries but cannot write tags back.
func writeFileYear(path, year string) error {
	return fmt.Errorf("tag writeback for %s requires a build with -tags taglib", path)
}

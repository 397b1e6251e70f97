// Package engine scans a tree of text files for runs of invisible alphabet
// symbols. Every run becomes a finding: decoded payloads, provenance records,
// or stray symbols that do not decode. This package is internal; external
// consumers should use the stable facade in pkg/core.
package engine

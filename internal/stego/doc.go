// Package stego hides codec payloads inside carrier text and recovers them.
//
// Embed splices an encoded payload into the middle of a carrier. A Detector
// scans any text for maximal runs of alphabet symbols and decodes each run on
// its own; runs that do not decode are skipped rather than reported as errors.
package stego

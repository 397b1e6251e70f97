// Package alphabet defines the ordered sets of invisible code points used as
// encoding symbols. An Alphabet is validated once at construction and is
// read-only afterwards, so a single value may be shared by any number of
// codecs and detectors.
package alphabet

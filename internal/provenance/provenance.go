// Package provenance stamps copied text with an invisible record of where it
// came from and reads such records back out of pasted text.
package provenance

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/blang/semver/v4"
	"github.com/redactyl/zerowidth/internal/codec"
	"github.com/redactyl/zerowidth/internal/stego"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Version is the record format version written by Stamp.
const Version = "1.0.0"

// dateLayout matches JavaScript's Date.prototype.toISOString.
const dateLayout = "2006-01-02T15:04:05.000Z07:00"

const recordSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "original": { "type": "string" },
    "href": { "type": "string" },
    "date": { "type": "string" },
    "version": { "type": "string" }
  },
  "required": ["original", "href", "date", "version"]
}`

var schema = jsonschema.MustCompileString("provenance-record.schema.json", recordSchema)

// Record is the hidden provenance attached to a piece of text.
type Record struct {
	Original string `json:"original"`
	Href     string `json:"href"`
	Date     string `json:"date"`
	Version  string `json:"version"`
}

// NewRecord builds a record for text copied from href at now.
func NewRecord(text, href string, now time.Time) Record {
	return Record{
		Original: text,
		Href:     href,
		Date:     now.UTC().Format(dateLayout),
		Version:  Version,
	}
}

// Time parses the record date. The zero time is returned when the date is
// not in the expected layout.
func (r Record) Time() time.Time {
	t, err := time.Parse(dateLayout, r.Date)
	if err != nil {
		if t, err = time.Parse(time.RFC3339Nano, r.Date); err != nil {
			return time.Time{}
		}
	}
	return t
}

var current = semver.MustParse(Version)

// Compatible reports whether the record's version shares the major version
// of the format written by Stamp. Unparseable versions are incompatible.
func (r Record) Compatible() bool {
	v, err := semver.ParseTolerant(r.Version)
	if err != nil {
		return false
	}
	return v.Major == current.Major
}

// Stamp embeds a provenance record for text into text itself.
func Stamp(c *codec.Codec, text, href string, now time.Time) (string, error) {
	b, err := json.Marshal(NewRecord(text, href, now))
	if err != nil {
		return "", fmt.Errorf("marshal record: %w", err)
	}
	return stego.Embed(c, text, string(b)), nil
}

// Validate checks that b is a JSON document matching the record schema.
func Validate(b []byte) error {
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("invalid record: %w", err)
	}
	return nil
}

// Parse returns the payloads that are valid provenance records, in order,
// and how many payloads were rejected.
func Parse(payloads []string) ([]Record, int) {
	out := []Record{}
	rejected := 0
	for _, p := range payloads {
		rec, err := parseOne(p)
		if err != nil {
			rejected++
			continue
		}
		out = append(out, rec)
	}
	return out, rejected
}

func parseOne(p string) (Record, error) {
	var rec Record
	b := []byte(strings.TrimSpace(p))
	if err := Validate(b); err != nil {
		return rec, err
	}
	if err := json.Unmarshal(b, &rec); err != nil {
		return rec, err
	}
	return rec, nil
}

package listing

import (
	"strings"
)

// Defaults are the deployment-level fallback values applied by Add when a
// field is absent from the body. They come from the profile, never from code.
type Defaults struct {
	City  string
	State string
	Agent string
}

// fieldHeaders is the fixed set of recognized field names, in the order
// they are scanned. Multi-word headers ("Year Built:") are matched as a
// whole prefix.
var fieldHeaders = []string{
	"address",
	"city",
	"state",
	"zip",
	"price",
	"beds",
	"baths",
	"sqft",
	"year built",
	"lot size",
	"mls",
	"agent",
	"description",
	"features",
}

// Extractor parses a raw email body into typed listing fields.
type Extractor struct {
	defaults       Defaults
	photoURLPrefix string
}

// NewExtractor creates an extractor. photoURLPrefix enables link-mode photo
// collection; empty disables it (attachment deployments).
func NewExtractor(defaults Defaults, photoURLPrefix string) *Extractor {
	return &Extractor{
		defaults:       defaults,
		photoURLPrefix: photoURLPrefix,
	}
}

// Run extracts every recognized field from the body. Conversion failures
// never abort extraction; the raw text is retained instead. Defaults are
// NOT applied here, see ApplyDefaults.
func (e *Extractor) Run(body string) ParsedFields {
	lines := strings.Split(body, "\n")

	var fields ParsedFields
	fields.Address = scanField(lines, "address")
	fields.City = scanField(lines, "city")
	fields.State = scanField(lines, "state")
	fields.Zip = scanField(lines, "zip")
	fields.LotSize = scanField(lines, "lot size")
	fields.MLSNumber = scanField(lines, "mls")
	fields.Agent = scanField(lines, "agent")

	if raw := scanField(lines, "price"); raw != nil {
		v := ParseDigits(*raw)
		fields.Price = &v
	}
	if raw := scanField(lines, "sqft"); raw != nil {
		v := ParseDigits(*raw)
		fields.Sqft = &v
	}
	if raw := scanField(lines, "beds"); raw != nil {
		v := ParseFlexInt(*raw)
		fields.Beds = &v
	}
	if raw := scanField(lines, "year built"); raw != nil {
		v := ParseFlexInt(*raw)
		fields.YearBuilt = &v
	}
	if raw := scanField(lines, "baths"); raw != nil {
		v := ParseFlexNumber(*raw)
		fields.Baths = &v
	}

	fields.Description = scanDescription(lines)

	if raw := scanField(lines, "features"); raw != nil {
		fields.Features = splitFeatures(*raw)
	}

	if e.photoURLPrefix != "" {
		fields.Photos = scanPhotoLinks(lines, e.photoURLPrefix)
	}

	return fields
}

// ApplyDefaults fills city, state, and agent from the deployment defaults
// when absent. Only the Add flow wants this; Update must leave fields it
// did not receive untouched.
func (e *Extractor) ApplyDefaults(fields *ParsedFields) {
	if fields.City == nil && e.defaults.City != "" {
		v := e.defaults.City
		fields.City = &v
	}
	if fields.State == nil && e.defaults.State != "" {
		v := e.defaults.State
		fields.State = &v
	}
	if fields.Agent == nil && e.defaults.Agent != "" {
		v := e.defaults.Agent
		fields.Agent = &v
	}
}

// matchHeader reports whether the line starts with `<name>:` (optional
// whitespace before the colon, case-insensitive) and returns the trimmed
// remainder. A matching line with an empty value still counts as a match:
// first match wins, even when it carries no value.
func matchHeader(line, name string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < len(name) || !strings.EqualFold(trimmed[:len(name)], name) {
		return "", false
	}
	rest := strings.TrimLeft(trimmed[len(name):], " \t")
	if !strings.HasPrefix(rest, ":") {
		return "", false
	}
	return strings.TrimSpace(rest[1:]), true
}

// scanField returns the value of the first line of the form `<name>:<value>`,
// or nil when no line matches or the first match is empty.
func scanField(lines []string, name string) *string {
	for _, line := range lines {
		if value, ok := matchHeader(line, name); ok {
			if value == "" {
				return nil
			}
			return &value
		}
	}
	return nil
}

// scanDescription captures the multi-line description: everything from the
// Description: header up to the next recognized field header or the end of
// the body, trimmed.
func scanDescription(lines []string) *string {
	start := -1
	var collected []string
	for i, line := range lines {
		if value, ok := matchHeader(line, "description"); ok {
			start = i
			if value != "" {
				collected = append(collected, value)
			}
			break
		}
	}
	if start < 0 {
		return nil
	}

	for _, line := range lines[start+1:] {
		if isRecognizedHeader(line) {
			break
		}
		collected = append(collected, line)
	}

	text := strings.TrimSpace(strings.Join(collected, "\n"))
	if text == "" {
		return nil
	}
	return &text
}

func isRecognizedHeader(line string) bool {
	for _, name := range fieldHeaders {
		if _, ok := matchHeader(line, name); ok {
			return true
		}
	}
	return false
}

// splitFeatures splits on commas, trims each piece, and drops empties,
// preserving order.
func splitFeatures(raw string) []string {
	var features []string
	for _, piece := range strings.Split(raw, ",") {
		piece = strings.TrimSpace(piece)
		if piece != "" {
			features = append(features, piece)
		}
	}
	return features
}

// scanPhotoLinks collects, in document order, every line that is itself a
// hosted photo URL recognized by the configured prefix.
func scanPhotoLinks(lines []string, prefix string) []string {
	var photos []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" && strings.HasPrefix(line, prefix) && !strings.ContainsAny(line, " \t") {
			photos = append(photos, line)
		}
	}
	return photos
}

package listing

import (
	"encoding/json"
	"strconv"
	"strings"
)

// StatusActive is the only status this pipeline ever assigns. Deletion
// removes the record instead of changing status.
const StatusActive = "active"

// Listing is the canonical record persisted in listings.json. Field names
// match the JSON the site consumes.
type Listing struct {
	ID          string      `json:"id"`
	Address     string      `json:"address"`
	City        string      `json:"city,omitempty"`
	State       string      `json:"state,omitempty"`
	Zip         string      `json:"zip,omitempty"`
	Price       *FlexInt    `json:"price,omitempty"`
	Beds        *FlexInt    `json:"beds,omitempty"`
	Baths       *FlexNumber `json:"baths,omitempty"`
	Sqft        *FlexInt    `json:"sqft,omitempty"`
	YearBuilt   *FlexInt    `json:"yearBuilt,omitempty"`
	LotSize     string      `json:"lotSize,omitempty"`
	MLSNumber   string      `json:"mlsNumber,omitempty"`
	Agent       string      `json:"agent,omitempty"`
	Description string      `json:"description,omitempty"`
	Features    []string    `json:"features,omitempty"`
	Photos      []string    `json:"photos"`
	Status      string      `json:"status"`
	AddedDate   string      `json:"addedDate"`
}

// FlexInt is an integer parsed from free text. When conversion fails the
// trimmed raw text is retained instead, so the value still survives the
// store round-trip.
type FlexInt struct {
	Value int
	Raw   string
}

func (f FlexInt) IsRaw() bool { return f.Raw != "" }

func (f FlexInt) String() string {
	if f.Raw != "" {
		return f.Raw
	}
	return strconv.Itoa(f.Value)
}

func (f FlexInt) MarshalJSON() ([]byte, error) {
	if f.Raw != "" {
		return json.Marshal(f.Raw)
	}
	return json.Marshal(f.Value)
}

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &f.Raw)
	}
	return json.Unmarshal(data, &f.Value)
}

// FlexNumber is a numeric value that is fractional only when the source
// text contained a decimal point (baths). Whole values marshal as integers.
type FlexNumber struct {
	Value float64
	Whole bool
	Raw   string
}

func (f FlexNumber) IsRaw() bool { return f.Raw != "" }

func (f FlexNumber) String() string {
	if f.Raw != "" {
		return f.Raw
	}
	if f.Whole {
		return strconv.Itoa(int(f.Value))
	}
	return strconv.FormatFloat(f.Value, 'f', -1, 64)
}

func (f FlexNumber) MarshalJSON() ([]byte, error) {
	if f.Raw != "" {
		return json.Marshal(f.Raw)
	}
	if f.Whole {
		return json.Marshal(int(f.Value))
	}
	return json.Marshal(f.Value)
}

func (f *FlexNumber) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &f.Raw)
	}
	if err := json.Unmarshal(data, &f.Value); err != nil {
		return err
	}
	f.Whole = !strings.ContainsRune(string(data), '.')
	return nil
}

// ParseFlexInt converts free text to a FlexInt, keeping the trimmed raw
// text when conversion fails.
func ParseFlexInt(raw string) FlexInt {
	s := strings.TrimSpace(raw)
	n, err := strconv.Atoi(s)
	if err != nil {
		return FlexInt{Raw: s}
	}
	return FlexInt{Value: n}
}

// ParseDigits strips every non-digit character before conversion, so
// "$1,250,000" parses as 1250000. Text without digits falls back to raw.
func ParseDigits(raw string) FlexInt {
	s := strings.TrimSpace(raw)
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return FlexInt{Raw: s}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return FlexInt{Raw: s}
	}
	return FlexInt{Value: n}
}

// ParseFlexNumber parses a decimal number when the text contains a
// decimal point, an integer otherwise.
func ParseFlexNumber(raw string) FlexNumber {
	s := strings.TrimSpace(raw)
	if strings.Contains(s, ".") {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return FlexNumber{Raw: s}
		}
		return FlexNumber{Value: v}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return FlexNumber{Raw: s}
	}
	return FlexNumber{Value: float64(n), Whole: true}
}

// ParsedFields holds the typed fields extracted from one email body.
// Nil means the field was absent; the extractor never produces empty
// values, so a non-nil field is always safe to apply.
type ParsedFields struct {
	Address     *string
	City        *string
	State       *string
	Zip         *string
	Price       *FlexInt
	Beds        *FlexInt
	Baths       *FlexNumber
	Sqft        *FlexInt
	YearBuilt   *FlexInt
	LotSize     *string
	MLSNumber   *string
	Agent       *string
	Description *string
	Features    []string
	Photos      []string
}

// Apply overwrites the listing's fields with every field present in p.
// The listing's identity (ID) is never touched here.
func (p ParsedFields) Apply(l *Listing) {
	if p.Address != nil {
		l.Address = *p.Address
	}
	if p.City != nil {
		l.City = *p.City
	}
	if p.State != nil {
		l.State = *p.State
	}
	if p.Zip != nil {
		l.Zip = *p.Zip
	}
	if p.Price != nil {
		l.Price = p.Price
	}
	if p.Beds != nil {
		l.Beds = p.Beds
	}
	if p.Baths != nil {
		l.Baths = p.Baths
	}
	if p.Sqft != nil {
		l.Sqft = p.Sqft
	}
	if p.YearBuilt != nil {
		l.YearBuilt = p.YearBuilt
	}
	if p.LotSize != nil {
		l.LotSize = *p.LotSize
	}
	if p.MLSNumber != nil {
		l.MLSNumber = *p.MLSNumber
	}
	if p.Agent != nil {
		l.Agent = *p.Agent
	}
	if p.Description != nil {
		l.Description = *p.Description
	}
	if len(p.Features) > 0 {
		l.Features = p.Features
	}
	if len(p.Photos) > 0 {
		l.Photos = p.Photos
	}
}

// Keys returns the JSON names of the fields present in p, in canonical
// order. Used for "Updated fields: ..." confirmations.
func (p ParsedFields) Keys() []string {
	var keys []string
	add := func(name string, set bool) {
		if set {
			keys = append(keys, name)
		}
	}
	add("address", p.Address != nil)
	add("city", p.City != nil)
	add("state", p.State != nil)
	add("zip", p.Zip != nil)
	add("price", p.Price != nil)
	add("beds", p.Beds != nil)
	add("baths", p.Baths != nil)
	add("sqft", p.Sqft != nil)
	add("yearBuilt", p.YearBuilt != nil)
	add("lotSize", p.LotSize != nil)
	add("mlsNumber", p.MLSNumber != nil)
	add("agent", p.Agent != nil)
	add("description", p.Description != nil)
	add("features", len(p.Features) > 0)
	add("photos", len(p.Photos) > 0)
	return keys
}

package features

import (
	"fmt"
	"math"
	"sort"
)

// Training-set statistics for the Age column. They must match the values the
// classifier was fitted with.
const (
	AgeMean = 65.2599
	AgeStd  = 9.0775

	MinAge = 0.0
	MaxAge = 120.0
)

// RawInput is one form submission. Every field except Age is a label drawn
// from the field's option set.
type RawInput struct {
	IADLScore       string            `json:"iadl_score"`
	Gender          string            `json:"gender"`
	Indicators      map[string]string `json:"indicators"`
	SelfRatedHealth string            `json:"self_rated_health"`
	Hearing         string            `json:"hearing"`
	Age             *float64          `json:"age"`
}

// StandardizeAge returns the z-score of age against the training statistics.
func StandardizeAge(age float64) float64 {
	return (age - AgeMean) / AgeStd
}

// DestandardizeAge inverts StandardizeAge.
func DestandardizeAge(z float64) float64 {
	return z*AgeStd + AgeMean
}

type fieldEncoder func(RawInput) (float64, error)

// Encoder maps RawInput to a Vector in manifest order.
type Encoder struct {
	manifest Manifest
	fields   []fieldEncoder
}

// NewEncoder binds an encoder to a manifest. It fails if any manifest name
// has no mapping.
func NewEncoder(m Manifest) (*Encoder, error) {
	if m.Len() == 0 {
		return nil, fmt.Errorf("encoder: manifest is empty")
	}
	e := &Encoder{manifest: m, fields: make([]fieldEncoder, m.Len())}
	for i, name := range m.names {
		fe, ok := encoderFor(name)
		if !ok {
			return nil, &MappingError{Field: name, Reason: "no mapping defined for manifest field"}
		}
		e.fields[i] = fe
	}
	return e, nil
}

func (e *Encoder) Manifest() Manifest { return e.manifest }

// Encode produces the feature vector for in. It is a pure function of its
// input and the encoder's manifest.
func (e *Encoder) Encode(in RawInput) (Vector, error) {
	if err := checkIndicatorKeys(in.Indicators); err != nil {
		return Vector{}, err
	}
	v := Vector{
		Names:  e.manifest.Names(),
		Values: make([]float64, len(e.fields)),
	}
	for i, fe := range e.fields {
		val, err := fe(in)
		if err != nil {
			return Vector{}, err
		}
		v.Values[i] = val
	}
	return v, nil
}

func encoderFor(name string) (fieldEncoder, bool) {
	switch {
	case name == FieldIADL:
		return enumField(name, iadlOptions, func(in RawInput) string { return in.IADLScore }), true
	case name == FieldGender:
		return enumField(name, genderOptions, func(in RawInput) string { return in.Gender }), true
	case name == FieldSelfRatedHealth:
		return enumField(name, healthOptions, func(in RawInput) string { return in.SelfRatedHealth }), true
	case name == FieldHearing:
		return enumField(name, healthOptions, func(in RawInput) string { return in.Hearing }), true
	case name == FieldAge:
		return encodeAge, true
	case IsIndicator(name):
		return indicatorField(name), true
	}
	return nil, false
}

func enumField(name string, opts OptionSet, get func(RawInput) string) fieldEncoder {
	return func(in RawInput) (float64, error) {
		raw := get(in)
		v, ok := opts.Lookup(raw)
		if !ok {
			return 0, unknownOption(name, raw)
		}
		return v, nil
	}
}

func indicatorField(name string) fieldEncoder {
	return func(in RawInput) (float64, error) {
		raw, present := in.Indicators[name]
		if !present {
			return 0, &MappingError{Field: name, Reason: "value is required"}
		}
		v, ok := yesNoOptions.Lookup(raw)
		if !ok {
			return 0, unknownOption(name, raw)
		}
		return v, nil
	}
}

func encodeAge(in RawInput) (float64, error) {
	if in.Age == nil {
		return 0, &MappingError{Field: FieldAge, Reason: "value is required"}
	}
	age := *in.Age
	if math.IsNaN(age) || math.IsInf(age, 0) || age < MinAge || age > MaxAge {
		return 0, &MappingError{
			Field:  FieldAge,
			Value:  fmt.Sprintf("%g", age),
			Reason: fmt.Sprintf("value outside [%g, %g]", MinAge, MaxAge),
		}
	}
	return StandardizeAge(age), nil
}

// checkIndicatorKeys rejects indicator names the form does not define.
func checkIndicatorKeys(indicators map[string]string) error {
	keys := make([]string, 0, len(indicators))
	for k := range indicators {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if !IsIndicator(k) {
			return &MappingError{Field: k, Value: indicators[k], Reason: "unknown indicator"}
		}
	}
	return nil
}

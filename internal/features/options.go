package features

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Manifest field names. These are the column names the classifier was trained on.
const (
	FieldIADL             = "IADL score"
	FieldGender           = "Gender"
	FieldResidence        = "Residence"
	FieldHypertension     = "Hypertension"
	FieldDyslipidemia     = "Dyslipidemia"
	FieldDigestiveDisease = "Digestive disease"
	FieldVigorousActivity = "Vigorous activity"
	FieldModerateActivity = "Moderate activity"
	FieldDisabilityStatus = "Disability status"
	FieldTapWaterAccess   = "Tap water access"
	FieldSelfRatedHealth  = "Self rated health"
	FieldHearing          = "Hearing"
	FieldAge              = "Age"
)

// IndicatorFields are the yes/no fields, in form order.
var indicatorFields = []string{
	FieldResidence,
	FieldHypertension,
	FieldDyslipidemia,
	FieldDigestiveDisease,
	FieldVigorousActivity,
	FieldModerateActivity,
	FieldDisabilityStatus,
	FieldTapWaterAccess,
}

// Option is one selectable label and the number it encodes to.
type Option struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// OptionSet is an ordered enumeration table. The first option is the form default.
type OptionSet []Option

// Lookup returns the encoding for label. Labels are NFKC-normalised and
// trimmed before comparison; matching is otherwise exact.
func (s OptionSet) Lookup(label string) (float64, bool) {
	label = normalizeLabel(label)
	for _, o := range s {
		if o.Label == label {
			return o.Value, true
		}
	}
	return 0, false
}

// Labels returns the option labels in order.
func (s OptionSet) Labels() []string {
	out := make([]string, len(s))
	for i, o := range s {
		out[i] = o.Label
	}
	return out
}

func (s OptionSet) clone() OptionSet {
	out := make(OptionSet, len(s))
	copy(out, s)
	return out
}

var (
	genderOptions = OptionSet{
		{Label: "Female", Value: 0},
		{Label: "Male", Value: 1},
	}
	yesNoOptions = OptionSet{
		{Label: "No", Value: 0},
		{Label: "Yes", Value: 1},
	}
	healthOptions = OptionSet{
		{Label: "Very poor", Value: 1},
		{Label: "Poor", Value: 2},
		{Label: "Average", Value: 3},
		{Label: "Good", Value: 4},
		{Label: "Very Good", Value: 5},
	}
	iadlOptions = buildIADLOptions(5)
)

func buildIADLOptions(max int) OptionSet {
	out := make(OptionSet, 0, max+1)
	for i := 0; i <= max; i++ {
		out = append(out, Option{Label: IADLLabel(i), Value: float64(i)})
	}
	return out
}

// IADLLabel returns the form label for an IADL difficulty count.
func IADLLabel(n int) string {
	return fmt.Sprintf("%d items with difficulties", n)
}

// IndicatorFields returns the yes/no field names in form order.
func IndicatorFields() []string {
	out := make([]string, len(indicatorFields))
	copy(out, indicatorFields)
	return out
}

// IsIndicator reports whether name is one of the yes/no fields.
func IsIndicator(name string) bool {
	for _, f := range indicatorFields {
		if f == name {
			return true
		}
	}
	return false
}

// Options returns a copy of the enumeration table for an enumerated field.
// Age is continuous and has no table.
func Options(field string) (OptionSet, bool) {
	switch {
	case field == FieldIADL:
		return iadlOptions.clone(), true
	case field == FieldGender:
		return genderOptions.clone(), true
	case field == FieldSelfRatedHealth, field == FieldHearing:
		return healthOptions.clone(), true
	case IsIndicator(field):
		return yesNoOptions.clone(), true
	}
	return nil, false
}

func normalizeLabel(s string) string {
	return strings.TrimSpace(norm.NFKC.String(s))
}

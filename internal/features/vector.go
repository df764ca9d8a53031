package features

// Vector is an encoded submission: values aligned with the manifest names.
type Vector struct {
	Names  []string  `json:"names"`
	Values []float64 `json:"values"`
}

func (v Vector) Len() int { return len(v.Values) }

// Get returns the encoded value for a feature name.
func (v Vector) Get(name string) (float64, bool) {
	for i, n := range v.Names {
		if n == name && i < len(v.Values) {
			return v.Values[i], true
		}
	}
	return 0, false
}

// Map returns the vector keyed by feature name.
func (v Vector) Map() map[string]float64 {
	out := make(map[string]float64, len(v.Names))
	for i, n := range v.Names {
		if i < len(v.Values) {
			out[n] = v.Values[i]
		}
	}
	return out
}

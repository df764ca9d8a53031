package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MikeSquared-Agency/CardioRisk/internal/advice"
	"github.com/MikeSquared-Agency/CardioRisk/internal/features"
	"github.com/MikeSquared-Agency/CardioRisk/internal/scoring"
)

const (
	formTitle       = "COPD Patient Cardiovascular Disease (CVD) Risk Prediction"
	formDescription = "Predicts the probability of CVD in COPD patients from clinical features and returns tiered health management advice."
)

// FormField describes one input of the assessment form.
type FormField struct {
	Name    string             `json:"name"`
	Key     string             `json:"key"`
	Options features.OptionSet `json:"options,omitempty"`
	Default any                `json:"default"`
	Min     *float64           `json:"min,omitempty"`
	Max     *float64           `json:"max,omitempty"`
}

type FormDescriptor struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Fields      []FormField `json:"fields"`
	Disclaimer  string      `json:"disclaimer"`
}

type FormHandler struct {
	form FormDescriptor
}

func NewFormHandler() *FormHandler {
	return &FormHandler{form: buildForm()}
}

func (h *FormHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.form)
}

func (h *FormHandler) Advice(w http.ResponseWriter, r *http.Request) {
	tier, err := scoring.ParseTier(chi.URLParam(r, "tier"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, advice.For(tier))
}

func buildForm() FormDescriptor {
	var fields []FormField
	enumerated := func(name, key string) FormField {
		opts, _ := features.Options(name)
		return FormField{Name: name, Key: key, Options: opts, Default: opts[0].Label}
	}

	fields = append(fields,
		enumerated(features.FieldIADL, "iadl_score"),
		enumerated(features.FieldGender, "gender"),
	)
	for _, name := range features.IndicatorFields() {
		fields = append(fields, enumerated(name, "indicators."+name))
	}
	fields = append(fields,
		enumerated(features.FieldSelfRatedHealth, "self_rated_health"),
		enumerated(features.FieldHearing, "hearing"),
	)

	minAge, maxAge := float64(features.MinAge), float64(features.MaxAge)
	fields = append(fields, FormField{
		Name:    features.FieldAge,
		Key:     "age",
		Default: features.AgeMean,
		Min:     &minAge,
		Max:     &maxAge,
	})

	return FormDescriptor{
		Title:       formTitle,
		Description: formDescription,
		Fields:      fields,
		Disclaimer:  advice.Disclaimer,
	}
}

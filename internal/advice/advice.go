// Package advice holds the static tiered recommendations shown with a risk
// assessment.
package advice

import (
	"github.com/MikeSquared-Agency/CardioRisk/internal/scoring"
)

// Disclaimer accompanies every bundle.
const Disclaimer = "These recommendations are for informational purposes only. Consult healthcare professionals for tailored advice."

const iconBase = "https://img.icons8.com/color/96/000000/"

// Recommendation is one advice card.
type Recommendation struct {
	Icon    string   `json:"icon"`
	Heading string   `json:"heading"`
	Body    []string `json:"body"`
}

// Bundle is the advice for one tier.
type Bundle struct {
	Tier            scoring.Tier     `json:"tier"`
	Indicator       string           `json:"indicator"`
	Headline        string           `json:"headline"`
	Recommendations []Recommendation `json:"recommendations"`
}

var bundles = map[scoring.Tier]Bundle{
	scoring.TierLow: {
		Tier:      scoring.TierLow,
		Indicator: "🟢",
		Headline:  "Low Risk: Maintain current healthy habits and regular monitoring.",
		Recommendations: []Recommendation{
			{
				Icon:    iconBase + "running.png",
				Heading: "Exercise Maintenance",
				Body: []string{
					"30 minutes of moderate exercise daily",
					"Activities like walking or tai chi.",
				},
			},
			{
				Icon:    iconBase + "vegetarian-food.png",
				Heading: "Balanced Nutrition",
				Body: []string{
					"High fiber, low salt and fat diet",
					"Include vegetables, whole grains, and lean protein.",
				},
			},
			{
				Icon:    iconBase + "heart-monitor.png",
				Heading: "Routine Monitoring",
				Body: []string{
					"Monthly blood pressure and heart rate checks",
					"Log and observe any anomalies.",
				},
			},
		},
	},
	scoring.TierModerate: {
		Tier:      scoring.TierModerate,
		Indicator: "🟡",
		Headline:  "Moderate Risk: Enhance self-management and consult healthcare providers regularly.",
		Recommendations: []Recommendation{
			{
				Icon:    iconBase + "yoga.png",
				Heading: "Enhanced Exercise",
				Body: []string{
					"40 minutes of moderate to vigorous aerobic exercise daily",
					"Incorporate resistance training like bands.",
				},
			},
			{
				Icon:    iconBase + "meal.png",
				Heading: "Nutritional Adjustment",
				Body: []string{
					"Limit processed foods and sugars",
					"Increase omega-3 rich foods.",
				},
			},
			{
				Icon:    iconBase + "doctor-male.png",
				Heading: "Regular Follow-up",
				Body: []string{
					"Quarterly checks: blood pressure, lipid panel, ECG",
					"Discuss possible medication adjustments.",
				},
			},
		},
	},
	scoring.TierHigh: {
		Tier:      scoring.TierHigh,
		Indicator: "🔴",
		Headline:  "High Risk: Seek immediate medical evaluation for specialized cardiovascular assessment.",
		Recommendations: []Recommendation{
			{
				Icon:    iconBase + "stethoscope.png",
				Heading: "Specialized Testing",
				Body: []string{
					"Comprehensive cardiovascular tests: echocardiography, coronary CT",
					"Vascular function and inflammation marker assessment.",
				},
			},
			{
				Icon:    iconBase + "pill.png",
				Heading: "Medication Management",
				Body: []string{
					"Adhere to antihypertensive and statin therapy",
					"Monitor for side effects and efficacy.",
				},
			},
			{
				Icon:    iconBase + "no-smoking.png",
				Heading: "Lifestyle Intervention",
				Body: []string{
					"Cease smoking and avoid secondhand smoke",
					"Maintain regular sleep schedule and stress management.",
				},
			},
		},
	},
}

// For returns the advice bundle for a tier. The result is a copy; callers
// may modify it freely. An unknown tier resolves to the High bundle so that
// the lookup stays total.
func For(t scoring.Tier) Bundle {
	b, ok := bundles[t]
	if !ok {
		b = bundles[scoring.TierHigh]
	}
	return b.clone()
}

func (b Bundle) clone() Bundle {
	out := b
	out.Recommendations = make([]Recommendation, len(b.Recommendations))
	for i, r := range b.Recommendations {
		r.Body = append([]string(nil), r.Body...)
		out.Recommendations[i] = r
	}
	return out
}

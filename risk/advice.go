package risk

import (
	"fmt"
	"strings"
)

var drugRecommendations = map[Tier][]string{
	TierCritical: {
		"CRITICAL RISK - Do not take these medicines together without a doctor",
		"Consult doctor immediately",
		"Alternative medication may be recommended",
	},
	TierHigh: {
		"HIGH RISK - Medical supervision required",
		"Monitor for adverse effects closely",
		"Inform your doctor about all medications",
	},
	TierModerate: {
		"Moderate risk - Consult your doctor",
		"Monitor for side effects",
		"Generally manageable with precautions",
	},
	TierLow: {
		"Low risk detected",
		"Take as prescribed",
		"Report any unusual symptoms",
	},
}

var generalDrugAdvice = []string{
	"Take medications as prescribed with food or water",
	"Keep track of all medications you are taking",
	"Inform all healthcare providers about your complete medication list",
}

// DrugRecommendations lists advice for a drug-risk tier followed by
// general advice.
func DrugRecommendations(t Tier, hasFindings bool) []string {
	out := make([]string, 0, 8)
	out = append(out, drugRecommendations[min(t, TierCritical)]...)
	if hasFindings {
		out = append(out, "Consult your doctor before starting any new medication")
	} else {
		out = append(out, "No major interactions detected")
	}
	return append(out, generalDrugAdvice...)
}

// ImmediateActions lists what to do now for an urgency level.
func ImmediateActions(u Urgency) []string {
	switch u {
	case UrgencyEmergency:
		return []string{
			"CALL EMERGENCY SERVICES IMMEDIATELY (911 or local emergency number)",
			"Do NOT delay seeking medical attention",
			"Have someone stay with you until help arrives",
		}
	case UrgencyImmediate:
		return []string{
			"Visit an emergency room or urgent care center TODAY",
			"Do not wait for symptoms to worsen",
			"Bring list of current medications and medical history",
		}
	case UrgencyWithin24h:
		return []string{
			"Schedule a doctor appointment within 24 hours",
			"Monitor your symptoms closely",
			"Take medications as prescribed",
		}
	default:
		return []string{
			"Rest and monitor symptoms at home",
			"Stay hydrated",
			"Contact doctor if symptoms worsen",
		}
	}
}

// OverallAdvice summarizes a symptom assessment in one paragraph.
// symptomNames and conditionNames are in display order; only the first
// three symptoms and two conditions are mentioned.
func OverallAdvice(a Assessment, age, chronicCount int, symptomNames, conditionNames []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Based on your symptoms (%s), ", strings.Join(symptomNames[:min(3, len(symptomNames))], ", "))
	if len(conditionNames) > 0 {
		fmt.Fprintf(&b, "you may have %s. ", strings.Join(conditionNames[:min(2, len(conditionNames))], " or "))
	}
	switch {
	case age < 18:
		fmt.Fprintf(&b, "As you are %d years old (under 18), please consult with a pediatrician. ", age)
	case age >= 65:
		fmt.Fprintf(&b, "As you are %d years old (senior), extra caution is advised. ", age)
	}
	if chronicCount > 0 {
		fmt.Fprintf(&b, "With %d chronic condition(s), medical supervision is important. ", chronicCount)
	}
	fmt.Fprintf(&b, "Your risk score is %d/100 (%s). ", a.Score, strings.ReplaceAll(string(a.Urgency), "_", " "))
	if a.Urgency == UrgencyEmergency || a.Urgency == UrgencyImmediate {
		b.WriteString("Seek medical attention as soon as possible.")
	} else {
		b.WriteString("Monitor your symptoms and follow the recommendations.")
	}
	return b.String()
}

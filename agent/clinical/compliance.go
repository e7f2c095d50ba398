package clinical

import (
	"context"
	"fmt"
	"strings"

	"github.com/skillsenselab/aurascribe/agent"
)

type complianceCheck struct {
	name     string
	keywords []string
	warning  string
}

var baseChecks = []complianceCheck{
	{
		name:     "patient identification",
		keywords: []string{"patient", "monsieur", "madame", "mr", "mrs", "ms"},
		warning:  "No patient identification found in the note.",
	},
	{
		name:     "history of present illness",
		keywords: []string{"history", "reports", "presents", "complains", "since", "depuis"},
		warning:  "History of present illness appears incomplete.",
	},
	{
		name:     "clinical examination",
		keywords: []string{"exam", "examination", "auscultation", "palpation", "vitals", "blood pressure"},
		warning:  "No physical examination documented.",
	},
	{
		name:     "treatment plan",
		keywords: []string{"plan", "prescribe", "follow-up", "referral", "treatment", "recommend"},
		warning:  "No treatment plan documented.",
	},
}

// Phrases that indicate documentation or consent problems regardless of
// which checks pass.
var redFlags = map[string]string{
	"without consent":     "Possible procedure without documented consent.",
	"sans consentement":   "Possible procedure without documented consent.",
	"off the record":      "Statement marked as off the record should not appear in the chart.",
	"do not document":     "Explicit instruction to omit documentation detected.",
	"patient refused but": "Patient refusal may not have been respected.",
}

var personaRequirements = map[string][]string{
	"cardiologist":       {"blood pressure", "heart rate", "pression", "tension"},
	"pulmonologist":      {"oxygen", "saturation", "respiratory rate"},
	"pediatrician":       {"weight", "growth", "poids"},
	"psychiatrist":       {"risk", "safety", "suicid"},
	"gastroenterologist": {"diet", "bowel", "appetite"},
}

// ComplianceAgent audits the dictation for documentation gaps.
type ComplianceAgent struct{}

// NewComplianceAgent creates the compliance monitoring agent.
func NewComplianceAgent() *ComplianceAgent { return &ComplianceAgent{} }

func (a *ComplianceAgent) Name() string { return NameCompliance }

func (a *ComplianceAgent) Run(ctx context.Context, p agent.Payload) (agent.Output, agent.Confidence, error) {
	lower := strings.ToLower(p.Transcript)

	out := agent.Compliance{Compliant: true}

	for _, check := range baseChecks {
		if containsAny(lower, check.keywords) {
			out.PassedChecks = append(out.PassedChecks, check.name)
		} else {
			out.Warnings = append(out.Warnings, check.warning)
		}
	}

	for phrase, issue := range redFlags {
		if strings.Contains(lower, phrase) {
			out.Compliant = false
			out.Issues = append(out.Issues, issue)
		}
	}

	if required, ok := personaRequirements[p.Persona.Key]; ok {
		if !containsAny(lower, required) {
			out.Warnings = append(out.Warnings,
				fmt.Sprintf("Specialty documentation expected for %s is missing (e.g. %s).",
					p.Persona.Name, required[0]))
		} else {
			out.PassedChecks = append(out.PassedChecks, "specialty documentation")
		}
	}

	if len(out.Issues) > 0 {
		out.Recommendations = append(out.Recommendations,
			"Review and correct the flagged issues before signing the note.")
	}
	if len(out.Warnings) > 0 {
		out.Recommendations = append(out.Recommendations,
			"Complete the missing documentation sections.")
	}
	if len(out.Issues) == 0 && len(out.Warnings) == 0 {
		out.Recommendations = append(out.Recommendations, "Documentation meets baseline requirements.")
	}

	return out, agent.ConfidenceUnset, nil
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

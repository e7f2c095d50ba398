package clinical

import (
	"context"
	"fmt"
	"strings"

	"github.com/skillsenselab/aurascribe/agent"
)

// Base visit codes per specialty. Fees in dollars, simplified schedule.
var personaBaseCodes = map[string]agent.BillingCode{
	"generalist":         {Code: "00103", Description: "Office visit, general practice", Fee: 48},
	"cardiologist":       {Code: "09127", Description: "Cardiology consultation", Fee: 160},
	"pulmonologist":      {Code: "09160", Description: "Pulmonology consultation", Fee: 155},
	"neurologist":        {Code: "09170", Description: "Neurology consultation", Fee: 165},
	"gastroenterologist": {Code: "09150", Description: "Gastroenterology consultation", Fee: 158},
	"pediatrician":       {Code: "09135", Description: "Pediatric consultation", Fee: 120},
	"psychiatrist":       {Code: "09180", Description: "Psychiatric consultation", Fee: 170},
}

var extendedKeywords = []string{"complex", "multiple", "detailed", "prolonged", "extended", "complexe"}
var emergencyKeywords = []string{"emergency", "urgent", "stat", "acute", "urgence"}
var procedureKeywords = []string{"ecg", "spirometry", "injection", "suture", "biopsy", "infiltration"}

// BillingAgent suggests billing codes from the dictation content.
type BillingAgent struct{}

// NewBillingAgent creates the billing suggestion agent.
func NewBillingAgent() *BillingAgent { return &BillingAgent{} }

func (a *BillingAgent) Name() string { return NameBilling }

func (a *BillingAgent) Run(ctx context.Context, p agent.Payload) (agent.Output, agent.Confidence, error) {
	lower := strings.ToLower(p.Transcript)
	out := agent.Billing{}

	base, ok := personaBaseCodes[p.Persona.Key]
	if !ok {
		base = personaBaseCodes["generalist"]
	}
	base.Confidence = "high"
	base.Reason = fmt.Sprintf("Base visit code for %s.", p.Persona.Name)
	out.SuggestedCodes = append(out.SuggestedCodes, base)

	if kw := firstMatch(lower, extendedKeywords); kw != "" {
		out.SuggestedCodes = append(out.SuggestedCodes, agent.BillingCode{
			Code:        "15186",
			Description: "Complex or prolonged visit supplement",
			Fee:         35,
			Confidence:  "medium",
			Reason:      fmt.Sprintf("Dictation mentions %q.", kw),
		})
	}
	if kw := firstMatch(lower, emergencyKeywords); kw != "" {
		out.SuggestedCodes = append(out.SuggestedCodes, agent.BillingCode{
			Code:        "19929",
			Description: "Urgent assessment supplement",
			Fee:         42,
			Confidence:  "medium",
			Reason:      fmt.Sprintf("Dictation mentions %q.", kw),
		})
	}
	if kw := firstMatch(lower, procedureKeywords); kw != "" {
		out.SuggestedCodes = append(out.SuggestedCodes, agent.BillingCode{
			Code:        "00950",
			Description: "In-office procedure",
			Fee:         55,
			Confidence:  "low",
			Reason:      fmt.Sprintf("Possible procedure: %q.", kw),
		})
	}

	for _, c := range out.SuggestedCodes {
		out.TotalEstimate += c.Fee
	}
	out.Advice = fmt.Sprintf("%d code(s) suggested for an estimated total of %d$. Verify against the act performed before claiming.",
		len(out.SuggestedCodes), out.TotalEstimate)

	confidence := agent.ConfidenceMedium
	if len(out.SuggestedCodes) == 1 {
		confidence = agent.ConfidenceLow
	}
	return out, confidence, nil
}

package clinical

import (
	"context"
	"fmt"
	"strings"

	"github.com/skillsenselab/aurascribe/agent"
)

var followUpKeywords = []string{"follow-up", "follow up", "revoir", "recontrol", "come back", "return in", "suivi"}
var testKeywords = []string{"blood test", "lab", "x-ray", "radiograph", "ecg", "scan", "mri", "echo", "prise de sang", "bilan"}
var medicationKeywords = []string{"prescribe", "prescription", "medication", "renew", "refill", "ordonnance"}
var referralKeywords = []string{"refer", "referral", "consult", "specialist", "référer"}

var personaFollowUp = map[string]string{
	"cardiologist":       "Schedule cardiology follow-up with repeat ECG.",
	"pulmonologist":      "Schedule pulmonology follow-up with spirometry.",
	"neurologist":        "Schedule neurology follow-up to reassess symptoms.",
	"gastroenterologist": "Schedule GI follow-up to review response to treatment.",
	"pediatrician":       "Schedule pediatric follow-up with growth check.",
	"psychiatrist":       "Schedule psychiatric follow-up to reassess mental status.",
}

// TaskAgent extracts actionable tasks and reminders from the dictation.
type TaskAgent struct{}

// NewTaskAgent creates the task management agent.
func NewTaskAgent() *TaskAgent { return &TaskAgent{} }

func (a *TaskAgent) Name() string { return NameTasks }

func (a *TaskAgent) Run(ctx context.Context, p agent.Payload) (agent.Output, agent.Confidence, error) {
	lower := strings.ToLower(p.Transcript)
	out := agent.Tasks{}

	if kw := firstMatch(lower, followUpKeywords); kw != "" {
		desc := "Schedule follow-up appointment."
		if d, ok := personaFollowUp[p.Persona.Key]; ok {
			desc = d
		}
		out.Tasks = append(out.Tasks, agent.Task{
			Type:        "follow_up",
			Description: desc,
			Priority:    "medium",
			Reason:      fmt.Sprintf("Dictation mentions %q.", kw),
		})
	}

	if kw := firstMatch(lower, testKeywords); kw != "" {
		out.Tasks = append(out.Tasks, agent.Task{
			Type:        "diagnostic_test",
			Description: "Order the diagnostic tests discussed during the visit.",
			Priority:    "high",
			Reason:      fmt.Sprintf("Dictation mentions %q.", kw),
		})
		out.Reminders = append(out.Reminders, agent.Task{
			Type:        "results_review",
			Description: "Review test results when available and notify the patient.",
			Priority:    "medium",
			Reason:      "Ordered tests require a results review.",
		})
	}

	if kw := firstMatch(lower, medicationKeywords); kw != "" {
		out.Tasks = append(out.Tasks, agent.Task{
			Type:        "prescription",
			Description: "Finalize and transmit the prescription.",
			Priority:    "high",
			Reason:      fmt.Sprintf("Dictation mentions %q.", kw),
		})
	}

	if kw := firstMatch(lower, referralKeywords); kw != "" {
		out.Tasks = append(out.Tasks, agent.Task{
			Type:        "referral",
			Description: "Send the referral request to the specialist.",
			Priority:    "medium",
			Reason:      fmt.Sprintf("Dictation mentions %q.", kw),
		})
	}

	confidence := agent.ConfidenceLow
	if len(out.Tasks) > 0 {
		confidence = agent.ConfidenceMedium
	}
	return out, confidence, nil
}

func firstMatch(s string, keywords []string) string {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return k
		}
	}
	return ""
}

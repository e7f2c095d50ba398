package orchestrator

import (
	"fmt"
	"strings"

	"github.com/skillsenselab/aurascribe/agent"
)

// synthesizeSummary builds a one-paragraph summary by switching over the
// concrete output variants of the successful results, in registry order.
func synthesizeSummary(names []string, results map[string]*agent.Result) string {
	var parts []string
	failed := 0

	for _, name := range names {
		res := results[name]
		if !res.Succeeded() {
			failed++
			continue
		}
		if res.Payload == nil || res.Payload.Empty() {
			continue
		}
		switch out := res.Payload.(type) {
		case agent.Documentation:
			parts = append(parts, "a clinical note was drafted")
		case agent.Alert:
			if out.Urgent {
				parts = append(parts, fmt.Sprintf("an URGENT notifiable disease was detected (form %s, notify public health immediately)", out.FormNumber))
			} else {
				parts = append(parts, fmt.Sprintf("a notifiable disease was flagged for reporting (form %s)", out.FormNumber))
			}
		case agent.Tasks:
			parts = append(parts, fmt.Sprintf("%d follow-up item(s) were identified", len(out.Tasks)+len(out.Reminders)))
		case agent.Billing:
			parts = append(parts, fmt.Sprintf("billing was estimated at %d$ across %d code(s)", out.TotalEstimate, len(out.SuggestedCodes)))
		case agent.Prescription:
			parts = append(parts, fmt.Sprintf("%d medication and %d lab suggestion(s) were prepared", len(out.Medications), len(out.LabTests)))
		case agent.Compliance:
			if len(out.Issues) > 0 {
				parts = append(parts, fmt.Sprintf("%d compliance issue(s) require attention", len(out.Issues)))
			} else if len(out.Warnings) > 0 {
				parts = append(parts, fmt.Sprintf("%d documentation warning(s) were noted", len(out.Warnings)))
			} else {
				parts = append(parts, "documentation passed compliance checks")
			}
		default:
			parts = append(parts, fmt.Sprintf("%s produced a result", res.AgentName))
		}
	}

	if len(parts) == 0 {
		if failed == len(names) && len(names) > 0 {
			return "All agents failed; no findings were extracted from the dictation."
		}
		return "No actionable findings were extracted from the dictation."
	}

	summary := "Processing complete: " + strings.Join(parts, "; ") + "."
	if failed > 0 {
		summary += fmt.Sprintf(" %d agent(s) did not complete.", failed)
	}
	return summary
}

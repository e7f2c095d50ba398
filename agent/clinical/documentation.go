package clinical

import (
	"context"
	"fmt"
	"strings"

	"github.com/skillsenselab/aurascribe/agent"
)

// bodySystem groups symptom keywords with the assessments and plans they
// suggest.
type bodySystem struct {
	symptoms    []string
	assessments []string
	plans       []string
}

var bodySystems = map[string]bodySystem{
	"cardiovascular": {
		symptoms:    []string{"chest pain", "palpitations", "dyspnea", "edema", "syncope"},
		assessments: []string{"Cardiac exam", "ECG", "Cardiac enzymes", "Echocardiogram"},
		plans:       []string{"Cardiac monitoring", "Medication adjustment", "Cardiology referral"},
	},
	"respiratory": {
		symptoms:    []string{"cough", "dyspnea", "wheezing", "chest tightness", "sputum"},
		assessments: []string{"Lung exam", "Chest X-ray", "PFTs", "O2 saturation"},
		plans:       []string{"Bronchodilators", "Antibiotics if indicated", "Pulmonary rehab"},
	},
	"gastrointestinal": {
		symptoms:    []string{"abdominal pain", "nausea", "vomiting", "diarrhea", "constipation"},
		assessments: []string{"Abdominal exam", "Labs", "Imaging", "Endoscopy if needed"},
		plans:       []string{"Diet modification", "Medications", "GI follow-up"},
	},
	"neurological": {
		symptoms:    []string{"headache", "dizziness", "weakness", "numbness", "seizures"},
		assessments: []string{"Neuro exam", "Imaging", "EEG", "Lumbar puncture"},
		plans:       []string{"Neurology consult", "Medications", "Rehab therapy"},
	},
	"psychiatric": {
		symptoms:    []string{"anxiety", "depression", "insomnia", "mood changes", "suicidal thoughts"},
		assessments: []string{"Mental status exam", "PHQ-9", "GAD-7", "Risk assessment"},
		plans:       []string{"Therapy referral", "Medications", "Safety planning"},
	},
}

// DocumentationAgent generates a SOAP note from detected symptoms.
type DocumentationAgent struct{}

// NewDocumentationAgent creates the clinical documentation agent.
func NewDocumentationAgent() *DocumentationAgent { return &DocumentationAgent{} }

func (a *DocumentationAgent) Name() string { return NameDocumentation }

func (a *DocumentationAgent) Run(ctx context.Context, p agent.Payload) (agent.Output, agent.Confidence, error) {
	transcript := strings.TrimSpace(p.Transcript)
	if len(transcript) < 20 {
		doc := agent.Documentation{
			SOAP: agent.SOAPNote{
				Subjective: "Transcript too short for meaningful documentation.",
				Objective:  "Insufficient clinical data.",
				Assessment: "Cannot generate assessment without adequate clinical information.",
				Plan:       "Please provide complete consultation transcript.",
			},
		}
		return doc, agent.ConfidenceLow, nil
	}

	lower := strings.ToLower(transcript)
	var symptoms []string
	var systems []string
	for name, sys := range bodySystems {
		matched := false
		for _, symptom := range sys.symptoms {
			if strings.Contains(lower, symptom) {
				symptoms = append(symptoms, symptom)
				matched = true
			}
		}
		if matched {
			systems = append(systems, name)
		}
	}

	soap := agent.SOAPNote{
		Subjective: a.subjective(transcript, symptoms),
		Objective:  a.objective(symptoms, systems),
		Assessment: a.assessment(systems, symptoms, p),
		Plan:       a.plan(systems, p),
	}

	doc := agent.Documentation{
		SOAP:               soap,
		PatientExplanation: a.patientExplanation(symptoms),
		SystemsInvolved:    systems,
		SymptomsDetected:   symptoms,
		Formatted: fmt.Sprintf("SOAP NOTE\n\nSUBJECTIVE:\n%s\n\nOBJECTIVE:\n%s\n\nASSESSMENT:\n%s\n\nPLAN:\n%s",
			soap.Subjective, soap.Objective, soap.Assessment, soap.Plan),
	}

	confidence := agent.ConfidenceLow
	if len(symptoms) > 0 {
		confidence = agent.ConfidenceMedium
	}
	return doc, confidence, nil
}

func (a *DocumentationAgent) subjective(transcript string, symptoms []string) string {
	var b strings.Builder
	b.WriteString("PATIENT REPORT:\n")
	b.WriteString(transcript)
	if len(symptoms) > 0 {
		b.WriteString("\n\nReported symptoms: ")
		b.WriteString(strings.Join(symptoms, ", "))
	}
	return b.String()
}

func (a *DocumentationAgent) objective(symptoms, systems []string) string {
	if len(systems) == 0 {
		return "No system-specific findings extracted from dictation."
	}
	var parts []string
	for _, name := range systems {
		sys := bodySystems[name]
		parts = append(parts, fmt.Sprintf("%s: recommended assessments include %s",
			name, strings.Join(sys.assessments[:3], ", ")))
	}
	return strings.Join(parts, "\n")
}

func (a *DocumentationAgent) assessment(systems, symptoms []string, p agent.Payload) string {
	var b strings.Builder
	if len(systems) == 0 {
		b.WriteString("No acute findings identified from the dictation.")
	} else {
		fmt.Fprintf(&b, "Systems involved: %s. Symptoms: %s.",
			strings.Join(systems, ", "), strings.Join(symptoms, ", "))
	}
	if len(p.Persona.DiagnosticFocus) > 0 {
		fmt.Fprintf(&b, "\n%s focus: %s.", p.Persona.Name,
			strings.Join(p.Persona.DiagnosticFocus[:min(2, len(p.Persona.DiagnosticFocus))], ", "))
	}
	return b.String()
}

func (a *DocumentationAgent) plan(systems []string, p agent.Payload) string {
	var parts []string
	for _, name := range systems {
		parts = append(parts, bodySystems[name].plans...)
	}
	if len(parts) == 0 {
		parts = append(parts, "Routine follow-up as clinically indicated.")
	}
	if len(p.Persona.TreatmentStyle) > 0 {
		parts = append(parts, fmt.Sprintf("Approach per %s: %s", p.Persona.Name,
			strings.Join(p.Persona.TreatmentStyle[:min(2, len(p.Persona.TreatmentStyle))], ", ")))
	}
	return strings.Join(parts, "; ")
}

func (a *DocumentationAgent) patientExplanation(symptoms []string) string {
	if len(symptoms) == 0 {
		return "Your visit was documented. Follow your doctor's instructions."
	}
	return fmt.Sprintf("We discussed: %s. Follow the treatment plan and return if symptoms worsen.",
		strings.Join(symptoms, ", "))
}

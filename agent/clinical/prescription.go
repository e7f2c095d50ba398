package clinical

import (
	"context"
	"strings"

	"github.com/skillsenselab/aurascribe/agent"
)

type prescriptionHint struct {
	keywords []string
	meds     []string
	labs     []string
}

var personaPrescriptions = map[string][]prescriptionHint{
	"cardiologist": {
		{
			keywords: []string{"hypertension", "blood pressure", "tension"},
			meds:     []string{"Amlodipine 5 mg daily", "Perindopril 4 mg daily"},
			labs:     []string{"Electrolytes", "Creatinine", "Lipid panel"},
		},
		{
			keywords: []string{"chest pain", "angina", "angine"},
			meds:     []string{"ASA 80 mg daily", "Nitroglycerin SL PRN"},
			labs:     []string{"Troponin", "ECG", "Lipid panel"},
		},
	},
	"pulmonologist": {
		{
			keywords: []string{"asthma", "wheezing", "asthme"},
			meds:     []string{"Salbutamol inhaler PRN", "Fluticasone inhaler BID"},
			labs:     []string{"Spirometry", "Chest X-ray"},
		},
		{
			keywords: []string{"pneumonia", "infection", "pneumonie"},
			meds:     []string{"Amoxicillin 500 mg TID x7 days"},
			labs:     []string{"Chest X-ray", "CBC", "CRP"},
		},
	},
	"gastroenterologist": {
		{
			keywords: []string{"reflux", "heartburn", "brûlure"},
			meds:     []string{"Pantoprazole 40 mg daily"},
			labs:     []string{"H. pylori test"},
		},
	},
	"psychiatrist": {
		{
			keywords: []string{"depression", "dépression", "mood"},
			meds:     []string{"Sertraline 50 mg daily"},
			labs:     []string{"TSH", "CBC"},
		},
		{
			keywords: []string{"anxiety", "anxiété"},
			meds:     []string{"Escitalopram 10 mg daily"},
			labs:     []string{"TSH"},
		},
	},
	"generalist": {
		{
			keywords: []string{"infection", "fever", "fièvre"},
			meds:     []string{"Acetaminophen 500 mg QID PRN"},
			labs:     []string{"CBC", "CRP"},
		},
		{
			keywords: []string{"diabetes", "diabète", "glycemia"},
			meds:     []string{"Metformin 500 mg BID"},
			labs:     []string{"HbA1c", "Fasting glucose", "Creatinine"},
		},
	},
}

var labOnlyKeywords = map[string][]string{
	"fatigue":       {"CBC", "TSH", "Ferritin"},
	"prise de sang": {"CBC", "Basic metabolic panel"},
	"blood test":    {"CBC", "Basic metabolic panel"},
	"cholesterol":   {"Lipid panel"},
}

// PrescriptionAgent suggests medications and lab orders from the dictation.
type PrescriptionAgent struct{}

// NewPrescriptionAgent creates the prescription and lab suggestion agent.
func NewPrescriptionAgent() *PrescriptionAgent { return &PrescriptionAgent{} }

func (a *PrescriptionAgent) Name() string { return NamePrescription }

func (a *PrescriptionAgent) Run(ctx context.Context, p agent.Payload) (agent.Output, agent.Confidence, error) {
	lower := strings.ToLower(p.Transcript)
	out := agent.Prescription{}

	hints, ok := personaPrescriptions[p.Persona.Key]
	if !ok {
		hints = personaPrescriptions["generalist"]
	}
	for _, h := range hints {
		if firstMatch(lower, h.keywords) != "" {
			out.Medications = appendUnique(out.Medications, h.meds...)
			out.LabTests = appendUnique(out.LabTests, h.labs...)
		}
	}

	for kw, labs := range labOnlyKeywords {
		if strings.Contains(lower, kw) {
			out.LabTests = appendUnique(out.LabTests, labs...)
		}
	}

	if out.Empty() {
		out.Note = "No prescription or lab suggestion derived from this dictation."
		return out, agent.ConfidenceLow, nil
	}
	out.Note = "Suggestions only. Confirm dosing and interactions before prescribing."
	return out, agent.ConfidenceMedium, nil
}

func appendUnique(dst []string, items ...string) []string {
	for _, item := range items {
		found := false
		for _, existing := range dst {
			if existing == item {
				found = true
				break
			}
		}
		if !found {
			dst = append(dst, item)
		}
	}
	return dst
}

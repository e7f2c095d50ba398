package agent

// Kind tags an output variant.
type Kind string

const (
	KindDocumentation Kind = "documentation"
	KindAlert         Kind = "alert"
	KindBilling       Kind = "billing"
	KindTasks         Kind = "tasks"
	KindPrescription  Kind = "prescription"
	KindCompliance    Kind = "compliance"
)

// Output is one agent result payload. The set of implementations is
// closed; summary synthesis switches over the concrete types.
type Output interface {
	// Kind returns the variant tag.
	Kind() Kind
	// Empty reports whether the agent found nothing actionable.
	Empty() bool
}

// SOAPNote is a structured clinical note.
type SOAPNote struct {
	Subjective string `json:"subjective"`
	Objective  string `json:"objective"`
	Assessment string `json:"assessment"`
	Plan       string `json:"plan"`
}

// Documentation is a generated clinical note with patient-facing text.
type Documentation struct {
	SOAP               SOAPNote `json:"soap_note"`
	PatientExplanation string   `json:"patient_explanation,omitempty"`
	SystemsInvolved    []string `json:"systems_involved,omitempty"`
	SymptomsDetected   []string `json:"symptoms_detected,omitempty"`
	Formatted          string   `json:"formatted_content,omitempty"`
}

func (Documentation) Kind() Kind { return KindDocumentation }
func (d Documentation) Empty() bool {
	return len(d.SymptomsDetected) == 0 && d.SOAP == SOAPNote{}
}

// DiseaseMatch is one detected reportable disease.
type DiseaseMatch struct {
	Keyword   string `json:"keyword"`
	NameFR    string `json:"name_fr"`
	NameEN    string `json:"name_en"`
	Category  string `json:"category,omitempty"`
	Urgency   string `json:"urgency"`
	Timeframe string `json:"timeframe"`
}

// Alert is a reportable-disease detection result.
type Alert struct {
	Matches    []DiseaseMatch `json:"matches,omitempty"`
	Urgent     bool           `json:"urgent"`
	FormNumber string         `json:"form_number,omitempty"`
	Note       string         `json:"note,omitempty"`
}

func (Alert) Kind() Kind    { return KindAlert }
func (a Alert) Empty() bool { return len(a.Matches) == 0 }

// BillingCode is one suggested billing code.
type BillingCode struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	Fee         int    `json:"fee"`
	Confidence  string `json:"confidence"`
	Reason      string `json:"reason"`
}

// Billing is a billing-code suggestion result.
type Billing struct {
	SuggestedCodes []BillingCode `json:"suggested_codes,omitempty"`
	TotalEstimate  int           `json:"total_estimate"`
	Advice         string        `json:"billing_advice,omitempty"`
}

func (Billing) Kind() Kind    { return KindBilling }
func (b Billing) Empty() bool { return len(b.SuggestedCodes) == 0 }

// Task is one extracted follow-up item.
type Task struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Reason      string `json:"reason"`
}

// Tasks is a follow-up extraction result.
type Tasks struct {
	Tasks     []Task `json:"tasks,omitempty"`
	Reminders []Task `json:"reminders,omitempty"`
}

func (Tasks) Kind() Kind    { return KindTasks }
func (t Tasks) Empty() bool { return len(t.Tasks) == 0 && len(t.Reminders) == 0 }

// Prescription is a medication and lab-order suggestion result.
type Prescription struct {
	Medications []string `json:"medications,omitempty"`
	LabTests    []string `json:"lab_tests,omitempty"`
	Note        string   `json:"note,omitempty"`
}

func (Prescription) Kind() Kind { return KindPrescription }
func (p Prescription) Empty() bool {
	return len(p.Medications) == 0 && len(p.LabTests) == 0
}

// Compliance is a documentation compliance check result.
type Compliance struct {
	Compliant       bool     `json:"compliant"`
	Issues          []string `json:"issues,omitempty"`
	Warnings        []string `json:"warnings,omitempty"`
	PassedChecks    []string `json:"passed_checks,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
}

func (Compliance) Kind() Kind { return KindCompliance }
func (c Compliance) Empty() bool {
	return len(c.Issues) == 0 && len(c.Warnings) == 0 && len(c.PassedChecks) == 0
}

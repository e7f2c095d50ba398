package clinical

import (
	"context"
	"strings"
	"testing"

	"github.com/skillsenselab/aurascribe/agent"
	"github.com/skillsenselab/aurascribe/logger"
	"github.com/skillsenselab/aurascribe/persona"
)

func payload(transcript, personaKey string) agent.Payload {
	return agent.Payload{
		Transcript: transcript,
		Persona:    persona.Lookup(personaKey),
	}
}

func TestRegisterLoadsAllAgents(t *testing.T) {
	reg := agent.NewRegistry(logger.NewDefault("test"))
	Register(reg)

	names := reg.Names()
	want := []string{
		NameBilling, NameDocumentation, NameCompliance,
		NameMADO, NamePrescription, NameTasks,
	}
	if len(names) != len(want) {
		t.Fatalf("loaded %d agents, want %d: %v", len(names), len(want), names)
	}
	for _, name := range want {
		if _, ok := reg.Get(name); !ok {
			t.Errorf("agent %s not loaded", name)
		}
	}
	if failed := reg.FailedNames(); len(failed) != 0 {
		t.Errorf("unexpected failed agents: %v", failed)
	}
}

func TestDocumentationAgentDetectsSymptoms(t *testing.T) {
	a := NewDocumentationAgent()
	out, conf, err := a.Run(context.Background(), payload(
		"Patient presents with chest pain and palpitations since yesterday, also reports a dry cough.",
		"cardiologist"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	doc, ok := out.(agent.Documentation)
	if !ok {
		t.Fatalf("output type %T, want Documentation", out)
	}
	if conf != agent.ConfidenceMedium {
		t.Errorf("confidence = %q, want medium", conf)
	}
	if doc.Empty() {
		t.Error("documentation should not be empty when symptoms match")
	}
	hasCardio, hasResp := false, false
	for _, s := range doc.SystemsInvolved {
		switch s {
		case "cardiovascular":
			hasCardio = true
		case "respiratory":
			hasResp = true
		}
	}
	if !hasCardio || !hasResp {
		t.Errorf("systems = %v, want cardiovascular and respiratory", doc.SystemsInvolved)
	}
	if !strings.Contains(doc.SOAP.Subjective, "chest pain") {
		t.Errorf("subjective missing symptom: %q", doc.SOAP.Subjective)
	}
	if doc.Formatted == "" {
		t.Error("formatted note should not be empty")
	}
}

func TestDocumentationAgentShortTranscript(t *testing.T) {
	a := NewDocumentationAgent()
	out, conf, err := a.Run(context.Background(), payload("too short", "generalist"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if conf != agent.ConfidenceLow {
		t.Errorf("confidence = %q, want low", conf)
	}
	doc := out.(agent.Documentation)
	if !strings.Contains(doc.SOAP.Plan, "complete consultation transcript") {
		t.Errorf("plan = %q, want request for a complete transcript", doc.SOAP.Plan)
	}
}

func TestComplianceAgentFlagsMissingSections(t *testing.T) {
	a := NewComplianceAgent()
	out, conf, err := a.Run(context.Background(), payload("random words with no structure", "generalist"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if conf != agent.ConfidenceUnset {
		t.Errorf("confidence = %q, want unset", conf)
	}
	c := out.(agent.Compliance)
	if !c.Compliant {
		t.Error("warnings alone should not make the note non-compliant")
	}
	if len(c.Warnings) != len(baseChecks) {
		t.Errorf("warnings = %v, want one per missing base check", c.Warnings)
	}
}

func TestComplianceAgentRedFlag(t *testing.T) {
	a := NewComplianceAgent()
	out, _, err := a.Run(context.Background(), payload(
		"Patient examined, plan discussed, procedure performed without consent of the patient.",
		"generalist"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	c := out.(agent.Compliance)
	if c.Compliant {
		t.Error("red flag should mark the note non-compliant")
	}
	if len(c.Issues) == 0 {
		t.Error("expected at least one issue")
	}
}

func TestComplianceAgentPersonaRequirement(t *testing.T) {
	a := NewComplianceAgent()
	out, _, err := a.Run(context.Background(), payload(
		"Patient presents for cardiac review. Exam normal. Plan: continue treatment.",
		"cardiologist"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	c := out.(agent.Compliance)
	found := false
	for _, w := range c.Warnings {
		if strings.Contains(w, "Cardiologist") {
			found = true
		}
	}
	if !found {
		t.Errorf("warnings = %v, want missing specialty documentation warning", c.Warnings)
	}
}

func TestTaskAgentExtractsTasks(t *testing.T) {
	a := NewTaskAgent()
	out, conf, err := a.Run(context.Background(), payload(
		"Order a blood test today and schedule a follow-up in two weeks. I will prescribe amoxicillin.",
		"cardiologist"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if conf != agent.ConfidenceMedium {
		t.Errorf("confidence = %q, want medium", conf)
	}
	tasks := out.(agent.Tasks)
	types := map[string]bool{}
	for _, task := range tasks.Tasks {
		types[task.Type] = true
	}
	for _, want := range []string{"follow_up", "diagnostic_test", "prescription"} {
		if !types[want] {
			t.Errorf("missing task type %s, got %v", want, tasks.Tasks)
		}
	}
	if len(tasks.Reminders) == 0 {
		t.Error("ordered tests should add a results review reminder")
	}
	// persona template
	if !strings.Contains(tasks.Tasks[0].Description, "cardiology") {
		t.Errorf("follow-up description = %q, want cardiology template", tasks.Tasks[0].Description)
	}
}

func TestTaskAgentNoMatches(t *testing.T) {
	a := NewTaskAgent()
	out, conf, err := a.Run(context.Background(), payload("Nothing actionable here.", "generalist"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if conf != agent.ConfidenceLow {
		t.Errorf("confidence = %q, want low", conf)
	}
	if !out.Empty() {
		t.Error("output should be empty")
	}
}

func TestMADOAgentUrgentDisease(t *testing.T) {
	a := NewMADOAgent()
	out, conf, err := a.Run(context.Background(), payload(
		"Suspicion de botulisme suite à une conserve artisanale.", "generalist"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	alert := out.(agent.Alert)
	if !alert.Urgent {
		t.Error("botulism should be flagged urgent")
	}
	if conf != agent.ConfidenceHigh {
		t.Errorf("confidence = %q, want high", conf)
	}
	if alert.FormNumber != "AS-770" {
		t.Errorf("form = %q, want AS-770", alert.FormNumber)
	}
	if len(alert.Matches) != 1 || alert.Matches[0].NameEN != "Botulism" {
		t.Errorf("matches = %v, want single botulism match", alert.Matches)
	}
}

func TestMADOAgent48hDisease(t *testing.T) {
	a := NewMADOAgent()
	out, conf, err := a.Run(context.Background(), payload(
		"Radiographie compatible avec une tuberculose active.", "pulmonologist"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	alert := out.(agent.Alert)
	if alert.Urgent {
		t.Error("tuberculosis is a 48h report, not urgent")
	}
	if conf != agent.ConfidenceMedium {
		t.Errorf("confidence = %q, want medium", conf)
	}
	if !strings.Contains(alert.Note, "48 hours") {
		t.Errorf("note = %q, want 48 hour deadline", alert.Note)
	}
}

func TestMADOAgentNoDisease(t *testing.T) {
	a := NewMADOAgent()
	out, conf, err := a.Run(context.Background(), payload(
		"Routine visit, patient doing well.", "generalist"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !out.Empty() {
		t.Error("no matches expected")
	}
	if conf != agent.ConfidenceLow {
		t.Errorf("confidence = %q, want low", conf)
	}
}

func TestBillingAgentBaseAndSupplements(t *testing.T) {
	a := NewBillingAgent()
	out, conf, err := a.Run(context.Background(), payload(
		"Complex case seen urgently, ECG performed in office.", "cardiologist"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	billing := out.(agent.Billing)
	if len(billing.SuggestedCodes) != 4 {
		t.Fatalf("codes = %d, want base + 3 supplements: %v", len(billing.SuggestedCodes), billing.SuggestedCodes)
	}
	if billing.SuggestedCodes[0].Code != "09127" {
		t.Errorf("base code = %q, want cardiology consultation", billing.SuggestedCodes[0].Code)
	}
	wantTotal := 160 + 35 + 42 + 55
	if billing.TotalEstimate != wantTotal {
		t.Errorf("total = %d, want %d", billing.TotalEstimate, wantTotal)
	}
	if conf != agent.ConfidenceMedium {
		t.Errorf("confidence = %q, want medium", conf)
	}
}

func TestBillingAgentBaseOnly(t *testing.T) {
	a := NewBillingAgent()
	out, conf, err := a.Run(context.Background(), payload("Routine visit.", "generalist"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	billing := out.(agent.Billing)
	if len(billing.SuggestedCodes) != 1 || billing.SuggestedCodes[0].Code != "00103" {
		t.Errorf("codes = %v, want single general practice visit", billing.SuggestedCodes)
	}
	if conf != agent.ConfidenceLow {
		t.Errorf("confidence = %q, want low", conf)
	}
}

func TestPrescriptionAgentPersonaHints(t *testing.T) {
	a := NewPrescriptionAgent()
	out, conf, err := a.Run(context.Background(), payload(
		"Patient with poorly controlled hypertension, blood pressure 160 over 95.", "cardiologist"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	rx := out.(agent.Prescription)
	if len(rx.Medications) == 0 {
		t.Fatal("expected medication suggestions")
	}
	if rx.Medications[0] != "Amlodipine 5 mg daily" {
		t.Errorf("medications = %v, want amlodipine first", rx.Medications)
	}
	if conf != agent.ConfidenceMedium {
		t.Errorf("confidence = %q, want medium", conf)
	}
}

func TestPrescriptionAgentDeduplicatesLabs(t *testing.T) {
	a := NewPrescriptionAgent()
	out, _, err := a.Run(context.Background(), payload(
		"Fatigue importante, on demande une prise de sang complète.", "generalist"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	rx := out.(agent.Prescription)
	seen := map[string]int{}
	for _, lab := range rx.LabTests {
		seen[lab]++
	}
	if seen["CBC"] != 1 {
		t.Errorf("CBC listed %d times, want 1: %v", seen["CBC"], rx.LabTests)
	}
}

func TestPrescriptionAgentEmpty(t *testing.T) {
	a := NewPrescriptionAgent()
	out, conf, err := a.Run(context.Background(), payload("Administrative visit only.", "generalist"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !out.Empty() {
		t.Errorf("output should be empty: %+v", out)
	}
	if conf != agent.ConfidenceLow {
		t.Errorf("confidence = %q, want low", conf)
	}
}

package clinical

import "github.com/skillsenselab/aurascribe/agent"

// Agent names as registered at startup.
const (
	NameDocumentation = "ClinicalDocumentationAgent"
	NameCompliance    = "ComplianceMonitorAgent"
	NameTasks         = "TaskManagerAgent"
	NameMADO          = "MADOReportingAgent"
	NameBilling       = "RAMQBillingAgent"
	NamePrescription  = "PrescriptionLabAgent"
)

// Register installs every built-in clinical agent into the registry.
func Register(reg *agent.Registry) {
	reg.Register(NameDocumentation, func() (agent.Agent, error) { return NewDocumentationAgent(), nil })
	reg.Register(NameCompliance, func() (agent.Agent, error) { return NewComplianceAgent(), nil })
	reg.Register(NameTasks, func() (agent.Agent, error) { return NewTaskAgent(), nil })
	reg.Register(NameMADO, func() (agent.Agent, error) { return NewMADOAgent(), nil })
	reg.Register(NameBilling, func() (agent.Agent, error) { return NewBillingAgent(), nil })
	reg.Register(NamePrescription, func() (agent.Agent, error) { return NewPrescriptionAgent(), nil })
}

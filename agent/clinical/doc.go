// Package clinical implements the built-in specialist agents. Each agent
// is a deterministic keyword and phrase matcher over the transcript,
// biased by the selected persona. None of them perform network I/O.
//
// Register installs the full set into a registry:
//
//	reg := agent.NewRegistry(log)
//	clinical.Register(reg)
package clinical

package model

import "time"

// AuditStage identifies which pipeline stage produced an audit entry.
type AuditStage string

// Pipeline stages, in processing order.
const (
	StageRecall AuditStage = "recall"
	StageApply  AuditStage = "apply"
	StageDecide AuditStage = "decide"
	StageLearn  AuditStage = "learn"
)

// AuditStep is one timestamped entry in an invoice's audit trail.
type AuditStep struct {
	Step      AuditStage `json:"step"`
	Timestamp time.Time  `json:"timestamp"`
	Details   string     `json:"details"`
}

// ProcessedInvoice is the per-invoice output record: built once per pipeline
// pass, never mutated afterward.
type ProcessedInvoice struct {
	NormalizedInvoice   Invoice     `json:"normalizedInvoice"`
	ProposedCorrections []string    `json:"proposedCorrections"`
	RequiresHumanReview bool        `json:"requiresHumanReview"`
	Reasoning           string      `json:"reasoning"`
	ConfidenceScore     float64     `json:"confidenceScore"`
	MemoryUpdates       []string    `json:"memoryUpdates"`
	AuditTrail          []AuditStep `json:"auditTrail"`
}

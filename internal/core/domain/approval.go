package domain

import "time"

// ApprovalAction is the decision a reviewer recorded.
type ApprovalAction string

const (
	ActionApproved ApprovalAction = "APPROVED"
	ActionRejected ApprovalAction = "REJECTED"
)

// ApprovalHistoryEntry is the append-only audit record of a single reviewer
// action. Entries are created exactly once per approve/reject call and are
// never updated or deleted.
type ApprovalHistoryEntry struct {
	EntryID       string         `json:"entryID"` // Primary Key (UUID)
	SuggestionID  string         `json:"suggestionID"`
	ApproverID    string         `json:"approverID"`
	Action        ApprovalAction `json:"action"`
	Observation   string         `json:"observation"` // required, non-empty
	ApprovalLevel int            `json:"approvalLevel"` // level at time of action
	ActedAt       time.Time      `json:"actedAt"`
}

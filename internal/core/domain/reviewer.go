package domain

import "time"

// ReviewerRole distinguishes ordinary approvers, bound by their personal
// approval ceiling, from unrestricted ones.
type ReviewerRole string

const (
	RoleOrdinary     ReviewerRole = "ORDINARY"
	RoleUnrestricted ReviewerRole = "UNRESTRICTED"
)

// Reviewer is a user who may request or review price suggestions.
type Reviewer struct {
	ReviewerID string       `json:"reviewerID"` // Primary Key (UUID)
	Name       string       `json:"name"`
	Email      string       `json:"email"`
	Role       ReviewerRole `json:"role"`
	// ApprovalCeilingCents is the maximum margin (minor currency units) this
	// reviewer may approve unilaterally. Ignored for unrestricted reviewers.
	ApprovalCeilingCents int64 `json:"approvalCeilingCents"`
	PasswordHash         string `json:"-"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

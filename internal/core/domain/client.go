package domain

// Client is a purchasing customer attached to price suggestions.
type Client struct {
	ClientID string `json:"clientID"` // Primary Key (UUID)
	Name     string `json:"name"`
	Code     string `json:"code"`
	Region   string `json:"region"`
	IsActive bool   `json:"isActive"`
	AuditFields
}

package domain

// PaymentMethod is a way clients pay; fee percentages are keyed on it.
type PaymentMethod struct {
	PaymentMethodID string `json:"paymentMethodID"` // Primary Key (UUID)
	Name            string `json:"name"`
	IsActive        bool   `json:"isActive"`
	AuditFields
}

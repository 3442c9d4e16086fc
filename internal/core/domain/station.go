package domain

// Station is a fuel station in the directory.
type Station struct {
	StationID string `json:"stationID"` // Primary Key (UUID)
	Name      string `json:"name"`
	Code      string `json:"code"`
	Region    string `json:"region"`
	IsActive  bool   `json:"isActive"`
	AuditFields
}

package models

// Tenant is the database representation of an accounting tenant.
type Tenant struct {
	TenantID        string `json:"tenantID"`
	Name            string `json:"name"`
	NextEntryNumber int64  `json:"nextEntryNumber"`
	IsActive        bool   `json:"isActive"`
	AuditFields
}

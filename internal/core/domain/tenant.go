package domain

// Tenant represents an isolated accounting environment. Every account,
// fiscal period and journal entry belongs to exactly one tenant; no data or
// identifier is ever shared across tenants.
type Tenant struct {
	TenantID string `json:"tenantID"` // Primary Key (UUID)
	Name     string `json:"name"`
	// NextEntryNumber is the per-tenant counter used to allocate sequential
	// journal entry numbers. It is incremented inside the same transaction
	// that inserts the entry, so two concurrent creates never observe the
	// same value. Failed transactions may leave a gap; numbers are never
	// reused.
	NextEntryNumber int64 `json:"nextEntryNumber"`
	IsActive        bool  `json:"isActive"`
	AuditFields
}

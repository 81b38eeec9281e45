package models

import "time"

// APIKey is the database representation of a tenant API credential.
type APIKey struct {
	KeyID      string     `json:"keyID"`
	TenantID   string     `json:"tenantID"`
	Name       string     `json:"name"`
	SecretHash string     `json:"-"`
	LastUsedAt *time.Time `json:"lastUsedAt"`
	RevokedAt  *time.Time `json:"revokedAt"`
	AuditFields
}

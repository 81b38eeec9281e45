package domain

import "time"

// APIKey represents a machine credential scoped to one tenant. Only the
// bcrypt hash of the secret is stored; the plaintext is returned once at
// creation time.
type APIKey struct {
	KeyID      string     `json:"keyID"`    // Primary Key (UUID), embedded in the presented token
	TenantID   string     `json:"tenantID"` // FK -> tenants.tenant_id (Not Null)
	Name       string     `json:"name"`
	SecretHash string     `json:"-"`
	LastUsedAt *time.Time `json:"lastUsedAt,omitempty"`
	RevokedAt  *time.Time `json:"revokedAt,omitempty"`
	AuditFields
}

// IsRevoked reports whether the key has been revoked.
func (k APIKey) IsRevoked() bool {
	return k.RevokedAt != nil
}

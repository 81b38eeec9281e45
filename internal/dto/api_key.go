package dto

import "github.com/contabix/contabix_backend/internal/core/domain"

// CreateAPIKeyRequest is the payload for issuing a tenant API key.
type CreateAPIKeyRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// CreateAPIKeyResponse carries the plaintext key exactly once, at creation.
type CreateAPIKeyResponse struct {
	KeyID string `json:"keyID"`
	Name  string `json:"name"`
	Key   string `json:"key"`
}

// APIKeyResponse is the API representation of an issued key (no secret).
type APIKeyResponse struct {
	KeyID     string `json:"keyID"`
	Name      string `json:"name"`
	Revoked   bool   `json:"revoked"`
	CreatedAt string `json:"createdAt"`
}

// ToAPIKeyResponse converts a domain APIKey to its API representation.
func ToAPIKeyResponse(k domain.APIKey) APIKeyResponse {
	return APIKeyResponse{
		KeyID:     k.KeyID,
		Name:      k.Name,
		Revoked:   k.IsRevoked(),
		CreatedAt: k.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

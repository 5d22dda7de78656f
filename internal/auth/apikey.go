package auth

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/pathways-hq/pathways/internal/config"
)

// ValidateAPIKey checks the presented key against the configured key
// set. Keys are stored as sha256 hex digests so a leaked config file
// does not leak credentials.
func ValidateAPIKey(cfg *config.Configuration, apiKey string) (userID string, valid bool) {
	if apiKey == "" || len(cfg.Auth.APIKey.Keys) == 0 {
		return "", false
	}

	sum := sha256.Sum256([]byte(apiKey))
	digest := hex.EncodeToString(sum[:])

	details, ok := cfg.Auth.APIKey.Keys[digest]
	if !ok {
		return "", false
	}
	return details.UserID, true
}

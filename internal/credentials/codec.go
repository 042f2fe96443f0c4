package credentials

import (
	"encoding/json"

	"github.com/RUSHi-VAiRALE/ecombackend/internal/models"
)

func encodeToken(token *models.CredentialToken) (string, error) {
	raw, err := json.Marshal(token)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func decodeToken(raw string) (*models.CredentialToken, error) {
	var token models.CredentialToken
	if err := json.Unmarshal([]byte(raw), &token); err != nil {
		return nil, err
	}
	return &token, nil
}

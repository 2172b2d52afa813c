package users_repositories

import (
	"crypto/rand"
	"encoding/hex"
	"sync"

	users_models "teamboard/internal/features/users/models"
	"teamboard/internal/storage"

	"gorm.io/gorm"
)

type SecretKeyRepository struct {
	mu     sync.Mutex
	cached string
}

// GetSecretKey returns the JWT signing secret, creating one on first
// use so every instance sharing the database signs compatible tokens.
func (r *SecretKeyRepository) GetSecretKey() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cached != "" {
		return r.cached, nil
	}

	var secretKey users_models.SecretKey

	err := storage.GetDb().First(&secretKey).Error
	if err == nil {
		r.cached = secretKey.Secret
		return r.cached, nil
	}

	if err != gorm.ErrRecordNotFound {
		return "", err
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}

	secretKey = users_models.SecretKey{Secret: hex.EncodeToString(raw)}
	if err := storage.GetDb().Create(&secretKey).Error; err != nil {
		// Another instance may have created the key concurrently
		var existing users_models.SecretKey
		if fetchErr := storage.GetDb().First(&existing).Error; fetchErr == nil {
			r.cached = existing.Secret
			return r.cached, nil
		}

		return "", err
	}

	r.cached = secretKey.Secret

	return r.cached, nil
}

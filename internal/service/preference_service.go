package service

import (
	"encoding/json"

	"github.com/velobooks/velobooks-backend/internal/domain"
)

// PreferenceService handles per-workspace UI preference storage. Values are
// opaque JSON documents keyed by name (saved filters, column layouts, etc.)
type PreferenceService struct {
	prefRepo domain.PreferenceRepository
}

// NewPreferenceService creates a new PreferenceService
func NewPreferenceService(prefRepo domain.PreferenceRepository) *PreferenceService {
	return &PreferenceService{prefRepo: prefRepo}
}

// GetPreference retrieves one preference by key
func (s *PreferenceService) GetPreference(workspaceID int32, key string) (*domain.Preference, error) {
	if key == "" || len(key) > domain.MaxPreferenceKeyLength {
		return nil, domain.ErrInvalidInput
	}
	return s.prefRepo.Get(workspaceID, key)
}

// SetPreference stores a preference value, replacing any previous value
func (s *PreferenceService) SetPreference(workspaceID int32, key string, value json.RawMessage) (*domain.Preference, error) {
	if key == "" || len(key) > domain.MaxPreferenceKeyLength {
		return nil, domain.ErrInvalidInput
	}
	if !json.Valid(value) {
		return nil, domain.ErrInvalidInput
	}
	return s.prefRepo.Set(workspaceID, key, value)
}

// DeletePreference removes a preference
func (s *PreferenceService) DeletePreference(workspaceID int32, key string) error {
	if key == "" || len(key) > domain.MaxPreferenceKeyLength {
		return domain.ErrInvalidInput
	}
	return s.prefRepo.Delete(workspaceID, key)
}

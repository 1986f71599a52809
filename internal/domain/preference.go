package domain

import (
	"encoding/json"
	"time"
)

// Preference is a per-workspace key/value slot the client uses to persist
// UI state such as date-filter selections. The value is opaque JSON.
type Preference struct {
	WorkspaceID int32           `json:"workspaceId"`
	Key         string          `json:"key"`
	Value       json.RawMessage `json:"value"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

const MaxPreferenceKeyLength = 100

type PreferenceRepository interface {
	Get(workspaceID int32, key string) (*Preference, error)
	Set(workspaceID int32, key string, value json.RawMessage) (*Preference, error)
	Delete(workspaceID int32, key string) error
}

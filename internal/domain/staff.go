package domain

import "time"

// StaffPing is a recorded staff location check-in
type StaffPing struct {
	ID          int32     `json:"id"`
	WorkspaceID int32     `json:"workspaceId"`
	StaffName   string    `json:"staffName"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	RecordedAt  time.Time `json:"recordedAt"`
	CreatedAt   time.Time `json:"createdAt"`
}

type StaffPingRepository interface {
	Create(ping *StaffPing) (*StaffPing, error)
	GetLatestPerStaff(workspaceID int32) ([]*StaffPing, error)
	GetByStaff(workspaceID int32, staffName string, limit int32) ([]*StaffPing, error)
}

package entities

import "time"

// Model carries the persisted-entity fields shared by every resource.
// It is embedded in each entity rather than inherited.
type Model struct {
	ID        string `gorm:"primaryKey" json:"id"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// stamp sets creation timestamps. The ID is left alone so entities
// that self-register (devices) keep the id they arrived with.
func (m *Model) stamp() {
	m.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	m.UpdatedAt = m.CreatedAt
}

// Touch refreshes the update timestamp.
func (m *Model) Touch() {
	m.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
}

package models

import "time"

// SessionState stores the serialized value of one storage namespace for a session.
type SessionState struct {
	SessionID string     `gorm:"column:session_id;primaryKey;size:128"`
	Namespace string     `gorm:"column:namespace;primaryKey;size:64"`
	Payload   string     `gorm:"column:payload;type:text;not null"`
	ExpiresAt *time.Time `gorm:"column:expires_at"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the table created by the session_states migration.
func (SessionState) TableName() string {
	return "session_states"
}

package domain

import "time"

// AuditLog records one operator action taken through the dashboard.
type AuditLog struct {
	ID        string
	Timestamp time.Time
	Action    string
	User      string
	Details   string
}

package model

import "fmt"

// Site holds the per-service derivation settings a user has registered
// (e.g. github.com at length 16). Only settings are stored; the derived
// password itself never touches the database.
type Site struct {
	ID        int    `json:"id"`
	Key       string `json:"key"`
	Length    int    `json:"length"`
	Label     string `json:"label"`
	Notes     string `json:"notes"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// String returns the key plus the configured length.
func (s Site) String() string {
	if s.Label != "" {
		return fmt.Sprintf("%s (%s, length %d)", s.Key, s.Label, s.Length)
	}
	return fmt.Sprintf("%s (length %d)", s.Key, s.Length)
}

// AuditLogEntry records a single registry mutation.
type AuditLogEntry struct {
	ID        int    `json:"id"`
	Timestamp string `json:"timestamp"`
	Action    string `json:"action"`
	Details   string `json:"details"`
}

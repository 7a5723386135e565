// Copyright (c) 2026 Flowerpass Team
// Flowerpass - deterministic password generator
// This source code is licensed under the MIT license found in the LICENSE file.
package model

// BackupData is a container for all data to be exported for a backup.
type BackupData struct {
	// SchemaVersion helps in handling migrations during restore.
	SchemaVersion int `json:"schema_version"`

	Sites           []Site          `json:"sites"`
	AuditLogEntries []AuditLogEntry `json:"audit_log_entries"`
}

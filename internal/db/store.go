// Copyright (c) 2026 Flowerpass Team
// Flowerpass - deterministic password generator
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"github.com/xlsdg/flowerpass/internal/model"
)

// Store defines the interface for all database operations in Flowerpass.
// This allows for multiple database backends to be implemented.
type Store interface {
	// Site registry methods
	AddSite(key string, length int, label, notes string) (int, error)
	GetAllSites() ([]model.Site, error)
	GetSiteByKey(key string) (*model.Site, error)
	UpdateSiteLength(id, length int) error
	UpdateSiteLabel(id int, label string) error
	UpdateSiteNotes(id int, notes string) error
	DeleteSite(id int) error

	// Audit Log methods
	GetAllAuditLogEntries() ([]model.AuditLogEntry, error)
	LogAction(action string, details string) error

	// Backup methods
	ExportDataForBackup() (*model.BackupData, error)
	ImportDataFromBackup(backup *model.BackupData) error
}

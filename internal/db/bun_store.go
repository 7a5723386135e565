// Copyright (c) 2026 Flowerpass Team
// Flowerpass - deterministic password generator
// This source code is licensed under the MIT license found in the LICENSE file.

// This file contains the bun-backed implementation of the Store interface,
// shared by the SQLite, PostgreSQL and MySQL backends.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/xlsdg/flowerpass/fpcode"
	"github.com/xlsdg/flowerpass/internal/model"
)

// siteRecord is the bun mapping for the sites table.
type siteRecord struct {
	bun.BaseModel `bun:"table:sites"`
	ID            int    `bun:"id,pk,autoincrement"`
	Key           string `bun:"site_key"`
	Length        int    `bun:"length"`
	Label         string `bun:"label"`
	Notes         string `bun:"notes"`
	CreatedAt     string `bun:"created_at"`
	UpdatedAt     string `bun:"updated_at"`
}

// auditLogRecord is the bun mapping for the audit_log table.
type auditLogRecord struct {
	bun.BaseModel `bun:"table:audit_log"`
	ID            int    `bun:"id,pk,autoincrement"`
	Timestamp     string `bun:"timestamp"`
	Action        string `bun:"action"`
	Details       string `bun:"details"`
}

func siteRecordToModel(r siteRecord) model.Site {
	return model.Site{
		ID:        r.ID,
		Key:       r.Key,
		Length:    r.Length,
		Label:     r.Label,
		Notes:     r.Notes,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// bunStore implements Store on top of a *bun.DB. The dialect-specific store
// types embed it; dialect differences live in the SQL migrations and in
// bun's dialect layer, not here.
type bunStore struct {
	bun *bun.DB
}

// SqliteStore is the SQLite implementation of the Store interface.
type SqliteStore struct{ bunStore }

// PostgresStore is the PostgreSQL implementation of the Store interface.
type PostgresStore struct{ bunStore }

// MySQLStore is the MySQL implementation of the Store interface.
type MySQLStore struct{ bunStore }

// AddSite registers a new site. The configured length is validated against
// the algorithm's bounds before touching the database.
func (s *bunStore) AddSite(key string, length int, label, notes string) (int, error) {
	if length < fpcode.MinLength || length > fpcode.MaxLength {
		return 0, &fpcode.InvalidLengthError{Length: length}
	}
	ctx := context.Background()
	now := time.Now().Format(time.RFC3339)
	rec := &siteRecord{Key: key, Length: length, Label: label, Notes: notes, CreatedAt: now, UpdatedAt: now}
	if _, err := s.bun.NewInsert().Model(rec).Exec(ctx); err != nil {
		return 0, MapDBError(err)
	}
	_ = s.LogAction("ADD_SITE", fmt.Sprintf("site: %s (length %d)", key, length))
	return rec.ID, nil
}

// GetAllSites returns all registered sites ordered by key.
func (s *bunStore) GetAllSites() ([]model.Site, error) {
	ctx := context.Background()
	var recs []siteRecord
	if err := s.bun.NewSelect().Model(&recs).Order("site_key ASC").Scan(ctx); err != nil {
		return nil, err
	}
	sites := make([]model.Site, 0, len(recs))
	for _, r := range recs {
		sites = append(sites, siteRecordToModel(r))
	}
	return sites, nil
}

// GetSiteByKey returns the site registered for key, or nil when unknown.
func (s *bunStore) GetSiteByKey(key string) (*model.Site, error) {
	ctx := context.Background()
	var rec siteRecord
	err := s.bun.NewSelect().Model(&rec).Where("site_key = ?", key).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	m := siteRecordToModel(rec)
	return &m, nil
}

// UpdateSiteLength updates the configured output length for a site.
func (s *bunStore) UpdateSiteLength(id, length int) error {
	if length < fpcode.MinLength || length > fpcode.MaxLength {
		return &fpcode.InvalidLengthError{Length: length}
	}
	err := s.updateSite(id, "length", length)
	if err == nil {
		_ = s.LogAction("UPDATE_SITE", fmt.Sprintf("id: %d, length: %d", id, length))
	}
	return err
}

// UpdateSiteLabel updates the label for a site.
func (s *bunStore) UpdateSiteLabel(id int, label string) error {
	err := s.updateSite(id, "label", label)
	if err == nil {
		_ = s.LogAction("UPDATE_SITE", fmt.Sprintf("id: %d, label: %s", id, label))
	}
	return err
}

// UpdateSiteNotes updates the notes for a site.
func (s *bunStore) UpdateSiteNotes(id int, notes string) error {
	err := s.updateSite(id, "notes", notes)
	if err == nil {
		_ = s.LogAction("UPDATE_SITE", fmt.Sprintf("id: %d, notes updated", id))
	}
	return err
}

// updateSite sets a single column plus updated_at for the given site ID.
func (s *bunStore) updateSite(id int, column string, value any) error {
	ctx := context.Background()
	res, err := s.bun.NewUpdate().
		Model((*siteRecord)(nil)).
		Set("? = ?", bun.Ident(column), value).
		Set("updated_at = ?", time.Now().Format(time.RFC3339)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return MapDBError(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteSite removes a site from the registry by its ID.
func (s *bunStore) DeleteSite(id int) error {
	ctx := context.Background()

	// Fetch the key first so the audit entry is readable.
	details := fmt.Sprintf("id: %d", id)
	var rec siteRecord
	if err := s.bun.NewSelect().Model(&rec).Where("id = ?", id).Limit(1).Scan(ctx); err == nil {
		details = fmt.Sprintf("site: %s", rec.Key)
	}

	res, err := s.bun.NewDelete().Model((*siteRecord)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	_ = s.LogAction("DELETE_SITE", details)
	return nil
}

// GetAllAuditLogEntries retrieves all audit entries, most recent first.
func (s *bunStore) GetAllAuditLogEntries() ([]model.AuditLogEntry, error) {
	ctx := context.Background()
	var recs []auditLogRecord
	if err := s.bun.NewSelect().Model(&recs).Order("id DESC").Scan(ctx); err != nil {
		return nil, err
	}
	entries := make([]model.AuditLogEntry, 0, len(recs))
	for _, r := range recs {
		entries = append(entries, model.AuditLogEntry{ID: r.ID, Timestamp: r.Timestamp, Action: r.Action, Details: r.Details})
	}
	return entries, nil
}

// LogAction records an audit trail event. Never call this with secret
// material in the details; the log stores settings changes only.
func (s *bunStore) LogAction(action string, details string) error {
	ctx := context.Background()
	rec := &auditLogRecord{
		Timestamp: time.Now().Format(time.RFC3339),
		Action:    action,
		Details:   details,
	}
	_, err := s.bun.NewInsert().Model(rec).Exec(ctx)
	return err
}

// ExportDataForBackup retrieves all data from the database for a backup.
func (s *bunStore) ExportDataForBackup() (*model.BackupData, error) {
	sites, err := s.GetAllSites()
	if err != nil {
		return nil, fmt.Errorf("failed to export sites: %w", err)
	}
	entries, err := s.GetAllAuditLogEntries()
	if err != nil {
		return nil, fmt.Errorf("failed to export audit log: %w", err)
	}
	return &model.BackupData{
		SchemaVersion:   1,
		Sites:           sites,
		AuditLogEntries: entries,
	}, nil
}

// ImportDataFromBackup wipes the registry and audit log and replaces them
// with the backup contents, within a single transaction.
func (s *bunStore) ImportDataFromBackup(backup *model.BackupData) error {
	ctx := context.Background()

	tx, err := s.bun.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	// Bun requires a WHERE clause on Delete to prevent accidental
	// full-table deletes; here a full wipe is exactly the point.
	if _, err := tx.NewDelete().Model((*siteRecord)(nil)).Where("1 = 1").Exec(ctx); err != nil {
		return fmt.Errorf("failed to clear sites: %w", err)
	}
	if _, err := tx.NewDelete().Model((*auditLogRecord)(nil)).Where("1 = 1").Exec(ctx); err != nil {
		return fmt.Errorf("failed to clear audit log: %w", err)
	}

	for _, site := range backup.Sites {
		rec := &siteRecord{
			Key:       site.Key,
			Length:    site.Length,
			Label:     site.Label,
			Notes:     site.Notes,
			CreatedAt: site.CreatedAt,
			UpdatedAt: site.UpdatedAt,
		}
		if _, err := tx.NewInsert().Model(rec).Exec(ctx); err != nil {
			return fmt.Errorf("failed to import site %s: %w", site.Key, err)
		}
	}
	for _, entry := range backup.AuditLogEntries {
		rec := &auditLogRecord{Timestamp: entry.Timestamp, Action: entry.Action, Details: entry.Details}
		if _, err := tx.NewInsert().Model(rec).Exec(ctx); err != nil {
			return fmt.Errorf("failed to import audit entry: %w", err)
		}
	}

	return tx.Commit()
}

// Package inventory persists enumerated devices in SQLite: a journal of
// every event received plus a lookup for devices seen before.
package inventory

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/mkade/usbscout/internal/model"
)

type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the inventory database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Composite key (vid, pid, serial) keeps one row per physical device.
	schema := `
	CREATE TABLE IF NOT EXISTS devices (
		vid TEXT,
		pid TEXT,
		serial TEXT,
		name TEXT,
		first_seen DATETIME DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (vid, pid, serial)
	);
	CREATE TABLE IF NOT EXISTS events (
		vid TEXT,
		pid TEXT,
		serial TEXT,
		name TEXT,
		kind TEXT,
		seen_at DATETIME
	);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Record journals one event and upserts the device row. Devices with no
// serial number are journaled but keyed under the empty string.
func (s *Store) Record(info model.UsbDeviceInfo) error {
	serial := ""
	if info.SerialNumber != nil {
		serial = *info.SerialNumber
	}
	if _, err := s.db.Exec(
		"INSERT INTO events(vid, pid, serial, name, kind, seen_at) VALUES (?, ?, ?, ?, ?, ?)",
		info.VendorID, info.ProductID, serial, info.DeviceName, info.EventType.String(), info.Timestamp,
	); err != nil {
		return fmt.Errorf("journal event: %w", err)
	}
	if _, err := s.db.Exec(
		"INSERT OR IGNORE INTO devices(vid, pid, serial, name) VALUES (?, ?, ?, ?)",
		info.VendorID, info.ProductID, serial, info.DeviceName,
	); err != nil {
		return fmt.Errorf("record device: %w", err)
	}
	return nil
}

// Known reports whether a device with this identity was recorded on an
// earlier pass.
func (s *Store) Known(vid, pid, serial string) (bool, error) {
	var exists int
	err := s.db.QueryRow(
		"SELECT 1 FROM devices WHERE vid = ? AND pid = ? AND serial = ?",
		vid, pid, serial,
	).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return exists == 1, nil
}

// Suspect flags devices whose identity looks forged or wiped, the usual
// tell of reprogrammed controllers.
func Suspect(info model.UsbDeviceInfo) (bool, string) {
	if info.SerialNumber == nil {
		return true, "missing serial number"
	}
	if *info.SerialNumber == "000000000000" {
		return true, "all-zero serial number"
	}
	if info.VendorID == "0000" && info.ProductID == "0000" {
		return true, "unreadable vendor/product identity"
	}
	return false, ""
}

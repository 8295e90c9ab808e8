package database

import (
	"fmt"

	"gorm.io/gorm"
)

const (
	SlotOverlapConstraint = "availability_slots_no_overlap"
	BookingSlotIndex      = "idx_bookings_slot_id"
)

var postgresConstraints = []string{
	`CREATE EXTENSION IF NOT EXISTS btree_gist`,
	`DO $$
BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'availability_slots_no_overlap') THEN
    ALTER TABLE availability_slots
      ADD CONSTRAINT availability_slots_no_overlap
      EXCLUDE USING gist (staff_id WITH =, tstzrange(start_time, end_time, '[)') WITH &&);
  END IF;
END $$`,
	`DO $$
BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'availability_slots_valid_range') THEN
    ALTER TABLE availability_slots
      ADD CONSTRAINT availability_slots_valid_range CHECK (end_time > start_time);
  END IF;
END $$`,
}

// SQLite has no exclusion constraints; the triggers reject the same rows
// inside the inserting statement.
var sqliteConstraints = []string{
	`CREATE TRIGGER IF NOT EXISTS availability_slots_no_overlap_insert
BEFORE INSERT ON availability_slots
FOR EACH ROW
WHEN NEW.end_time <= NEW.start_time OR EXISTS (
  SELECT 1 FROM availability_slots s
  WHERE s.staff_id = NEW.staff_id
    AND s.start_time < NEW.end_time
    AND s.end_time > NEW.start_time
)
BEGIN
  SELECT RAISE(ABORT, 'availability_slots_no_overlap');
END`,
	`CREATE TRIGGER IF NOT EXISTS availability_slots_no_overlap_update
BEFORE UPDATE OF staff_id, start_time, end_time ON availability_slots
FOR EACH ROW
WHEN NEW.end_time <= NEW.start_time OR EXISTS (
  SELECT 1 FROM availability_slots s
  WHERE s.id <> NEW.id
    AND s.staff_id = NEW.staff_id
    AND s.start_time < NEW.end_time
    AND s.end_time > NEW.start_time
)
BEGIN
  SELECT RAISE(ABORT, 'availability_slots_no_overlap');
END`,
}

// ApplyConstraints installs the data-layer rules that gorm tags cannot
// express. It is idempotent and runs after AutoMigrate.
func ApplyConstraints(db *gorm.DB) error {
	stmts := sqliteConstraints
	if Dialect(db) == DialectPostgres {
		stmts = postgresConstraints
	}
	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("apply constraint: %w", err)
		}
	}
	return nil
}

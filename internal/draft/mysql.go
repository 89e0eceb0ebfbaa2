package draft

import (
	"context"
	"crypto/sha1"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
)

// MySQLStore keeps drafts in a single booking_drafts table.  It is
// selected with DRAFT_STORE=mysql for deployments that already run
// MySQL and do not want a Redis dependency for draft persistence.
type MySQLStore struct {
	db *sql.DB
}

// NewMySQLStore wraps an open connection pool.
func NewMySQLStore(db *sql.DB) *MySQLStore {
	return &MySQLStore{db: db}
}

// EnsureSchema creates the booking_drafts and booking_inflight
// tables when they do not exist.  payload holds the JSON-encoded
// Draft; booking_inflight rows are the duplicate-submission markers.
func (s *MySQLStore) EnsureSchema(ctx context.Context) error {
	ddls := []string{`
CREATE TABLE IF NOT EXISTS booking_drafts (
    session_id VARCHAR(64)  NOT NULL,
    flight_id  VARCHAR(64)  NOT NULL,
    payload    JSON         NOT NULL,
    updated_at DATETIME     NOT NULL,
    PRIMARY KEY (session_id, flight_id)
)`, `
CREATE TABLE IF NOT EXISTS booking_inflight (
    lock_key   CHAR(40)     NOT NULL,
    expires_at DATETIME     NOT NULL,
    PRIMARY KEY (lock_key)
)`}
	for _, ddl := range ddls {
		if _, err := s.db.ExecContext(ctx, ddl); err != nil {
			return err
		}
	}
	return nil
}

// Load reads and decodes the draft for the key.  A missing row,
// undecodable payload or schema-version mismatch reads as "no
// draft".
func (s *MySQLStore) Load(ctx context.Context, sessionID, flightID string) (*Draft, error) {
	const q = `SELECT payload FROM booking_drafts WHERE session_id = ? AND flight_id = ?`
	var payload []byte
	err := s.db.QueryRowContext(ctx, q, sessionID, flightID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var d Draft
	if err := json.Unmarshal(payload, &d); err != nil {
		return nil, nil
	}
	if d.SchemaVersion != SchemaVersion {
		return nil, nil
	}
	return &d, nil
}

// Save upserts the draft row for the session/flight key.
func (s *MySQLStore) Save(ctx context.Context, sessionID string, d *Draft) error {
	d.SchemaVersion = SchemaVersion
	d.SavedAt = time.Now().UTC()
	payload, err := json.Marshal(d)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO booking_drafts (session_id, flight_id, payload, updated_at)
VALUES (?, ?, ?, ?)
ON DUPLICATE KEY UPDATE payload = VALUES(payload), updated_at = VALUES(updated_at)`
	_, err = s.db.ExecContext(ctx, q, sessionID, d.FlightID, payload, d.SavedAt)
	return err
}

// Clear deletes the draft row; a missing row is not an error.
func (s *MySQLStore) Clear(ctx context.Context, sessionID, flightID string) error {
	const q = `DELETE FROM booking_drafts WHERE session_id = ? AND flight_id = ?`
	_, err := s.db.ExecContext(ctx, q, sessionID, flightID)
	return err
}

// inflightName hashes the key so the column stays a fixed width
// regardless of session and flight id lengths.
func inflightName(sessionID, flightID string) string {
	return fmt.Sprintf("%x", sha1.Sum([]byte(sessionID+":"+flightID)))
}

// Acquire inserts the in-flight marker row; a duplicate key means
// another request holds it.  Expired markers from crashed requests
// are cleared first.
func (s *MySQLStore) Acquire(ctx context.Context, sessionID, flightID string) (bool, error) {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM booking_inflight WHERE expires_at < ?`, time.Now().UTC()); err != nil {
		return false, err
	}
	const q = `INSERT INTO booking_inflight (lock_key, expires_at) VALUES (?, ?)`
	_, err := s.db.ExecContext(ctx, q, inflightName(sessionID, flightID), time.Now().UTC().Add(inflightTTL))
	if err != nil {
		var merr *mysql.MySQLError
		if errors.As(err, &merr) && merr.Number == 1062 {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Release deletes the marker row; a missing row is not an error.
func (s *MySQLStore) Release(ctx context.Context, sessionID, flightID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM booking_inflight WHERE lock_key = ?`, inflightName(sessionID, flightID))
	return err
}

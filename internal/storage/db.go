package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"c3track/internal"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  traceId TEXT NOT NULL,
  capability TEXT NOT NULL,
  countsJson TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_runs_traceId ON runs(traceId);

CREATE TABLE IF NOT EXISTS records (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  traceId TEXT NOT NULL,
  itemId TEXT NOT NULL,
  appointmentNumber TEXT,
  client TEXT,
  consignee TEXT,
  appointmentDateTime TEXT,
  c3Response TEXT,
  poNumbersJson TEXT NOT NULL,
  rowType TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(traceId, itemId)
);
CREATE INDEX IF NOT EXISTS idx_records_itemId ON records(itemId);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

func (d *DB) InsertRun(traceID, capability string, counts map[string]int) error {
	countsJSON, _ := json.Marshal(counts)
	_, err := d.conn.Exec(`INSERT INTO runs (traceId, capability, countsJson) VALUES (?, ?, ?)`,
		traceID, capability, string(countsJSON))
	return err
}

func (d *DB) InsertOutcome(traceID string, outcome internal.ItemOutcome) error {
	poJSON, _ := json.Marshal(outcome.PONumbers)
	_, err := d.conn.Exec(`
INSERT INTO records (traceId, itemId, appointmentNumber, client, consignee, appointmentDateTime, c3Response, poNumbersJson, rowType)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(traceId, itemId) DO UPDATE SET
  appointmentNumber=excluded.appointmentNumber,
  client=excluded.client,
  consignee=excluded.consignee,
  appointmentDateTime=excluded.appointmentDateTime,
  c3Response=excluded.c3Response,
  poNumbersJson=excluded.poNumbersJson,
  rowType=excluded.rowType
`, traceID, outcome.ItemID, outcome.AppointmentNumber, outcome.Client, outcome.Consignee,
		outcome.AppointmentDateTime, outcome.C3Response, string(poJSON), outcome.RowType)
	return err
}

func (d *DB) ListOutcomesByTrace(traceID string) ([]internal.ItemOutcome, error) {
	rows, err := d.conn.Query(`
SELECT itemId, appointmentNumber, client, consignee, appointmentDateTime, c3Response, poNumbersJson, rowType
FROM records WHERE traceId = ? ORDER BY id ASC
`, traceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.ItemOutcome
	for rows.Next() {
		var outcome internal.ItemOutcome
		var poJSON string
		if err := rows.Scan(
			&outcome.ItemID, &outcome.AppointmentNumber, &outcome.Client, &outcome.Consignee,
			&outcome.AppointmentDateTime, &outcome.C3Response, &poJSON, &outcome.RowType,
		); err != nil {
			return nil, err
		}
		_ = json.Unmarshal([]byte(poJSON), &outcome.PONumbers)
		out = append(out, outcome)
	}
	return out, rows.Err()
}

func (d *DB) SetMetadata(key, value string) error {
	_, err := d.conn.Exec(`
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP
`, key, value)
	return err
}

func (d *DB) GetMetadata(key string) (*string, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}

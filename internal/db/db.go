// Package db persists control changes and session state transitions to a
// local sqlite database, for post-hoc debugging of what the driver sent
// and when the radar's lifecycle state moved.
package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"

	_ "modernc.org/sqlite"
	"tailscale.com/tsweb"
)

// DB wraps a sqlite connection with the driver's log tables.
type DB struct {
	*sql.DB
}

// NewDB opens (or creates) the sqlite database at path and ensures its
// schema exists.
func NewDB(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	_, err = conn.Exec(`
		CREATE TABLE IF NOT EXISTS control_changes (
			change_id INTEGER PRIMARY KEY AUTOINCREMENT,
			control TEXT NOT NULL,
			value INTEGER NOT NULL,
			accepted BOOLEAN NOT NULL,
			timestamp TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS session_transitions (
			transition_id INTEGER PRIMARY KEY AUTOINCREMENT,
			from_state TEXT NOT NULL,
			to_state TEXT NOT NULL,
			timestamp TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS session_stats (
			stat_id INTEGER PRIMARY KEY AUTOINCREMENT,
			packets INTEGER NOT NULL,
			spokes INTEGER NOT NULL,
			missing_spokes INTEGER NOT NULL,
			broken_spokes INTEGER NOT NULL,
			timestamp TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return nil, fmt.Errorf("db: initializing schema: %w", err)
	}

	return &DB{conn}, nil
}

// RecordControlChange logs one control write attempt and whether it was
// accepted by the registry's preconditions.
func (db *DB) RecordControlChange(control string, value int, accepted bool) error {
	_, err := db.Exec(
		"INSERT INTO control_changes (control, value, accepted) VALUES (?, ?, ?)",
		control, value, accepted,
	)
	return err
}

// RecordTransition logs one session state transition.
func (db *DB) RecordTransition(from, to string) error {
	_, err := db.Exec(
		"INSERT INTO session_transitions (from_state, to_state) VALUES (?, ?)",
		from, to,
	)
	return err
}

// RecordStats logs a snapshot of the session's cumulative counters.
func (db *DB) RecordStats(packets, spokes, missingSpokes, brokenSpokes uint64) error {
	_, err := db.Exec(
		"INSERT INTO session_stats (packets, spokes, missing_spokes, broken_spokes) VALUES (?, ?, ?, ?)",
		packets, spokes, missingSpokes, brokenSpokes,
	)
	return err
}

// RecentTransitions returns the most recent state transitions, newest first.
func (db *DB) RecentTransitions(limit int) ([]StateTransition, error) {
	rows, err := db.Query(
		"SELECT from_state, to_state, timestamp FROM session_transitions ORDER BY transition_id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StateTransition
	for rows.Next() {
		var t StateTransition
		if err := rows.Scan(&t.From, &t.To, &t.Timestamp); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// StateTransition is one logged session-state change.
type StateTransition struct {
	From      string
	To        string
	Timestamp string
}

// AttachAdminRoutes mounts debug endpoints under tsweb's debug mux, mirroring
// the teacher's db-stats/backup admin surface scaled down to this driver's
// three log tables.
func (db *DB) AttachAdminRoutes(mux *http.ServeMux) {
	debug := tsweb.Debugger(mux)

	debug.Handle("radar-transitions", "Recent session state transitions (JSON)", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		transitions, err := db.RecentTransitions(100)
		if err != nil {
			http.Error(w, fmt.Sprintf("failed to read transitions: %v", err), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(transitions); err != nil {
			http.Error(w, fmt.Sprintf("failed to encode transitions: %v", err), http.StatusInternalServerError)
		}
	}))
}

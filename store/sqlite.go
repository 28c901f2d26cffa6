package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/etnz/auragold"
	_ "github.com/mattn/go-sqlite3"
)

// Schema of the SQLite store.
const Schema = `
CREATE TABLE IF NOT EXISTS ledgers (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	position INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS records (
	ledger_id TEXT NOT NULL REFERENCES ledgers(id) ON DELETE CASCADE,
	id TEXT NOT NULL,
	grams REAL NOT NULL,
	cost_price REAL NOT NULL,
	selling_price REAL NOT NULL,
	handling_fee_rate REAL NOT NULL,
	actual_profit REAL NOT NULL,
	desired_price REAL NOT NULL,
	projected_profit REAL NOT NULL,
	profit_margin REAL NOT NULL,
	timestamp INTEGER NOT NULL,
	position INTEGER NOT NULL,
	PRIMARY KEY (ledger_id, id)
);

CREATE INDEX IF NOT EXISTS idx_records_ledger ON records(ledger_id, position);

CREATE TABLE IF NOT EXISTS settings (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

const (
	settingActive = "activeLedgerId"
	settingLang   = "lang"
	settingTheme  = "theme"
)

// SQLite stores the state in a SQLite database.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens, and creates if needed, the database at path.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("could not open database %q: %w", path, err)
	}
	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create schema in %q: %w", path, err)
	}
	return &SQLite{db: db}, nil
}

// Load reads the whole state from the database.
func (j *SQLite) Load(ctx context.Context) (auragold.State, error) {
	var s auragold.State

	rows, err := j.db.QueryContext(ctx, `SELECT id, name, created_at FROM ledgers ORDER BY position`)
	if err != nil {
		return s, fmt.Errorf("could not query ledgers: %w", err)
	}
	index := make(map[string]int)
	for rows.Next() {
		l := auragold.Ledger{Records: []auragold.TradeRecord{}}
		if err := rows.Scan(&l.ID, &l.Name, &l.CreatedAt); err != nil {
			rows.Close()
			return s, fmt.Errorf("could not read ledger: %w", err)
		}
		index[l.ID] = len(s.Ledgers)
		s.Ledgers = append(s.Ledgers, l)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return s, fmt.Errorf("could not read ledgers: %w", err)
	}

	rows, err = j.db.QueryContext(ctx, `
		SELECT ledger_id, id, grams, cost_price, selling_price, handling_fee_rate,
			actual_profit, desired_price, projected_profit, profit_margin, timestamp
		FROM records ORDER BY ledger_id, position`)
	if err != nil {
		return s, fmt.Errorf("could not query records: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var ledgerID string
		var r auragold.TradeRecord
		if err := rows.Scan(&ledgerID, &r.ID, &r.Grams, &r.CostPrice, &r.SellingPrice, &r.HandlingFeeRate,
			&r.ActualProfit, &r.DesiredPrice, &r.ProjectedProfit, &r.ProfitMargin, &r.Timestamp); err != nil {
			return s, fmt.Errorf("could not read record: %w", err)
		}
		i, ok := index[ledgerID]
		if !ok {
			return s, fmt.Errorf("record %q belongs to unknown ledger %q", r.ID, ledgerID)
		}
		s.Ledgers[i].Records = append(s.Ledgers[i].Records, r)
	}
	if err := rows.Err(); err != nil {
		return s, fmt.Errorf("could not read records: %w", err)
	}

	settings, err := j.settings(ctx)
	if err != nil {
		return s, err
	}
	s.ActiveLedgerID = settings[settingActive]
	// settings are validated like imported ones: invalid values are dropped.
	s.Lang, _ = auragold.ParseLang(settings[settingLang])
	s.Theme, _ = auragold.ParseTheme(settings[settingTheme])
	return s, nil
}

func (j *SQLite) settings(ctx context.Context) (map[string]string, error) {
	rows, err := j.db.QueryContext(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		return nil, fmt.Errorf("could not query settings: %w", err)
	}
	defer rows.Close()
	settings := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("could not read setting: %w", err)
		}
		settings[k] = v
	}
	return settings, rows.Err()
}

// Save replaces the content of the database with s, in a single transaction.
func (j *SQLite) Save(ctx context.Context, s auragold.State) (err error) {
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not start transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	for _, stmt := range []string{`DELETE FROM records`, `DELETE FROM ledgers`, `DELETE FROM settings`} {
		if _, err = tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("could not clear store: %w", err)
		}
	}

	for i, l := range s.Ledgers {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO ledgers (id, name, created_at, position) VALUES (?, ?, ?, ?)`,
			l.ID, l.Name, l.CreatedAt, i,
		); err != nil {
			return fmt.Errorf("could not insert ledger %q: %w", l.ID, err)
		}
		for k, r := range l.Records {
			if _, err = tx.ExecContext(ctx, `
				INSERT INTO records
				(ledger_id, id, grams, cost_price, selling_price, handling_fee_rate,
				 actual_profit, desired_price, projected_profit, profit_margin, timestamp, position)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				l.ID, r.ID, r.Grams, r.CostPrice, r.SellingPrice, r.HandlingFeeRate,
				r.ActualProfit, r.DesiredPrice, r.ProjectedProfit, r.ProfitMargin, r.Timestamp, k,
			); err != nil {
				return fmt.Errorf("could not insert record %q of ledger %q: %w", r.ID, l.ID, err)
			}
		}
	}

	for k, v := range map[string]string{
		settingActive: s.ActiveLedgerID,
		settingLang:   string(s.Lang),
		settingTheme:  string(s.Theme),
	} {
		if v == "" {
			continue
		}
		if _, err = tx.ExecContext(ctx, `INSERT INTO settings (key, value) VALUES (?, ?)`, k, v); err != nil {
			return fmt.Errorf("could not save setting %q: %w", k, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("could not commit store: %w", err)
	}
	return nil
}

// Close closes the database.
func (j *SQLite) Close() error {
	return j.db.Close()
}

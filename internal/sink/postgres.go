package sink

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// Postgres stores records as rows (row_idx integer, fields text[]) of one
// table, inside a single transaction committed by Close.
type Postgres struct {
	db     *sql.DB
	tx     *sql.Tx
	insert *sql.Stmt
	table  string
	owned  bool // db was opened by OpenPostgres
	err    error
}

// OpenPostgres connects to dsn with the lib/pq driver and prepares table.
func OpenPostgres(dsn, table string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(30 * time.Minute)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	p, err := NewPostgres(db, table)
	if err != nil {
		db.Close()
		return nil, err
	}
	p.owned = true
	return p, nil
}

// NewPostgres begins a transaction on db, creates table if it does not
// exist and prepares the insert statement.
func NewPostgres(db *sql.DB, table string) (*Postgres, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}

	name := pq.QuoteIdentifier(table)
	create := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (row_idx integer NOT NULL, fields text[] NOT NULL)", name)
	if _, err := tx.Exec(create); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("create table %s: %w", name, err)
	}

	stmt, err := tx.Prepare(fmt.Sprintf("INSERT INTO %s (row_idx, fields) VALUES ($1, $2)", name))
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("prepare insert: %w", err)
	}

	return &Postgres{db: db, tx: tx, insert: stmt, table: table}, nil
}

// Write inserts one record. After a failed write every later call fails
// and Close rolls back.
func (p *Postgres) Write(row int, fields []string) error {
	if p.err != nil {
		return p.err
	}
	if _, err := p.insert.Exec(row, pq.Array(fields)); err != nil {
		p.err = fmt.Errorf("insert row %d: %w", row, err)
		return p.err
	}
	return nil
}

// Close commits the transaction, or rolls it back when a write failed.
func (p *Postgres) Close() error {
	p.insert.Close()

	var err error
	if p.err != nil {
		p.tx.Rollback()
		err = p.err
	} else if cerr := p.tx.Commit(); cerr != nil {
		err = fmt.Errorf("commit: %w", cerr)
	}

	if p.owned {
		if cerr := p.db.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

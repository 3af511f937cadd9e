package database

import (
	"errors"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"pizzastore/utils"
)

// Gateway wraps the one long-lived connection pool shared by the whole
// process. Statement handles are scoped to each call; the pool itself is
// released once at shutdown via Close.
type Gateway struct {
	*sqlx.DB
}

// Connect opens the connection and verifies it with a ping. The caller is
// responsible for deferring Close.
func Connect(url string) (*Gateway, error) {
	db, err := sqlx.Connect("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}
	return &Gateway{DB: db}, nil
}

// NewGateway wraps an already-open pool. Used by tests.
func NewGateway(db *sqlx.DB) *Gateway {
	return &Gateway{DB: db}
}

// Migrate brings the schema up to date from the migrations directory.
// An up-to-date schema is not an error.
func Migrate(sourceRoot, url string) error {
	mig, err := migrate.New("file://"+sourceRoot, url)
	if err != nil {
		return utils.ErrorWithTrace(err, "creating migrator")
	}
	if err := mig.Up(); err != nil {
		if !errors.Is(err, migrate.ErrNoChange) {
			return utils.ErrorWithTrace(err, "applying migrations")
		}
		log.Printf("migrations: %s", err.Error())
	}
	return nil
}

// ExecuteUpdate runs a mutating statement and reports the number of rows
// it touched.
func (g *Gateway) ExecuteUpdate(query string, args ...interface{}) (int64, error) {
	res, err := g.Exec(query, args...)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return n, nil
}

// ExecuteQuery runs a read statement and returns every row as an ordered
// slice of column values rendered as text. NULL renders as the empty string.
func (g *Gateway) ExecuteQuery(query string, args ...interface{}) ([][]string, error) {
	rows, err := g.Queryx(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result [][]string
	for rows.Next() {
		cols, err := rows.SliceScan()
		if err != nil {
			return nil, err
		}
		record := make([]string, len(cols))
		for i, c := range cols {
			record[i] = renderColumn(c)
		}
		result = append(result, record)
	}
	return result, rows.Err()
}

func renderColumn(v interface{}) string {
	switch c := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(c)
	case string:
		return c
	default:
		return fmt.Sprintf("%v", c)
	}
}

// CurrentSequenceValue returns the current value of a named sequence, or
// -1 if it cannot be read (e.g. nextval has not been called in this
// session).
func (g *Gateway) CurrentSequenceValue(name string) int {
	var val int
	if err := g.Get(&val, "SELECT currval($1::regclass)", name); err != nil {
		return -1
	}
	return val
}

// WithinTransaction runs fn inside a single transaction, rolling back on
// error or panic. Multi-statement sequences (order header plus its lines,
// check plus update) must go through here so a partial failure leaves no
// trace.
func (g *Gateway) WithinTransaction(fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := g.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		} else if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	err = fn(tx)
	return err
}

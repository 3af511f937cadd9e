package controllers

import (
	"bytes"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"pizzastore/cli"
	"pizzastore/database"
)

// newMock installs a sqlmock-backed gateway as the package database and
// returns the mock for setting expectations. Queries are matched on exact
// SQL text.
func newMock(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	SetDB(database.NewGateway(sqlx.NewDb(mockDB, "sqlmock")))
	t.Cleanup(func() {
		SetDB(nil)
		mockDB.Close()
	})
	return mock
}

// newPrompter feeds scripted console input and captures output.
func newPrompter(input string) (*cli.Prompter, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return cli.NewPrompter(strings.NewReader(input), out), out
}

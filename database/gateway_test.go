package database

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockGateway(t *testing.T) (*Gateway, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return NewGateway(sqlx.NewDb(mockDB, "sqlmock")), mock
}

func TestExecuteQueryRendersRowsAsText(t *testing.T) {
	g, mock := newMockGateway(t)
	mock.ExpectQuery("SELECT itemName, quantity, note FROM ItemsInOrder").
		WillReturnRows(sqlmock.NewRows([]string{"itemname", "quantity", "note"}).
			AddRow("Margherita", 2, nil).
			AddRow([]byte("Cola"), 1, "no ice"))

	rows, err := g.ExecuteQuery("SELECT itemName, quantity, note FROM ItemsInOrder")
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Margherita", "2", ""}, rows[0])
	assert.Equal(t, []string{"Cola", "1", "no ice"}, rows[1])
}

func TestExecuteUpdateReportsRowsAffected(t *testing.T) {
	g, mock := newMockGateway(t)
	mock.ExpectExec("UPDATE Users SET phoneNum = $1 WHERE login = $2").
		WithArgs("555", "alice").
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := g.ExecuteUpdate("UPDATE Users SET phoneNum = $1 WHERE login = $2", "555", "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestCurrentSequenceValue(t *testing.T) {
	g, mock := newMockGateway(t)
	mock.ExpectQuery("SELECT currval($1::regclass)").
		WithArgs("foodorder_orderid_seq").
		WillReturnRows(sqlmock.NewRows([]string{"currval"}).AddRow(42))

	assert.Equal(t, 42, g.CurrentSequenceValue("foodorder_orderid_seq"))
}

func TestCurrentSequenceValueUnavailable(t *testing.T) {
	g, mock := newMockGateway(t)
	mock.ExpectQuery("SELECT currval($1::regclass)").
		WithArgs("foodorder_orderid_seq").
		WillReturnError(errors.New(`currval of sequence "foodorder_orderid_seq" is not yet defined in this session`))

	assert.Equal(t, -1, g.CurrentSequenceValue("foodorder_orderid_seq"))
}

func TestWithinTransactionCommits(t *testing.T) {
	g, mock := newMockGateway(t)
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM ItemsInOrder WHERE orderID = $1").
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err := g.WithinTransaction(func(tx *sqlx.Tx) error {
		_, err := tx.Exec("DELETE FROM ItemsInOrder WHERE orderID = $1", 7)
		return err
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTransactionRollsBackOnError(t *testing.T) {
	g, mock := newMockGateway(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	wantErr := errors.New("boom")
	err := g.WithinTransaction(func(tx *sqlx.Tx) error {
		return wantErr
	})
	assert.ErrorIs(t, err, wantErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

package controllers

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateUserRefusedForNonManagers(t *testing.T) {
	newMock(t)

	p, out := newPrompter("")
	sess := customer("alice")
	require.NoError(t, UpdateUser(p, out, sess))

	assert.Contains(t, out.String(), "Only managers may update users.")
}

func TestUpdateUserLoginChange(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec("UPDATE Users SET login = $1 WHERE login = $2").
		WithArgs("bobby", "bob").
		WillReturnResult(sqlmock.NewResult(0, 1))

	p, out := newPrompter("bob\n1\nbobby\n")
	require.NoError(t, UpdateUser(p, out, manager("root")))

	assert.Contains(t, out.String(), "Data updated successfully!")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUserLoginCollisionRefused(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec("UPDATE Users SET login = $1 WHERE login = $2").
		WithArgs("alice", "bob").
		WillReturnError(&pq.Error{Code: "23505"})

	p, out := newPrompter("bob\n1\nalice\n")
	require.NoError(t, UpdateUser(p, out, manager("root")))

	assert.Contains(t, out.String(), "Selected login is already taken.")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUserUnknownUserReported(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec("UPDATE Users SET login = $1 WHERE login = $2").
		WithArgs("ghost2", "ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	p, out := newPrompter("ghost\n1\nghost2\n")
	require.NoError(t, UpdateUser(p, out, manager("root")))

	assert.Contains(t, out.String(), "Selected user does not exist.")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUserRoleChange(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec("UPDATE Users SET role = $1 WHERE login = $2").
		WithArgs("driver", "bob").
		WillReturnResult(sqlmock.NewResult(0, 1))

	p, out := newPrompter("bob\n2\ndriver\n")
	require.NoError(t, UpdateUser(p, out, manager("root")))

	assert.Contains(t, out.String(), "Data updated successfully!")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUserRoleOutsideEnumRejected(t *testing.T) {
	mock := newMock(t)

	p, out := newPrompter("bob\n2\nwizard\n")
	require.NoError(t, UpdateUser(p, out, manager("root")))

	assert.Contains(t, out.String(), "Selected role is not valid.")
	assert.NoError(t, mock.ExpectationsWereMet())
}

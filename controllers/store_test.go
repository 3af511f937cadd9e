package controllers

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewStoresListsEveryStore(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery("SELECT storeID, address, city, state, isOpen, reviewScore FROM Store ORDER BY storeID").
		WillReturnRows(sqlmock.NewRows([]string{"storeid", "address", "city", "state", "isopen", "reviewscore"}).
			AddRow(1, "1 Main St", "Riverside", "CA", "yes", 4.5).
			AddRow(2, "9 Elm Ave", "Fresno", "CA", "no", 3.0))

	_, out := newPrompter("")
	require.NoError(t, ViewStores(out))

	assert.Contains(t, out.String(), "Store ID: 1")
	assert.Contains(t, out.String(), "City: Riverside")
	assert.Contains(t, out.String(), "Review Score: 3.0")
	assert.NoError(t, mock.ExpectationsWereMet())
}

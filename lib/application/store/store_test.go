package applicationstore

import (
	"hr-payroll-backend/lib/utils/testdb"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestList(t *testing.T) {
	db, mock := testdb.New(t)
	mock.ExpectQuery(`SELECT \* FROM "applications" ORDER BY CASE status WHEN 'Pending' THEN 1 WHEN 'In Review' THEN 2 ELSE 3 END,applied_date desc`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "application_id", "status"}).
			AddRow("a1", "APP0002", "Pending").
			AddRow("a2", "APP0001", "Accepted"))
	list, err := NewInstance(db).List("")
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "APP0002", list[0].ApplicationID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByApplicationID(t *testing.T) {
	db, mock := testdb.New(t)
	mock.ExpectQuery(`SELECT \* FROM "applications" WHERE application_id = \$1`).
		WithArgs("APP0404", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	rec, err := NewInstance(db).GetByApplicationID("APP0404")
	require.NoError(t, err)
	require.Nil(t, rec)
	require.NoError(t, mock.ExpectationsWereMet())
}

package attendancestore

import (
	"hr-payroll-backend/lib/utils/testdb"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestGetByDay(t *testing.T) {
	t.Run("запись есть", func(t *testing.T) {
		db, mock := testdb.New(t)
		timeIn := time.Date(2024, 5, 6, 9, 0, 0, 0, time.UTC)
		mock.ExpectQuery(`SELECT \* FROM "attendances" WHERE employee_ref = \$1 AND work_date = \$2`).
			WithArgs("e1", "2024-05-06", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "employee_ref", "work_date", "time_in"}).
				AddRow("a1", "e1", "2024-05-06", timeIn))
		rec, err := NewInstance(db).GetByDay("e1", "2024-05-06")
		require.NoError(t, err)
		require.NotNil(t, rec)
		require.NotNil(t, rec.TimeIn)
		require.Nil(t, rec.TimeOut)
		require.NoError(t, mock.ExpectationsWereMet())
	})
	t.Run("записи нет", func(t *testing.T) {
		db, mock := testdb.New(t)
		mock.ExpectQuery(`SELECT \* FROM "attendances"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		rec, err := NewInstance(db).GetByDay("e1", "2024-05-06")
		require.NoError(t, err)
		require.Nil(t, rec)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSetTimeOut(t *testing.T) {
	timeOut := time.Date(2024, 5, 6, 18, 0, 0, 0, time.UTC)
	t.Run("уход записан", func(t *testing.T) {
		db, mock := testdb.New(t)
		mock.ExpectExec(`UPDATE "attendances" SET "time_out"=\$1,"updated_at"=\$2 WHERE id = \$3 AND time_out IS NULL`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		ok, err := NewInstance(db).SetTimeOut("a1", timeOut)
		require.NoError(t, err)
		require.True(t, ok)
		require.NoError(t, mock.ExpectationsWereMet())
	})
	t.Run("уход уже был", func(t *testing.T) {
		db, mock := testdb.New(t)
		mock.ExpectExec(`UPDATE "attendances"`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		ok, err := NewInstance(db).SetTimeOut("a1", timeOut)
		require.NoError(t, err)
		require.False(t, ok)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCountByDay(t *testing.T) {
	db, mock := testdb.New(t)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "attendances" WHERE work_date = \$1 AND time_in IS NOT NULL`).
		WithArgs("2024-05-06").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	count, err := NewInstance(db).CountByDay("2024-05-06")
	require.NoError(t, err)
	require.EqualValues(t, 12, count)
	require.NoError(t, mock.ExpectationsWereMet())
}

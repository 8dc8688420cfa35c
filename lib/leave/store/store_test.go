package leavestore

import (
	"hr-payroll-backend/lib/utils/testdb"
	"hr-payroll-backend/models"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestDecide(t *testing.T) {
	decidedAt := time.Date(2024, 5, 6, 10, 0, 0, 0, time.UTC)
	t.Run("заявка на рассмотрении", func(t *testing.T) {
		db, mock := testdb.New(t)
		mock.ExpectExec(`UPDATE "leaves" SET .* WHERE id = \$\d+ AND status = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		ok, err := NewInstance(db).Decide("l1", models.LeaveApproved, "hr", decidedAt)
		require.NoError(t, err)
		require.True(t, ok)
		require.NoError(t, mock.ExpectationsWereMet())
	})
	t.Run("заявка уже рассмотрена", func(t *testing.T) {
		db, mock := testdb.New(t)
		mock.ExpectExec(`UPDATE "leaves"`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		ok, err := NewInstance(db).Decide("l1", models.LeaveRejected, "hr", decidedAt)
		require.NoError(t, err)
		require.False(t, ok)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCountByStatus(t *testing.T) {
	db, mock := testdb.New(t)
	mock.ExpectQuery(`SELECT status, count\(\*\) as cnt FROM "leaves" WHERE employee_ref = \$1 GROUP BY "status"`).
		WithArgs("e1").
		WillReturnRows(sqlmock.NewRows([]string{"status", "cnt"}).
			AddRow("Approved", 2).
			AddRow("Pending", 1))
	counts, err := NewInstance(db).CountByStatus("e1")
	require.NoError(t, err)
	require.EqualValues(t, 2, counts[models.LeaveApproved])
	require.EqualValues(t, 1, counts[models.LeavePending])
	require.Zero(t, counts[models.LeaveRejected])
	require.NoError(t, mock.ExpectationsWereMet())
}

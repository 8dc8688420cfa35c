package pushdatastore

import (
	"hr-payroll-backend/lib/utils/testdb"
	"hr-payroll-backend/models"
	dbmodels "hr-payroll-backend/models/db"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	t.Run("List", func(t *testing.T) {
		db, mock := testdb.New(t)
		rows := sqlmock.NewRows([]string{"id", "created_at", "user_id", "code", "msg", "title"}).
			AddRow("p1", time.Now(), "u1", string(models.PushLeaveDecided), "msg", "title")
		mock.ExpectQuery(`SELECT \* FROM "push_data" WHERE user_id = \$1 ORDER BY created_at`).
			WithArgs("u1").
			WillReturnRows(rows)
		list, err := NewInstance(db).List("u1")
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, models.PushLeaveDecided, list[0].Code)
		require.NoError(t, mock.ExpectationsWereMet())
	})
	t.Run("Create", func(t *testing.T) {
		db, mock := testdb.New(t)
		mock.ExpectExec(`INSERT INTO "push_data"`).WillReturnResult(sqlmock.NewResult(1, 1))
		err := NewInstance(db).Create(dbmodels.PushData{UserID: "u1", Code: models.PushChatMessage})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
	t.Run("Delete пустого списка не обращается к БД", func(t *testing.T) {
		db, mock := testdb.New(t)
		require.NoError(t, NewInstance(db).Delete(nil))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

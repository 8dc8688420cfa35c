package chatstore

import (
	"hr-payroll-backend/lib/utils/testdb"
	"hr-payroll-backend/models"
	dbmodels "hr-payroll-backend/models/db"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestAddMember(t *testing.T) {
	db, mock := testdb.New(t)
	mock.ExpectExec(`INSERT INTO "room_memberships" .* ON CONFLICT DO NOTHING`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	err := NewInstance(db).AddMember(dbmodels.RoomMembership{
		RoomID:     "r1",
		MemberID:   "e1",
		MemberType: models.MemberEmployee,
		JoinedAt:   time.Now(),
		LastReadAt: time.Now(),
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIsMember(t *testing.T) {
	db, mock := testdb.New(t)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "room_memberships" WHERE room_id = \$1 AND member_id = \$2 AND member_type = \$3`).
		WithArgs("r1", "e1", string(models.MemberEmployee)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	ok, err := NewInstance(db).IsMember("r1", "e1")
	require.NoError(t, err)
	require.False(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindDirectRoom(t *testing.T) {
	db, mock := testdb.New(t)
	mock.ExpectQuery(`SELECT cr.id FROM chat_rooms AS cr JOIN room_memberships rm1 .* JOIN room_memberships rm2 .* WHERE cr.room_type = \$1`).
		WithArgs(string(models.ChatRoomDirect), "e1", "e2", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("r7"))
	roomID, err := NewInstance(db).FindDirectRoom("e1", "e2")
	require.NoError(t, err)
	require.Equal(t, "r7", roomID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListMessages(t *testing.T) {
	db, mock := testdb.New(t)
	since := time.Date(2024, 5, 6, 10, 0, 0, 0, time.UTC)
	sentAt := since.Add(time.Minute)
	mock.ExpectQuery(`SELECT \* FROM "chat_messages" WHERE room_id = \$1 AND sent_at > \$2 ORDER BY sent_at`).
		WithArgs("r1", since).
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_id", "sender_id", "message", "sent_at"}).
			AddRow("m1", "r1", "e1", "привет", sentAt))
	mock.ExpectQuery(`SELECT \* FROM "employees" WHERE "employees"."id" = \$1`).
		WithArgs("e1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "employee_id"}).AddRow("e1", "Иванов", "EMP001"))
	list, err := NewInstance(db).ListMessages("r1", &since)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "Иванов", list[0].Sender.Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

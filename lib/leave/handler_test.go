package leavehandler

import (
	"hr-payroll-backend/lib/utils/apperror"
	"hr-payroll-backend/models"
	leaveapimodels "hr-payroll-backend/models/api/leave"
	dbmodels "hr-payroll-backend/models/db"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	recs []*dbmodels.Leave
}

func (f *fakeStore) Create(rec dbmodels.Leave) (string, error) {
	rec.ID = "l" + strconv.Itoa(len(f.recs)+1)
	f.recs = append(f.recs, &rec)
	return rec.ID, nil
}

func (f *fakeStore) GetByID(id string) (*dbmodels.Leave, error) {
	for _, rec := range f.recs {
		if rec.ID == id {
			result := *rec
			return &result, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) Decide(id string, status models.LeaveStatus, decidedBy string, decidedAt time.Time) (bool, error) {
	for _, rec := range f.recs {
		if rec.ID == id && rec.Status == models.LeavePending {
			rec.Status = status
			rec.DecidedBy = decidedBy
			rec.DecidedAt = &decidedAt
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) List(status models.LeaveStatus, employeeRef string) (list []dbmodels.Leave, err error) {
	for _, rec := range f.recs {
		if status != "" && rec.Status != status {
			continue
		}
		if employeeRef != "" && rec.EmployeeRef != employeeRef {
			continue
		}
		list = append(list, *rec)
	}
	return list, nil
}

func (f *fakeStore) CountByStatus(employeeRef string) (map[models.LeaveStatus]int64, error) {
	result := map[models.LeaveStatus]int64{}
	for _, rec := range f.recs {
		if employeeRef == "" || rec.EmployeeRef == employeeRef {
			result[rec.Status]++
		}
	}
	return result, nil
}

type fakePush struct {
	messages []string
}

func (f *fakePush) SendNotification(userID string, code models.PushCode, args ...any) {
	f.messages = append(f.messages, userID+": "+models.GetPushData(code, args...).Msg)
}

func (f *fakePush) SendData(userID string, code models.PushCode, data any, args ...any) {}

func TestLeaveFlow(t *testing.T) {
	store := &fakeStore{}
	push := &fakePush{}
	i := impl{
		store: store,
		push:  push,
		now:   func() time.Time { return time.Date(2024, 5, 6, 10, 0, 0, 0, time.UTC) },
	}
	hr := models.Actor{UserID: "hr", Role: models.HRRole}

	t.Run("заявка", func(t *testing.T) {
		id, err := i.Request("e1", leaveapimodels.LeaveRequest{
			Type:      "Vacation",
			StartDate: "2024-06-01",
			EndDate:   "2024-06-10",
			Reason:    " отпуск ",
		})
		require.NoError(t, err)
		require.Equal(t, "l1", id)
		require.Equal(t, models.LeavePending, store.recs[0].Status)
		require.Equal(t, models.LeaveFullDay, store.recs[0].Duration)
		require.Equal(t, "отпуск", store.recs[0].Reason)
	})
	t.Run("дата больше чем на год вперед", func(t *testing.T) {
		_, err := i.Request("e1", leaveapimodels.LeaveRequest{Type: "Vacation", StartDate: "2025-06-01", EndDate: "2025-06-02"})
		require.Equal(t, http.StatusBadRequest, apperror.Status(err))
	})
	t.Run("недопустимое решение", func(t *testing.T) {
		err := i.Decide("l1", models.LeavePending, hr)
		require.Equal(t, http.StatusBadRequest, apperror.Status(err))
	})
	t.Run("одобрение", func(t *testing.T) {
		require.NoError(t, i.Decide("l1", models.LeaveApproved, hr))
		require.Equal(t, models.LeaveApproved, store.recs[0].Status)
		require.Equal(t, "hr", store.recs[0].DecidedBy)
		require.Equal(t, []string{"e1: Заявка на отпуск с 2024-06-01 по 2024-06-10: Одобрено."}, push.messages)
	})
	t.Run("повторное решение", func(t *testing.T) {
		err := i.Decide("l1", models.LeaveRejected, hr)
		require.ErrorIs(t, err, ErrAlreadyDecided)
		require.Equal(t, models.LeaveApproved, store.recs[0].Status)
	})
	t.Run("не найдена", func(t *testing.T) {
		require.ErrorIs(t, i.Decide("l9", models.LeaveRejected, hr), ErrNotFound)
	})
	t.Run("статистика и списки", func(t *testing.T) {
		_, err := i.Request("e1", leaveapimodels.LeaveRequest{Type: "Sick", Duration: models.LeaveHalfDay, StartDate: "2024-05-07", EndDate: "2024-05-07"})
		require.NoError(t, err)
		_, err = i.Request("e2", leaveapimodels.LeaveRequest{Type: "Sick", StartDate: "2024-05-07", EndDate: "2024-05-08"})
		require.NoError(t, err)

		stats, err := i.Stats("e1")
		require.NoError(t, err)
		require.Equal(t, leaveapimodels.LeaveStats{Total: 2, Approved: 1, Pending: 1}, stats)

		pending, err := i.ListPending()
		require.NoError(t, err)
		require.Len(t, pending, 2)

		my, err := i.My("e2")
		require.NoError(t, err)
		require.Len(t, my, 1)

		all, err := i.ListAll()
		require.NoError(t, err)
		require.Len(t, all, 3)
	})
}

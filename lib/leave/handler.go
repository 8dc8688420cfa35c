package leavehandler

import (
	leavestore "hr-payroll-backend/lib/leave/store"
	pushhandler "hr-payroll-backend/lib/push"
	"hr-payroll-backend/lib/utils/apperror"
	"hr-payroll-backend/models"
	leaveapimodels "hr-payroll-backend/models/api/leave"
	dbmodels "hr-payroll-backend/models/db"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var (
	ErrNotFound       = apperror.NotFound("заявка на отпуск не найдена")
	ErrAlreadyDecided = apperror.Conflict("заявка уже рассмотрена")
)

type Provider interface {
	Request(employeeRef string, req leaveapimodels.LeaveRequest) (string, error)
	Decide(id string, status models.LeaveStatus, actor models.Actor) error
	ListPending() ([]leaveapimodels.LeaveView, error)
	ListAll() ([]leaveapimodels.LeaveView, error)
	My(employeeRef string) ([]leaveapimodels.LeaveView, error)
	Stats(employeeRef string) (leaveapimodels.LeaveStats, error)
}

var Instance Provider

func NewHandler(store leavestore.Provider, push pushhandler.Provider) {
	Instance = impl{
		store: store,
		push:  push,
		now:   time.Now,
	}
}

type impl struct {
	store leavestore.Provider
	push  pushhandler.Provider
	now   func() time.Time
}

func (i impl) Request(employeeRef string, req leaveapimodels.LeaveRequest) (string, error) {
	if err := leaveapimodels.ValidateDateRange(req.StartDate, req.EndDate, i.now()); err != nil {
		return "", apperror.BadRequest(err.Error())
	}
	if req.Duration == "" {
		req.Duration = models.LeaveFullDay
	}
	rec := dbmodels.Leave{
		EmployeeRef: employeeRef,
		Type:        strings.TrimSpace(req.Type),
		Duration:    req.Duration,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Reason:      strings.TrimSpace(req.Reason),
		Status:      models.LeavePending,
	}
	if err := rec.Validate(); err != nil {
		return "", apperror.BadRequest(err.Error())
	}
	id, err := i.store.Create(rec)
	if err != nil {
		return "", errors.Wrap(err, "ошибка сохранения заявки на отпуск")
	}
	log.
		WithField("employee_ref", employeeRef).
		WithField("leave_id", id).
		Info("подана заявка на отпуск")
	return id, nil
}

// Decide рассматривается только заявка в статусе Pending
func (i impl) Decide(id string, status models.LeaveStatus, actor models.Actor) error {
	if !status.IsDecision() {
		return apperror.BadRequest("допустимые решения: Approved или Rejected")
	}
	rec, err := i.store.GetByID(id)
	if err != nil {
		return errors.Wrap(err, "ошибка получения заявки на отпуск")
	}
	if rec == nil {
		return ErrNotFound
	}
	if rec.Status != models.LeavePending {
		return ErrAlreadyDecided
	}
	ok, err := i.store.Decide(id, status, actor.UserID, i.now())
	if err != nil {
		return errors.Wrap(err, "ошибка сохранения решения по заявке")
	}
	if !ok {
		return ErrAlreadyDecided
	}
	log.
		WithField("leave_id", id).
		WithField("status", status).
		WithField("actor_id", actor.UserID).
		Info("заявка на отпуск рассмотрена")
	if i.push != nil {
		i.push.SendNotification(rec.EmployeeRef, models.PushLeaveDecided, rec.StartDate, rec.EndDate, status.ToHuman())
	}
	return nil
}

func (i impl) ListPending() ([]leaveapimodels.LeaveView, error) {
	return i.list(models.LeavePending, "")
}

func (i impl) ListAll() ([]leaveapimodels.LeaveView, error) {
	return i.list("", "")
}

func (i impl) My(employeeRef string) ([]leaveapimodels.LeaveView, error) {
	return i.list("", employeeRef)
}

func (i impl) Stats(employeeRef string) (leaveapimodels.LeaveStats, error) {
	counts, err := i.store.CountByStatus(employeeRef)
	if err != nil {
		return leaveapimodels.LeaveStats{}, errors.Wrap(err, "ошибка получения статистики отпусков")
	}
	result := leaveapimodels.LeaveStats{
		Approved: counts[models.LeaveApproved],
		Pending:  counts[models.LeavePending],
	}
	for _, cnt := range counts {
		result.Total += cnt
	}
	return result, nil
}

func (i impl) list(status models.LeaveStatus, employeeRef string) ([]leaveapimodels.LeaveView, error) {
	list, err := i.store.List(status, employeeRef)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения заявок на отпуск")
	}
	result := make([]leaveapimodels.LeaveView, 0, len(list))
	for _, rec := range list {
		result = append(result, rec.ToModel())
	}
	return result, nil
}

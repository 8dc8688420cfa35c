package applicationhandler

import (
	"context"
	filestorage "hr-payroll-backend/lib/file-storage"
	"hr-payroll-backend/lib/utils/apperror"
	"hr-payroll-backend/models"
	applicationapimodels "hr-payroll-backend/models/api/application"
	employeeapimodels "hr-payroll-backend/models/api/employee"
	dbmodels "hr-payroll-backend/models/db"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	recs []*dbmodels.Application
}

func (f *fakeStore) Create(rec dbmodels.Application) (string, error) {
	rec.ID = strings.ToLower(rec.ApplicationID)
	f.recs = append(f.recs, &rec)
	return rec.ID, nil
}

func (f *fakeStore) find(match func(rec *dbmodels.Application) bool) *dbmodels.Application {
	for _, rec := range f.recs {
		if match(rec) {
			result := *rec
			return &result
		}
	}
	return nil
}

func (f *fakeStore) GetByID(id string) (*dbmodels.Application, error) {
	return f.find(func(rec *dbmodels.Application) bool { return rec.ID == id }), nil
}

func (f *fakeStore) GetByApplicationID(applicationID string) (*dbmodels.Application, error) {
	return f.find(func(rec *dbmodels.Application) bool { return rec.ApplicationID == applicationID }), nil
}

func (f *fakeStore) ListApplicationIDs() (ids []string, err error) {
	for _, rec := range f.recs {
		ids = append(ids, rec.ApplicationID)
	}
	return ids, nil
}

func (f *fakeStore) List(status models.ApplicationStatus) (list []dbmodels.Application, err error) {
	for _, rec := range f.recs {
		list = append(list, *rec)
	}
	return list, nil
}

func (f *fakeStore) Update(id string, updMap map[string]interface{}) error {
	for _, rec := range f.recs {
		if rec.ID != id {
			continue
		}
		for key, value := range updMap {
			switch key {
			case "status":
				rec.Status = value.(models.ApplicationStatus)
			case "notes":
				rec.Notes = value.(string)
			case "processed_by":
				rec.ProcessedBy = value.(string)
			case "resume_file_id":
				rec.ResumeFileID = value.(string)
			}
		}
	}
	return nil
}

func (f *fakeStore) CountByStatus(status models.ApplicationStatus) (cnt int64, err error) {
	for _, rec := range f.recs {
		if rec.Status == status {
			cnt++
		}
	}
	return cnt, nil
}

type fakeEmployees struct {
	active []dbmodels.Employee
}

func (f *fakeEmployees) ListActive() ([]dbmodels.Employee, error)                  { return f.active, nil }
func (f *fakeEmployees) Create(rec dbmodels.Employee) (string, error)              { return "", nil }
func (f *fakeEmployees) Update(id string, updMap map[string]interface{}) error     { return nil }
func (f *fakeEmployees) GetByID(id string) (*dbmodels.Employee, error)             { return nil, nil }
func (f *fakeEmployees) GetByUsername(username string) (*dbmodels.Employee, error) { return nil, nil }
func (f *fakeEmployees) ExistByUsername(username, excludeID string) (bool, error)  { return false, nil }
func (f *fakeEmployees) ExistByNfcID(nfcID, excludeID string) (bool, error)        { return false, nil }
func (f *fakeEmployees) ListEmployeeIDs() ([]string, error)                        { return nil, nil }
func (f *fakeEmployees) ListWithPlainPasswords() ([]dbmodels.Employee, error)      { return nil, nil }
func (f *fakeEmployees) CountByRole(role models.UserRole) (int64, error)           { return 0, nil }
func (f *fakeEmployees) FindActiveByCode(employeeID, nfcID string) (*dbmodels.Employee, error) {
	return nil, nil
}
func (f *fakeEmployees) List(filter employeeapimodels.EmployeeFilter, page, limit int) ([]dbmodels.Employee, int64, error) {
	return nil, 0, nil
}

type fakeFiles struct {
	files map[string]dbmodels.UploadFileInfo
	body  map[string][]byte
}

func (f *fakeFiles) Upload(ctx context.Context, info dbmodels.UploadFileInfo, body []byte) (string, error) {
	fileID := "file-" + info.OwnerID
	f.files[fileID] = info
	f.body[fileID] = body
	return fileID, nil
}

func (f *fakeFiles) Get(ctx context.Context, fileID string) ([]byte, *dbmodels.FileStorage, error) {
	info, ok := f.files[fileID]
	if !ok {
		return nil, nil, filestorage.ErrNotFound
	}
	return f.body[fileID], &dbmodels.FileStorage{Name: info.FileName, ContentType: info.ContentType}, nil
}

func (f *fakeFiles) GetByOwner(ctx context.Context, ownerID string, fileType dbmodels.FileType) ([]byte, *dbmodels.FileStorage, error) {
	return nil, nil, filestorage.ErrNotFound
}

func (f *fakeFiles) Delete(ctx context.Context, fileID string) error { return nil }

type fakePush struct {
	users []string
}

func (f *fakePush) SendNotification(userID string, code models.PushCode, args ...any) {
	f.users = append(f.users, userID)
}

func (f *fakePush) SendData(userID string, code models.PushCode, data any, args ...any) {}

type fakeMail struct {
	configured bool
	sent       []string
}

func (f *fakeMail) SendEMail(to, subject, message string) error {
	f.sent = append(f.sent, to+"|"+subject)
	return nil
}

func (f *fakeMail) IsConfigured() bool { return f.configured }

func newImpl() (impl, *fakeStore, *fakePush, *fakeMail) {
	store := &fakeStore{}
	push := &fakePush{}
	mail := &fakeMail{configured: true}
	return impl{
		store: store,
		employees: &fakeEmployees{active: []dbmodels.Employee{
			{BaseModel: dbmodels.BaseModel{ID: "adm"}, Role: models.AdminRole},
			{BaseModel: dbmodels.BaseModel{ID: "hr"}, Role: models.HRRole},
			{BaseModel: dbmodels.BaseModel{ID: "emp"}, Role: models.EmployeeRole},
		}},
		files:       &fakeFiles{files: map[string]dbmodels.UploadFileInfo{}, body: map[string][]byte{}},
		push:        push,
		mail:        mail,
		uploadMaxMb: 16,
		now:         func() time.Time { return time.Date(2024, 5, 6, 10, 0, 0, 0, time.UTC) },
	}, store, push, mail
}

var submitReq = applicationapimodels.SubmitRequest{
	FullName: "Иван Петров",
	Email:    "ivan@example.com",
	Position: "Бухгалтер",
}

func TestNextApplicationID(t *testing.T) {
	require.Equal(t, "APP0001", NextApplicationID(nil))
	require.Equal(t, "APP0013", NextApplicationID([]string{"APP0012", "APP0003"}))
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()
	t.Run("отклик с резюме", func(t *testing.T) {
		i, store, push, _ := newImpl()
		result, err := i.Submit(ctx, submitReq, &applicationapimodels.Resume{FileName: "cv.pdf", Body: []byte("%PDF-1.4")})
		require.NoError(t, err)
		require.Equal(t, "APP0001", result.ApplicationID)
		require.Equal(t, models.ApplicationPending, store.recs[0].Status)
		require.Equal(t, "file-app0001", store.recs[0].ResumeFileID)
		require.Equal(t, []string{"adm", "hr"}, push.users)

		body, fileName, contentType, err := i.GetResume(ctx, "app0001")
		require.NoError(t, err)
		require.Equal(t, []byte("%PDF-1.4"), body)
		require.Equal(t, "APP0001_cv.pdf", fileName)
		require.Equal(t, "application/pdf", contentType)

		result, err = i.Submit(ctx, submitReq, nil)
		require.NoError(t, err)
		require.Equal(t, "APP0002", result.ApplicationID)
	})
	t.Run("недопустимый файл", func(t *testing.T) {
		i, store, _, _ := newImpl()
		_, err := i.Submit(ctx, submitReq, &applicationapimodels.Resume{FileName: "cv.exe", Body: []byte("MZ")})
		require.Equal(t, http.StatusBadRequest, apperror.Status(err))
		require.Empty(t, store.recs)
	})
	t.Run("подозрительное содержимое", func(t *testing.T) {
		i, _, _, _ := newImpl()
		_, err := i.Submit(ctx, submitReq, &applicationapimodels.Resume{FileName: "cv.txt", Body: []byte("hello <SCRIPT>alert(1)</script>")})
		require.Equal(t, http.StatusBadRequest, apperror.Status(err))
	})
}

func TestStatusAndUpdate(t *testing.T) {
	i, store, _, mail := newImpl()
	_, err := i.Submit(context.Background(), submitReq, nil)
	require.NoError(t, err)
	actor := models.Actor{UserID: "hr", Role: models.HRRole}

	t.Run("публичная проверка статуса", func(t *testing.T) {
		view, err := i.Status(" app0001 ")
		require.NoError(t, err)
		require.Equal(t, models.ApplicationPending, view.Status)
		_, err = i.Status("APP9999")
		require.True(t, apperror.IsNotFound(err))
	})
	t.Run("смена статуса и письмо", func(t *testing.T) {
		err := i.UpdateStatus("app0001", applicationapimodels.StatusUpdateRequest{Status: models.ApplicationInReview, Notes: "звонок"}, actor)
		require.NoError(t, err)
		require.Equal(t, models.ApplicationInReview, store.recs[0].Status)
		require.Equal(t, "hr", store.recs[0].ProcessedBy)
		require.Len(t, mail.sent, 1)
		require.Contains(t, mail.sent[0], "ivan@example.com")

		err = i.UpdateStatus("app0001", applicationapimodels.StatusUpdateRequest{Status: models.ApplicationInReview, Notes: "еще"}, actor)
		require.NoError(t, err)
		require.Len(t, mail.sent, 1)
	})
	t.Run("без smtp письма не отправляются", func(t *testing.T) {
		mail.configured = false
		err := i.UpdateStatus("app0001", applicationapimodels.StatusUpdateRequest{Status: models.ApplicationAccepted}, actor)
		require.NoError(t, err)
		require.Len(t, mail.sent, 1)
	})
	t.Run("неизвестный статус", func(t *testing.T) {
		err := i.UpdateStatus("app0001", applicationapimodels.StatusUpdateRequest{Status: "Hired"}, actor)
		require.Equal(t, http.StatusBadRequest, apperror.Status(err))
	})
}

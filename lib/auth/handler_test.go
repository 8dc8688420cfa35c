package authhandler

import (
	"hr-payroll-backend/config"
	"hr-payroll-backend/lib/utils/apperror"
	"hr-payroll-backend/models"
	authapimodels "hr-payroll-backend/models/api/auth"
	employeeapimodels "hr-payroll-backend/models/api/employee"
	dbmodels "hr-payroll-backend/models/db"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeEmployees struct {
	people map[string]*dbmodels.Employee
}

func (f *fakeEmployees) GetByID(id string) (*dbmodels.Employee, error) {
	if rec, ok := f.people[id]; ok {
		result := *rec
		return &result, nil
	}
	return nil, nil
}

func (f *fakeEmployees) GetByUsername(username string) (*dbmodels.Employee, error) {
	for _, rec := range f.people {
		if rec.Username == username {
			result := *rec
			return &result, nil
		}
	}
	return nil, nil
}

func (f *fakeEmployees) Update(id string, updMap map[string]interface{}) error {
	if password, ok := updMap["password"]; ok {
		f.people[id].Password = password.(string)
	}
	return nil
}

func (f *fakeEmployees) Create(rec dbmodels.Employee) (string, error)             { return "", nil }
func (f *fakeEmployees) ExistByUsername(username, excludeID string) (bool, error) { return false, nil }
func (f *fakeEmployees) ExistByNfcID(nfcID, excludeID string) (bool, error)       { return false, nil }
func (f *fakeEmployees) ListEmployeeIDs() ([]string, error)                       { return nil, nil }
func (f *fakeEmployees) ListActive() ([]dbmodels.Employee, error)                 { return nil, nil }
func (f *fakeEmployees) ListWithPlainPasswords() ([]dbmodels.Employee, error)     { return nil, nil }
func (f *fakeEmployees) CountByRole(role models.UserRole) (int64, error)          { return 0, nil }
func (f *fakeEmployees) FindActiveByCode(employeeID, nfcID string) (*dbmodels.Employee, error) {
	return nil, nil
}
func (f *fakeEmployees) List(filter employeeapimodels.EmployeeFilter, page, limit int) ([]dbmodels.Employee, int64, error) {
	return nil, 0, nil
}

type fakeAuditor struct {
	events []models.SecurityEvent
}

func (f *fakeAuditor) LogEvent(event models.SecurityEvent, userID, ip, userAgent, description string) {
	f.events = append(f.events, event)
}

func (f *fakeAuditor) LogActorEvent(event models.SecurityEvent, actor models.Actor, description string) {
	f.events = append(f.events, event)
}

func (f *fakeAuditor) LogSystemEvent(event models.SecurityEvent, description string) {
	f.events = append(f.events, event)
}

type fakePermissions struct{}

func (fakePermissions) GetPermissions(role models.UserRole) map[models.Module][]models.Permission {
	return map[models.Module][]models.Permission{models.ProfileModule: {models.SelfPermission}}
}

func hash(t *testing.T, password string) string {
	result, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(result)
}

func newImpl(t *testing.T) (impl, *fakeEmployees, *fakeAuditor) {
	config.Conf = &config.Configuration{}
	config.Conf.Auth.JWTSecret = "test-secret"
	config.Conf.Auth.JWTExpireInSec = 60
	config.Conf.Auth.JWTRefreshExpireInSec = 120
	employees := &fakeEmployees{people: map[string]*dbmodels.Employee{
		"e1": {
			BaseModel:  dbmodels.BaseModel{ID: "e1"},
			EmployeeID: "EMP001",
			Username:   "ivan",
			Name:       "Иван",
			Password:   hash(t, "Secret#12"),
			Role:       models.EmployeeRole,
			Status:     models.EmployeeActive,
		},
		"e2": {
			BaseModel: dbmodels.BaseModel{ID: "e2"},
			Username:  "old",
			Password:  hash(t, "Secret#12"),
			Role:      models.EmployeeRole,
			Status:    models.EmployeeInactive,
		},
	}}
	auditor := &fakeAuditor{}
	return impl{employees: employees, auditor: auditor, permissions: fakePermissions{}}, employees, auditor
}

func TestLogin(t *testing.T) {
	i, _, auditor := newImpl(t)
	t.Run("успешный вход", func(t *testing.T) {
		response, err := i.Login(" ivan ", "Secret#12", "127.0.0.1", "test")
		require.NoError(t, err)
		require.NotEmpty(t, response.Token)
		require.NotEmpty(t, response.RefreshToken)
		require.Equal(t, "EMP001", response.EmployeeID)
		require.Equal(t, authapimodels.TokenTypeBearer, response.TokenType)
		require.Equal(t, 60, response.ExpiresIn)

		refreshed, err := i.RefreshToken(response.RefreshToken)
		require.NoError(t, err)
		require.NotEmpty(t, refreshed.Token)
	})
	t.Run("неверный пароль", func(t *testing.T) {
		_, err := i.Login("ivan", "wrong", "127.0.0.1", "test")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
	t.Run("неактивный пользователь", func(t *testing.T) {
		_, err := i.Login("old", "Secret#12", "127.0.0.1", "test")
		require.Equal(t, http.StatusUnauthorized, apperror.Status(err))
	})
	t.Run("access token вместо refresh", func(t *testing.T) {
		response, err := i.Login("ivan", "Secret#12", "127.0.0.1", "test")
		require.NoError(t, err)
		_, err = i.RefreshToken(response.Token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})
	require.Equal(t, []models.SecurityEvent{
		models.EventLoginSuccess,
		models.EventLoginFailed,
		models.EventLoginFailed,
		models.EventLoginSuccess,
	}, auditor.events)
}

func TestMe(t *testing.T) {
	i, _, _ := newImpl(t)
	me, err := i.Me("e1")
	require.NoError(t, err)
	require.Equal(t, "EMP001", me.EmployeeID)
	require.Contains(t, me.Permissions, models.ProfileModule)

	_, err = i.Me("e2")
	require.True(t, apperror.IsNotFound(err))
}

func TestChangePassword(t *testing.T) {
	i, employees, auditor := newImpl(t)
	actor := models.Actor{UserID: "e1", Role: models.EmployeeRole}

	t.Run("слабый пароль", func(t *testing.T) {
		err := i.ChangePassword(authapimodels.ChangePasswordRequest{
			CurrentPassword: "Secret#12",
			NewPassword:     "short",
			ConfirmPassword: "short",
		}, actor)
		require.Equal(t, http.StatusBadRequest, apperror.Status(err))
	})
	t.Run("неверный текущий пароль", func(t *testing.T) {
		err := i.ChangePassword(authapimodels.ChangePasswordRequest{
			CurrentPassword: "Wrong#123",
			NewPassword:     "Better#345",
			ConfirmPassword: "Better#345",
		}, actor)
		require.Equal(t, http.StatusBadRequest, apperror.Status(err))
	})
	t.Run("смена пароля", func(t *testing.T) {
		err := i.ChangePassword(authapimodels.ChangePasswordRequest{
			CurrentPassword: "Secret#12",
			NewPassword:     "Better#345",
			ConfirmPassword: "Better#345",
		}, actor)
		require.NoError(t, err)
		require.True(t, CheckPassword(employees.people["e1"].Password, "Better#345"))
		require.Equal(t, []models.SecurityEvent{models.EventPasswordChange}, auditor.events)
	})
}

package authhandler

import (
	"hr-payroll-backend/config"
	employeestore "hr-payroll-backend/lib/employee/store"
	"hr-payroll-backend/lib/security/audit"
	"hr-payroll-backend/lib/utils/apperror"
	authutils "hr-payroll-backend/lib/utils/auth-utils"
	"hr-payroll-backend/models"
	authapimodels "hr-payroll-backend/models/api/auth"
	dbmodels "hr-payroll-backend/models/db"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = apperror.Unauthorized("неверный логин или пароль")
	ErrInvalidToken       = apperror.Unauthorized("недействительный токен")
)

type PermissionSource interface {
	GetPermissions(role models.UserRole) map[models.Module][]models.Permission
}

type Provider interface {
	Login(username, password, ip, userAgent string) (authapimodels.JWTResponse, error)
	Logout(actor models.Actor)
	Me(userID string) (*authapimodels.MeView, error)
	RefreshToken(refreshToken string) (authapimodels.JWTResponse, error)
	ChangePassword(req authapimodels.ChangePasswordRequest, actor models.Actor) error
}

var Instance Provider

func NewHandler(employees employeestore.Provider, auditor audit.Provider, permissions PermissionSource) {
	Instance = impl{
		employees:   employees,
		auditor:     auditor,
		permissions: permissions,
	}
}

type impl struct {
	employees   employeestore.Provider
	auditor     audit.Provider
	permissions PermissionSource
}

func (i impl) Login(username, password, ip, userAgent string) (authapimodels.JWTResponse, error) {
	username = strings.TrimSpace(username)
	logger := log.
		WithField("username", username).
		WithField("ip", ip)
	user, err := i.employees.GetByUsername(username)
	if err != nil {
		return authapimodels.JWTResponse{}, errors.Wrap(err, "ошибка поиска пользователя")
	}
	if user == nil || !user.IsActive() || !CheckPassword(user.Password, password) {
		logger.Info("неудачная попытка входа")
		userID := ""
		if user != nil {
			userID = user.ID
		}
		i.auditor.LogEvent(models.EventLoginFailed, userID, ip, userAgent, "Неудачная попытка входа: "+username)
		return authapimodels.JWTResponse{}, ErrInvalidCredentials
	}
	response, err := i.issueTokens(*user)
	if err != nil {
		return authapimodels.JWTResponse{}, err
	}
	i.auditor.LogEvent(models.EventLoginSuccess, user.ID, ip, userAgent, "Вход в систему: "+username)
	logger.Info("пользователь вошел в систему")
	return response, nil
}

func (i impl) Logout(actor models.Actor) {
	i.auditor.LogActorEvent(models.EventLogout, actor, "Выход из системы")
}

func (i impl) Me(userID string) (*authapimodels.MeView, error) {
	user, err := i.activeUser(userID)
	if err != nil {
		return nil, err
	}
	result := authapimodels.MeView{
		EmployeeView: user.ToModel(),
	}
	if i.permissions != nil {
		result.Permissions = i.permissions.GetPermissions(user.Role)
	}
	return &result, nil
}

func (i impl) RefreshToken(refreshToken string) (authapimodels.JWTResponse, error) {
	userID, err := authutils.ParseRefreshToken(refreshToken)
	if err != nil {
		log.WithError(err).Debug("refresh token отклонен")
		return authapimodels.JWTResponse{}, ErrInvalidToken
	}
	user, err := i.employees.GetByID(userID)
	if err != nil {
		return authapimodels.JWTResponse{}, errors.Wrap(err, "ошибка получения пользователя")
	}
	if user == nil || !user.IsActive() {
		return authapimodels.JWTResponse{}, ErrInvalidToken
	}
	return i.issueTokens(*user)
}

func (i impl) ChangePassword(req authapimodels.ChangePasswordRequest, actor models.Actor) error {
	if err := req.Validate(); err != nil {
		return apperror.BadRequest(err.Error())
	}
	user, err := i.activeUser(actor.UserID)
	if err != nil {
		return err
	}
	if !CheckPassword(user.Password, req.CurrentPassword) {
		return apperror.BadRequest("текущий пароль указан неверно")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(err, "ошибка хеширования пароля")
	}
	if err = i.employees.Update(user.ID, map[string]interface{}{"password": string(hash)}); err != nil {
		return errors.Wrap(err, "ошибка сохранения пароля")
	}
	i.auditor.LogActorEvent(models.EventPasswordChange, actor, "Пароль изменен пользователем")
	return nil
}

// CheckPassword сравнивает пароль с bcrypt хешем
func CheckPassword(hash, password string) bool {
	if hash == "" || password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (i impl) activeUser(userID string) (*dbmodels.Employee, error) {
	user, err := i.employees.GetByID(userID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения пользователя")
	}
	if user == nil || !user.IsActive() {
		return nil, apperror.NotFound("пользователь не найден")
	}
	return user, nil
}

func (i impl) issueTokens(user dbmodels.Employee) (authapimodels.JWTResponse, error) {
	token, err := authutils.GetToken(user.ID, user.Name, user.EmployeeID, user.Role)
	if err != nil {
		return authapimodels.JWTResponse{}, errors.Wrap(err, "ошибка генерации JWT")
	}
	refreshToken, err := authutils.GetRefreshToken(user.ID, user.Name)
	if err != nil {
		return authapimodels.JWTResponse{}, errors.Wrap(err, "ошибка генерации refresh token")
	}
	return authapimodels.JWTResponse{
		Token:        token,
		RefreshToken: refreshToken,
		TokenType:    authapimodels.TokenTypeBearer,
		ExpiresIn:    config.Conf.Auth.JWTExpireInSec,
		EmployeeID:   user.EmployeeID,
		Name:         user.Name,
		Role:         user.Role,
	}, nil
}

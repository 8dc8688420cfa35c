package authutils

import (
	"hr-payroll-backend/config"
	"hr-payroll-backend/models"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

func GetToken(userID, name, employeeID string, role models.UserRole) (tokenString string, err error) {
	claims := jwt.MapClaims{
		"name":        name,
		"sub":         userID,
		"employee_id": employeeID,
		"role":        string(role),
		"typ":         tokenTypeAccess,
		"exp":         time.Now().Add(time.Second * time.Duration(config.Conf.Auth.JWTExpireInSec)).Unix(),
		"iat":         time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.Conf.Auth.JWTSecret))
}

func GetRefreshToken(userID, name string) (tokenString string, err error) {
	claims := jwt.MapClaims{
		"name": name,
		"sub":  userID,
		"typ":  tokenTypeRefresh,
		"exp":  time.Now().Add(time.Second * time.Duration(config.Conf.Auth.JWTRefreshExpireInSec)).Unix(),
		"iat":  time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.Conf.Auth.JWTSecret))
}

// ParseRefreshToken проверяет подпись и срок refresh токена, возвращает ID пользователя
func ParseRefreshToken(tokenString string) (userID string, err error) {
	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(config.Conf.Auth.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", errors.Wrap(err, "недействительный refresh token")
	}
	if typ, _ := claims["typ"].(string); typ != tokenTypeRefresh {
		return "", errors.New("передан токен неверного типа")
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", errors.New("в токене отсутствует пользователь")
	}
	return sub, nil
}

func GetClaims(ctx *fiber.Ctx) jwt.MapClaims {
	token, ok := ctx.Locals("user").(*jwt.Token)
	if !ok {
		return jwt.MapClaims{}
	}
	return token.Claims.(jwt.MapClaims)
}

func GetUserID(ctx *fiber.Ctx) string {
	if sub, ok := GetClaims(ctx)["sub"].(string); ok {
		return sub
	}
	return ""
}

func GetRole(ctx *fiber.Ctx) models.UserRole {
	if role, ok := GetClaims(ctx)["role"].(string); ok {
		return models.UserRole(role)
	}
	return ""
}

func GetName(ctx *fiber.Ctx) string {
	if name, ok := GetClaims(ctx)["name"].(string); ok {
		return name
	}
	return ""
}

// IsAccessToken refresh токен не дает доступа к api
func IsAccessToken(ctx *fiber.Ctx) bool {
	typ, _ := GetClaims(ctx)["typ"].(string)
	return typ == tokenTypeAccess
}

// Package apperror ошибки бизнес-логики с HTTP статусом ответа
package apperror

import (
	"net/http"

	"github.com/pkg/errors"
)

type AppError struct {
	Message    string
	HTTPStatus int
}

func (e *AppError) Error() string {
	return e.Message
}

func New(message string, httpStatus int) *AppError {
	return &AppError{Message: message, HTTPStatus: httpStatus}
}

func BadRequest(message string) error {
	return New(message, http.StatusBadRequest)
}

func NotFound(message string) error {
	return New(message, http.StatusNotFound)
}

func Unauthorized(message string) error {
	return New(message, http.StatusUnauthorized)
}

func Forbidden(message string) error {
	return New(message, http.StatusForbidden)
}

func Conflict(message string) error {
	return New(message, http.StatusConflict)
}

// Status HTTP статус для ошибки, 500 для всех ошибок не из этого пакета
func Status(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

// IsNotFound ошибка с кодом 404
func IsNotFound(err error) bool {
	return Status(err) == http.StatusNotFound
}

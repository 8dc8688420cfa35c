package validation

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

const PasswordMinLength = 8

var forbiddenPasswordPatterns = []string{
	"password", "123456", "admin", "user", "login",
	"qwerty", "abc123", "password123",
}

var (
	upperRe   = regexp.MustCompile(`[A-Z]`)
	lowerRe   = regexp.MustCompile(`[a-z]`)
	digitRe   = regexp.MustCompile(`[0-9]`)
	specialRe = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

// Password проверяет пароль на соответствие парольной политике.
// confirm == nil - подтверждение не проверяется
func Password(password string, confirm *string) error {
	if password == "" {
		return errors.New("не указан пароль")
	}
	var problems []string
	if len(password) < PasswordMinLength {
		problems = append(problems, "пароль должен содержать не менее 8 символов")
	}
	if !upperRe.MatchString(password) {
		problems = append(problems, "пароль должен содержать заглавную букву")
	}
	if !lowerRe.MatchString(password) {
		problems = append(problems, "пароль должен содержать строчную букву")
	}
	if !digitRe.MatchString(password) {
		problems = append(problems, "пароль должен содержать цифру")
	}
	if !specialRe.MatchString(password) {
		problems = append(problems, "пароль должен содержать специальный символ")
	}
	lower := strings.ToLower(password)
	for _, pattern := range forbiddenPasswordPatterns {
		if strings.Contains(lower, pattern) {
			problems = append(problems, "пароль не может содержать '"+pattern+"'")
			break
		}
	}
	if confirm != nil && password != *confirm {
		problems = append(problems, "пароли не совпадают")
	}
	if len(problems) != 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

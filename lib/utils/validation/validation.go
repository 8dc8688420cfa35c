package validation

import (
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var (
	once     sync.Once
	instance *validator.Validate
)

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

func get() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return usernameRe.MatchString(fl.Field().String())
		})
		instance = v
	})
	return instance
}

// Struct проверяет структуру по тегам validate и возвращает первую ошибку в читаемом виде
func Struct(s any) error {
	err := get().Struct(s)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return errors.Wrap(err, "ошибка валидации")
	}
	return mapFieldError(errs[0])
}

func mapFieldError(e validator.FieldError) error {
	field := e.Field()
	switch e.Tag() {
	case "required":
		return errors.Errorf("поле %s обязательно для заполнения", field)
	case "min":
		if e.Kind() == reflect.String {
			return errors.Errorf("поле %s должно содержать не менее %s символов", field, e.Param())
		}
		return errors.Errorf("поле %s должно быть не меньше %s", field, e.Param())
	case "max":
		if e.Kind() == reflect.String {
			return errors.Errorf("поле %s должно содержать не более %s символов", field, e.Param())
		}
		return errors.Errorf("поле %s должно быть не больше %s", field, e.Param())
	case "gte":
		return errors.Errorf("поле %s должно быть не меньше %s", field, e.Param())
	case "lte":
		return errors.Errorf("поле %s должно быть не больше %s", field, e.Param())
	case "email":
		return errors.Errorf("поле %s должно содержать корректный email", field)
	case "oneof":
		return errors.Errorf("поле %s должно принимать одно из значений: %s", field, e.Param())
	case "username":
		return errors.Errorf("поле %s может содержать только латинские буквы, цифры, точку, дефис и подчеркивание", field)
	}
	return errors.Errorf("поле %s заполнено некорректно", field)
}

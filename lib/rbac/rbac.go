package rbac

import (
	"hr-payroll-backend/models"
	"slices"
	"strings"

	"github.com/pkg/errors"
)

type Provider interface {
	GetRuleFunc(method, path string) (models.RbacFunc, bool)
	RegisterRule(module models.Module, permission models.Permission, roles []models.UserRole, swaggerPattern string, handler models.RbacFunc)
	GetPermissions(role models.UserRole) map[models.Module][]models.Permission
}

var Instance Provider

func NewHandler() {
	i := &impl{
		rules:       map[HTTPMethod]*methodRules{},
		permissions: map[models.UserRole]map[models.Module][]models.Permission{},
	}
	Instance = i
	i.initRules()
}

type impl struct {
	rules       map[HTTPMethod]*methodRules
	permissions map[models.UserRole]map[models.Module][]models.Permission
}

func (i *impl) GetRuleFunc(method, path string) (models.RbacFunc, bool) {
	rules, ok := i.rules[HTTPMethod(strings.ToUpper(method))]
	if !ok {
		return nil, false
	}
	path = normalizePath(path)
	if handler, ok := rules.exact[path]; ok {
		return handler, true
	}
	segments := splitPath(path)
	for _, tmpl := range rules.templates {
		if tmpl.match(segments) {
			return tmpl.handler, true
		}
	}
	return nil, false
}

// RegisterRule паникует на шаблоне без метода, правила регистрируются при старте
func (i *impl) RegisterRule(module models.Module, permission models.Permission, roles []models.UserRole, swaggerPattern string, handler models.RbacFunc) {
	path, method, err := parseSwaggerPattern(swaggerPattern)
	if err != nil {
		panic(err.Error())
	}
	i.addPermission(module, permission, roles)

	if handler == nil {
		handler = AllowByRoleFunc(roles)
	}
	rules, ok := i.rules[method]
	if !ok {
		rules = &methodRules{exact: map[string]models.RbacFunc{}}
		i.rules[method] = rules
	}
	if !strings.ContainsAny(path, "{*") {
		rules.exact[path] = handler
		return
	}
	rules.templates = append(rules.templates, newRouteTemplate(path, handler))
}

// addPermission права роли по разделам для интерфейса
func (i *impl) addPermission(module models.Module, permission models.Permission, roles []models.UserRole) {
	for _, role := range roles {
		modules, ok := i.permissions[role]
		if !ok {
			modules = map[models.Module][]models.Permission{}
			i.permissions[role] = modules
		}
		if slices.Contains(modules[module], permission) {
			continue
		}
		modules[module] = append(modules[module], permission)
	}
}

func (i *impl) GetPermissions(role models.UserRole) map[models.Module][]models.Permission {
	return i.permissions[role]
}

func AllowFunc() models.RbacFunc {
	return func(userID string, role models.UserRole, uri string) bool {
		return true
	}
}

func AllowByRoleFunc(accessRoles []models.UserRole) models.RbacFunc {
	allowed := make(map[models.UserRole]struct{}, len(accessRoles))
	for _, role := range accessRoles {
		allowed[role] = struct{}{}
	}
	return func(userID string, role models.UserRole, uri string) bool {
		_, ok := allowed[role]
		return ok
	}
}

// parseSwaggerPattern разбирает строку вида "/api/v1/employees [post]"
func parseSwaggerPattern(pattern string) (string, HTTPMethod, error) {
	pattern = strings.TrimSpace(pattern)
	open := strings.LastIndex(pattern, "[")
	if open == -1 || !strings.HasSuffix(pattern, "]") {
		return "", "", errors.Errorf("в шаблоне не указан метод (%v)", pattern)
	}
	method := strings.TrimSpace(pattern[open+1 : len(pattern)-1])
	if method == "" {
		return "", "", errors.Errorf("в шаблоне не указан метод (%v)", pattern)
	}
	return normalizePath(pattern[:open]), HTTPMethod(strings.ToUpper(method)), nil
}

func normalizePath(path string) string {
	parts := strings.Split(strings.TrimSpace(path), "/")
	segments := parts[:0]
	for _, part := range parts {
		if part != "" {
			segments = append(segments, part)
		}
	}
	return "/" + strings.Join(segments, "/")
}

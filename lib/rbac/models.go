package rbac

import (
	"hr-payroll-backend/models"
	"strings"
)

type HTTPMethod string

const (
	GET    HTTPMethod = "GET"
	POST   HTTPMethod = "POST"
	PUT    HTTPMethod = "PUT"
	DELETE HTTPMethod = "DELETE"
	PATCH  HTTPMethod = "PATCH"
)

// methodRules правила одного метода: точные пути и шаблоны с параметрами
type methodRules struct {
	exact     map[string]models.RbacFunc
	templates []routeTemplate
}

// routeTemplate шаблон вида /api/v1/employees/{id}/photo, разобранный по сегментам
type routeTemplate struct {
	source   string
	segments []string
	handler  models.RbacFunc
}

func newRouteTemplate(path string, handler models.RbacFunc) routeTemplate {
	return routeTemplate{
		source:   path,
		segments: splitPath(path),
		handler:  handler,
	}
}

// match {param} совпадает с одним непустым сегментом, * в конце шаблона с любым остатком пути
func (r routeTemplate) match(segments []string) bool {
	for idx, tmpl := range r.segments {
		if tmpl == "*" && idx == len(r.segments)-1 {
			return true
		}
		if idx >= len(segments) {
			return false
		}
		if isParamSegment(tmpl) {
			if segments[idx] == "" {
				return false
			}
			continue
		}
		if tmpl != segments[idx] {
			return false
		}
	}
	return len(segments) == len(r.segments)
}

func isParamSegment(segment string) bool {
	return strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}")
}

func splitPath(path string) []string {
	return strings.Split(strings.Trim(path, "/"), "/")
}

package rbac

import (
	"hr-payroll-backend/models"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRbac(t *testing.T) {
	t.Run(`шаблон с параметром`, func(t *testing.T) {
		path, method, err := parseSwaggerPattern("/api/v1/employees/{id}/photo [post]")
		require.Nil(t, err)
		require.Equal(t, POST, method)
		tmpl := newRouteTemplate(path, AllowFunc())

		require.True(t, tmpl.match(splitPath("/api/v1/employees/123-321/photo")))
		require.False(t, tmpl.match(splitPath("/api/v1/employees/photo")))
		require.False(t, tmpl.match(splitPath("/api/v1/employees/1/photo/extra")))

		path, method, err = parseSwaggerPattern("/api/v1/security/backups/{name}/verify [get]")
		require.Nil(t, err)
		require.Equal(t, GET, method)
		tmpl = newRouteTemplate(path, AllowFunc())

		require.True(t, tmpl.match(splitPath("/api/v1/security/backups/backup_20240506_100000/verify")))
		require.False(t, tmpl.match(splitPath("/api/v1/security/backups/verify")))
	})
	t.Run(`шаблон с остатком пути`, func(t *testing.T) {
		tmpl := newRouteTemplate("/api/v1/files/*", AllowFunc())
		require.True(t, tmpl.match(splitPath("/api/v1/files/a/b/c")))
		require.False(t, tmpl.match(splitPath("/api/v1/other/a")))
	})
	t.Run(`нормализация пути`, func(t *testing.T) {
		require.Equal(t, "/", normalizePath(""))
		require.Equal(t, "/api/v1/chat/rooms/join", normalizePath("api//v1/chat/rooms/join/"))
	})
	t.Run(`pattern without method`, func(t *testing.T) {
		_, _, err := parseSwaggerPattern("/api/v1/employees")
		require.Error(t, err)
	})
}

func TestRules(t *testing.T) {
	NewHandler()
	check := func(method, path string, role models.UserRole) bool {
		handler, found := Instance.GetRuleFunc(method, path)
		if !found {
			return false
		}
		return handler("u1", role, path)
	}
	t.Run("раздел безопасности только администратору", func(t *testing.T) {
		require.True(t, check("GET", "/api/v1/security/dashboard", models.AdminRole))
		require.False(t, check("GET", "/api/v1/security/dashboard", models.HRRole))
		require.True(t, check("POST", "/api/v1/security/backups/backup_1/restore", models.AdminRole))
		require.False(t, check("POST", "/api/v1/security/backups/backup_1/restore", models.HRRole))
	})
	t.Run("кадровые разделы", func(t *testing.T) {
		require.True(t, check("POST", "/api/v1/employees", models.HRRole))
		require.False(t, check("POST", "/api/v1/employees", models.EmployeeRole))
		require.True(t, check("POST", "/api/v1/payroll/generate", models.HRRole))
		require.False(t, check("POST", "/api/v1/payroll/generate", models.EmployeeRole))
	})
	t.Run("самообслуживание сотрудника", func(t *testing.T) {
		require.True(t, check("GET", "/api/v1/leaves/my", models.EmployeeRole))
		require.False(t, check("GET", "/api/v1/leaves", models.EmployeeRole))
		require.True(t, check("GET", "/api/v1/payroll/p1/payslip", models.EmployeeRole))
		require.True(t, check("POST", "/api/v1/chat/rooms/r1/messages", models.EmployeeRole))
		require.True(t, check("GET", "/api/v1/employees/e1/photo", models.EmployeeRole))
		require.False(t, check("GET", "/api/v1/employees/e1", models.EmployeeRole))
	})
	t.Run("точный путь важнее шаблона", func(t *testing.T) {
		require.True(t, check("POST", "/api/v1/chat/rooms/join/", models.EmployeeRole))
	})
	t.Run("неизвестный путь", func(t *testing.T) {
		_, found := Instance.GetRuleFunc("GET", "/api/v1/unknown")
		require.False(t, found)
	})
	t.Run("права для интерфейса", func(t *testing.T) {
		permissions := Instance.GetPermissions(models.EmployeeRole)
		require.NotContains(t, permissions, models.SecurityModule)
		require.Contains(t, permissions[models.LeaveModule], models.SelfPermission)
		require.Contains(t, Instance.GetPermissions(models.AdminRole), models.BackupModule)
	})
}

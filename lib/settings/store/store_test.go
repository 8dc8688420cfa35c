package settingsstore

import (
	"hr-payroll-backend/lib/utils/testdb"
	"hr-payroll-backend/models"
	dbmodels "hr-payroll-backend/models/db"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestGetValue(t *testing.T) {
	t.Run("найдена", func(t *testing.T) {
		db, mock := testdb.New(t)
		mock.ExpectQuery(`SELECT \* FROM "settings" WHERE setting_name = \$1 ORDER BY "settings"."id" LIMIT \$2`).
			WithArgs("company_name", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "setting_name", "setting_value"}).
				AddRow("s1", "company_name", "ООО Ромашка"))
		value, found, err := NewInstance(db).GetValue(models.SettingCompanyName)
		require.NoError(t, err)
		require.True(t, found)
		require.Equal(t, "ООО Ромашка", value)
		require.NoError(t, mock.ExpectationsWereMet())
	})
	t.Run("отсутствует", func(t *testing.T) {
		db, mock := testdb.New(t)
		mock.ExpectQuery(`SELECT \* FROM "settings"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		value, found, err := NewInstance(db).GetValue(models.SettingTaxRate)
		require.NoError(t, err)
		require.False(t, found)
		require.Empty(t, value)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpsert(t *testing.T) {
	db, mock := testdb.New(t)
	mock.ExpectExec(`INSERT INTO "settings" .* ON CONFLICT \("setting_name"\) DO UPDATE SET "setting_value"="excluded"."setting_value"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	err := NewInstance(db).Upsert(dbmodels.Setting{
		SettingName:  models.SettingTaxRate,
		SettingValue: "0.13",
		UpdatedBy:    "adm",
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

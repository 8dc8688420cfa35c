package settingshandler

import (
	"context"
	filestorage "hr-payroll-backend/lib/file-storage"
	"hr-payroll-backend/lib/utils/apperror"
	"hr-payroll-backend/models"
	settingsapimodels "hr-payroll-backend/models/api/settings"
	dbmodels "hr-payroll-backend/models/db"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	values map[models.SettingCode]dbmodels.Setting
}

func (f *fakeStore) List() (list []dbmodels.Setting, err error) {
	for _, rec := range f.values {
		list = append(list, rec)
	}
	return list, nil
}

func (f *fakeStore) GetValue(code models.SettingCode) (string, bool, error) {
	rec, ok := f.values[code]
	return rec.SettingValue, ok, nil
}

func (f *fakeStore) Upsert(rec dbmodels.Setting) error {
	f.values[rec.SettingName] = rec
	return nil
}

func (f *fakeStore) Count() (int64, error) { return int64(len(f.values)), nil }

type fakeFiles struct {
	uploaded []string
	deleted  []string
}

func (f *fakeFiles) Upload(ctx context.Context, info dbmodels.UploadFileInfo, body []byte) (string, error) {
	fileID := "logo" + string(rune('0'+len(f.uploaded)+1))
	f.uploaded = append(f.uploaded, fileID)
	return fileID, nil
}

func (f *fakeFiles) Get(ctx context.Context, fileID string) ([]byte, *dbmodels.FileStorage, error) {
	return []byte("png"), &dbmodels.FileStorage{ContentType: "image/png"}, nil
}

func (f *fakeFiles) GetByOwner(ctx context.Context, ownerID string, fileType dbmodels.FileType) ([]byte, *dbmodels.FileStorage, error) {
	return nil, nil, filestorage.ErrNotFound
}

func (f *fakeFiles) Delete(ctx context.Context, fileID string) error {
	f.deleted = append(f.deleted, fileID)
	return nil
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

func newImpl() (impl, *fakeStore, *fakeFiles, *fakeAuditor) {
	store := &fakeStore{values: map[models.SettingCode]dbmodels.Setting{}}
	files := &fakeFiles{}
	auditor := &fakeAuditor{}
	return impl{store: store, files: files, auditor: auditor, uploadMaxMb: 16}, store, files, auditor
}

func TestEnsureDefaults(t *testing.T) {
	i, store, _, _ := newImpl()
	require.Equal(t, "Federal Agency", i.CompanyName())

	require.NoError(t, i.EnsureDefaults())
	require.Len(t, store.values, len(models.DefaultSettings))
	require.Equal(t, "0.12", store.values[models.SettingTaxRate].SettingValue)

	store.values[models.SettingTaxRate] = dbmodels.Setting{SettingName: models.SettingTaxRate, SettingValue: "0.2"}
	require.NoError(t, i.EnsureDefaults())
	require.Equal(t, "0.2", store.values[models.SettingTaxRate].SettingValue)
}

func TestUpdate(t *testing.T) {
	i, store, _, auditor := newImpl()
	actor := models.Actor{UserID: "adm", Role: models.AdminRole}

	t.Run("известные настройки", func(t *testing.T) {
		err := i.Update(settingsapimodels.UpdateRequest{Values: map[models.SettingCode]string{
			models.SettingCompanyName: " ООО Ромашка ",
		}}, actor)
		require.NoError(t, err)
		require.Equal(t, "ООО Ромашка", i.CompanyName())
		require.Equal(t, "adm", store.values[models.SettingCompanyName].UpdatedBy)
		require.Equal(t, []models.SecurityEvent{models.EventSettingsUpdated}, auditor.events)
	})
	t.Run("неизвестная настройка", func(t *testing.T) {
		err := i.Update(settingsapimodels.UpdateRequest{Values: map[models.SettingCode]string{"debug": "1"}}, actor)
		require.Equal(t, http.StatusBadRequest, apperror.Status(err))
	})
	t.Run("логотип только через загрузку", func(t *testing.T) {
		err := i.Update(settingsapimodels.UpdateRequest{Values: map[models.SettingCode]string{models.SettingSystemLogo: "x"}}, actor)
		require.Equal(t, http.StatusBadRequest, apperror.Status(err))
	})
}

func TestLogo(t *testing.T) {
	ctx := context.Background()
	i, store, files, _ := newImpl()
	actor := models.Actor{UserID: "adm", Role: models.AdminRole}

	_, _, err := i.GetLogo(ctx)
	require.ErrorIs(t, err, filestorage.ErrNotFound)

	err = i.UploadLogo(ctx, "logo.exe", "application/octet-stream", []byte("MZ"), actor)
	require.Equal(t, http.StatusBadRequest, apperror.Status(err))

	require.NoError(t, i.UploadLogo(ctx, "logo.png", "image/png", []byte("png"), actor))
	require.NoError(t, i.UploadLogo(ctx, "logo.png", "image/png", []byte("png"), actor))
	require.Equal(t, "logo2", store.values[models.SettingSystemLogo].SettingValue)
	require.Equal(t, []string{"logo1"}, files.deleted)

	body, contentType, err := i.GetLogo(ctx)
	require.NoError(t, err)
	require.Equal(t, []byte("png"), body)
	require.Equal(t, "image/png", contentType)
}

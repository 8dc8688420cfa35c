package backup

import (
	"context"
	"os"
	"path"

	s3client "hr-payroll-backend/s3"
)

const offsitePrefix = "backups"

type s3Offsite struct {
	client s3client.Provider
}

// NewS3Offsite копии сохраняются в bucket по ключу backups/<имя файла>
func NewS3Offsite(client s3client.Provider) Offsite {
	return s3Offsite{client: client}
}

func (o s3Offsite) Upload(ctx context.Context, name string, filePath string) error {
	f, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer f.Close()
	stat, err := f.Stat()
	if err != nil {
		return err
	}
	return o.client.PutObject(ctx, path.Join(offsitePrefix, name), f, stat.Size(), "application/octet-stream")
}

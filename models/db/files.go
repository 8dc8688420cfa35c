package dbmodels

type FileStorage struct {
	BaseModel
	Name        string   `gorm:"type:varchar(255)"`
	OwnerID     string   `gorm:"type:varchar(36);index"` // сотрудник или отклик
	Type        FileType `gorm:"type:varchar(50);index"`
	ContentType string   `gorm:"type:varchar(100)"`
	Size        int64
	Location    string `gorm:"type:varchar(10)"` // s3 | local
}

type FileType string

const (
	EmployeePhoto     FileType = "employee_photo"
	EmployeeQrCode    FileType = "employee_qr_code"
	ApplicationResume FileType = "application_resume"
	SystemLogo        FileType = "system_logo"
)

type UploadFileInfo struct {
	OwnerID     string
	FileName    string
	FileType    FileType
	ContentType string
}

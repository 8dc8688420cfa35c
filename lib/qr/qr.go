package qr

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"
)

const badgeSize = 300

// EmployeeBadge PNG с табельным номером, который считывает киоск учета времени
func EmployeeBadge(employeeID string) ([]byte, error) {
	employeeID = strings.TrimSpace(employeeID)
	if employeeID == "" {
		return nil, errors.New("не указан табельный номер для QR кода")
	}
	png, err := qrcode.Encode(employeeID, qrcode.High, badgeSize)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования QR кода")
	}
	return png, nil
}

package validation

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

var (
	ImageExtensions  = []string{"png", "jpg", "jpeg", "gif"}
	LogoExtensions   = []string{"png", "jpg", "jpeg", "gif", "svg"}
	ResumeExtensions = []string{"pdf", "doc", "docx", "txt"}
)

const suspiciousScanSize = 1024

var suspiciousPatterns = [][]byte{
	[]byte("<?php"),
	[]byte("<script"),
	[]byte("javascript:"),
	[]byte("vbscript:"),
}

// FileExt расширение файла в нижнем регистре без точки
func FileExt(fileName string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))
}

// Upload проверяет загружаемый файл: расширение, размер и подозрительное содержимое в первом килобайте
func Upload(fileName string, body []byte, allowed []string, maxSizeMb int) error {
	if fileName == "" {
		return errors.New("файл не выбран")
	}
	ext := FileExt(fileName)
	if ext == "" {
		return errors.New("неверный формат файла")
	}
	extAllowed := false
	for _, item := range allowed {
		if item == ext {
			extAllowed = true
			break
		}
	}
	if !extAllowed {
		return errors.Errorf("недопустимый тип файла, разрешены: %s", strings.Join(allowed, ", "))
	}
	if maxSizeMb > 0 && len(body) > maxSizeMb*1024*1024 {
		return errors.Errorf("файл слишком большой, максимальный размер: %dMB", maxSizeMb)
	}
	head := body
	if len(head) > suspiciousScanSize {
		head = head[:suspiciousScanSize]
	}
	head = bytes.ToLower(head)
	for _, pattern := range suspiciousPatterns {
		if bytes.Contains(head, pattern) {
			return errors.New("файл содержит потенциально опасное содержимое")
		}
	}
	return nil
}

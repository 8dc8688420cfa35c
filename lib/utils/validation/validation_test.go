package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type sample struct {
	Username string  `json:"username" validate:"required,min=3,max=50,username"`
	Rate     float64 `json:"rate" validate:"gte=0,lte=100"`
}

func TestStruct(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		require.NoError(t, Struct(sample{Username: "john.doe", Rate: 10}))
	})
	t.Run("required uses json name", func(t *testing.T) {
		err := Struct(sample{})
		require.Error(t, err)
		require.Contains(t, err.Error(), "username")
		require.Contains(t, err.Error(), "обязательно")
	})
	t.Run("custom username tag", func(t *testing.T) {
		err := Struct(sample{Username: "john doe"})
		require.Error(t, err)
		require.Contains(t, err.Error(), "латинские")
	})
	t.Run("range", func(t *testing.T) {
		err := Struct(sample{Username: "john", Rate: 101})
		require.Error(t, err)
		require.Contains(t, err.Error(), "rate")
	})
}

func TestPassword(t *testing.T) {
	t.Run("strong password", func(t *testing.T) {
		require.NoError(t, Password("Str0ng!Pass", nil))
	})
	t.Run("weak password lists every problem", func(t *testing.T) {
		err := Password("abc", nil)
		require.Error(t, err)
		msg := err.Error()
		require.Contains(t, msg, "не менее 8")
		require.Contains(t, msg, "заглавную")
		require.Contains(t, msg, "цифру")
		require.Contains(t, msg, "специальный")
	})
	t.Run("forbidden pattern", func(t *testing.T) {
		err := Password("MyPassword1!", nil)
		require.Error(t, err)
		require.Contains(t, err.Error(), "'password'")
	})
	t.Run("confirmation mismatch", func(t *testing.T) {
		confirm := "Str0ng!Pasz"
		err := Password("Str0ng!Pass", &confirm)
		require.Error(t, err)
		require.Contains(t, err.Error(), "не совпадают")
	})
}

func TestUpload(t *testing.T) {
	t.Run("allowed resume", func(t *testing.T) {
		require.NoError(t, Upload("cv.PDF", []byte("%PDF-1.4"), ResumeExtensions, 16))
	})
	t.Run("extension not allowed", func(t *testing.T) {
		require.Error(t, Upload("cv.exe", []byte("MZ"), ResumeExtensions, 16))
	})
	t.Run("no extension", func(t *testing.T) {
		require.Error(t, Upload("resume", []byte("text"), ResumeExtensions, 16))
	})
	t.Run("too large", func(t *testing.T) {
		body := make([]byte, 1024*1024+1)
		require.Error(t, Upload("cv.txt", body, ResumeExtensions, 1))
	})
	t.Run("suspicious content in first kilobyte", func(t *testing.T) {
		require.Error(t, Upload("cv.txt", []byte("hello <SCRIPT>alert(1)</script>"), ResumeExtensions, 16))
	})
	t.Run("suspicious content after first kilobyte is ignored", func(t *testing.T) {
		body := strings.Repeat("a", 2048) + "<?php"
		require.NoError(t, Upload("cv.txt", []byte(body), ResumeExtensions, 16))
	})
}

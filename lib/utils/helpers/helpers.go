package helpers

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"
)

func IsContextDone(ctx context.Context) bool {
	if ctx == nil {
		return true
	}
	select {
	case <-ctx.Done():
		return true
	default:
	}
	return false
}

// NextSequenceID следующий идентификатор вида <prefix><число>: максимальный числовой суффикс + 1
// с дополнением нулями до width знаков. Значения с другим префиксом или нечисловым суффиксом пропускаются
func NextSequenceID(prefix string, width int, existing []string) string {
	maxNum := 0
	for _, id := range existing {
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		num, err := strconv.Atoi(strings.TrimPrefix(id, prefix))
		if err != nil || num < 0 {
			continue
		}
		if num > maxNum {
			maxNum = num
		}
	}
	return prefix + leftPad(strconv.Itoa(maxNum+1), width)
}

func leftPad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

// MonthBounds первый и последний день периода YYYY-MM в формате YYYY-MM-DD
func MonthBounds(period string) (from, to string, err error) {
	start, err := time.Parse("2006-01", period)
	if err != nil {
		return "", "", err
	}
	end := start.AddDate(0, 1, -1)
	return start.Format(time.DateOnly), end.Format(time.DateOnly), nil
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

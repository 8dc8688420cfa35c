package apimodels

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPagination(t *testing.T) {
	t.Run("значения по умолчанию", func(t *testing.T) {
		page, limit := Pagination{}.GetPage()
		require.Equal(t, 1, page)
		require.Equal(t, DefaultPageLimit, limit)
	})
	t.Run("лимит ограничен", func(t *testing.T) {
		page, limit := Pagination{Page: 3, Limit: 500}.GetPage()
		require.Equal(t, 3, page)
		require.Equal(t, MaxPageLimit, limit)
	})
	t.Run("отрицательная страница", func(t *testing.T) {
		page, _ := Pagination{Page: -2, Limit: 5}.GetPage()
		require.Equal(t, 1, page)
	})
}

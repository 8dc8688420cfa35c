package leaveapimodels

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestValidateDateRange(t *testing.T) {
	now := time.Date(2025, 8, 15, 10, 0, 0, 0, time.UTC)
	t.Run("valid range", func(t *testing.T) {
		require.NoError(t, ValidateDateRange("2025-08-20", "2025-08-22", now))
	})
	t.Run("same day", func(t *testing.T) {
		require.NoError(t, ValidateDateRange("2025-08-20", "2025-08-20", now))
	})
	t.Run("start after end", func(t *testing.T) {
		require.Error(t, ValidateDateRange("2025-08-22", "2025-08-20", now))
	})
	t.Run("more than a year ahead", func(t *testing.T) {
		require.Error(t, ValidateDateRange("2026-09-01", "2026-09-02", now))
	})
	t.Run("bad format", func(t *testing.T) {
		require.Error(t, ValidateDateRange("20.08.2025", "2025-08-22", now))
	})
}

func TestDecisionRequest(t *testing.T) {
	require.NoError(t, DecisionRequest{Status: "Approved"}.Validate())
	require.NoError(t, DecisionRequest{Status: "Rejected"}.Validate())
	require.Error(t, DecisionRequest{Status: "Pending"}.Validate())
}

package services

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvaluateEligibility(t *testing.T) {
	tests := []struct {
		name     string
		scheme   string
		age      int
		income   float64
		eligible bool
	}{
		{"scholarship ok", "post-matric-scholarship", 20, 200000, true},
		{"scholarship too old", "post-matric-scholarship", 35, 200000, false},
		{"scholarship too young", "post-matric-scholarship", 14, 0, false},
		{"scholarship income cap", "post-matric-scholarship", 20, 300000, false},
		{"pension ok", "old-age-pension", 65, 100000, true},
		{"pension under age", "old-age-pension", 59, 0, false},
		{"housing ok", "housing-assistance", 30, 250000, true},
		{"housing income cap", "housing-assistance", 30, 350000, false},
		{"skill upper bound", "skill-development", 45, 400000, true},
		{"skill over age", "skill-development", 46, 400000, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			eligible, reason, err := evaluate(tc.scheme, tc.age, tc.income)
			require.NoError(t, err)
			require.Equal(t, tc.eligible, eligible)
			require.NotEmpty(t, reason)
		})
	}
}

func TestEvaluateRejectsBadInput(t *testing.T) {
	_, _, err := evaluate("no-such-scheme", 30, 0)
	require.Error(t, err)

	_, _, err = evaluate("old-age-pension", 0, 0)
	require.Error(t, err)

	_, _, err = evaluate("old-age-pension", 65, -1)
	require.Error(t, err)
}

package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"momo-wallet/internal/momowallet/data"
)

func TestTransition(t *testing.T) {
	tests := []struct {
		name     string
		current  data.Status
		next     data.Status
		expected data.Status
		rejected bool
	}{
		{
			name:     "processing to completed",
			current:  data.ProcessingStatus,
			next:     data.CompletedStatus,
			expected: data.CompletedStatus,
		},
		{
			name:     "processing to failed",
			current:  data.ProcessingStatus,
			next:     data.FailedStatus,
			expected: data.FailedStatus,
		},
		{
			name:     "processing stays processing",
			current:  data.ProcessingStatus,
			next:     data.ProcessingStatus,
			expected: data.ProcessingStatus,
		},
		{
			name:     "completed rejects completed",
			current:  data.CompletedStatus,
			next:     data.CompletedStatus,
			rejected: true,
		},
		{
			name:     "completed rejects failed",
			current:  data.CompletedStatus,
			next:     data.FailedStatus,
			rejected: true,
		},
		{
			name:     "failed rejects completed",
			current:  data.FailedStatus,
			next:     data.CompletedStatus,
			rejected: true,
		},
		{
			name:     "failed rejects failed",
			current:  data.FailedStatus,
			next:     data.FailedStatus,
			rejected: true,
		},
		{
			name:     "failed rejects processing",
			current:  data.FailedStatus,
			next:     data.ProcessingStatus,
			rejected: true,
		},
		{
			name:     "unknown next rejected",
			current:  data.ProcessingStatus,
			next:     data.Status("REVERSED"),
			rejected: true,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			next, err := Transition(test.current, test.next)
			if test.rejected {
				assert.ErrorIs(t, err, ErrTransitionRejected)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, test.expected, next)
		})
	}
}

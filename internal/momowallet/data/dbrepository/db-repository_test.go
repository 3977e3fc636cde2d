package dbrepository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// The exactly-once and no-overdraft guarantees live in the WHERE clauses of
// these statements: each mutation is a single conditional UPDATE, decided by
// the database, so two concurrent requests cannot both succeed. Pin the
// guards so a query edit cannot silently drop them.
func TestConditionalQueriesKeepTheirGuards(t *testing.T) {
	assert.Contains(t, debitWalletQuery, "balance >= $2",
		"debit must be conditional on sufficient balance")
	assert.Contains(t, updateWithdrawalStatusIfProcessingQuery, "status = 'PROCESSING'",
		"terminal withdrawal update must be conditional on the non-terminal state")
	assert.Contains(t, updateTopupStatusIfPendingQuery, "status = 'PENDING'",
		"topup settlement must be conditional on the pending state")
	assert.Contains(t, incrementWithdrawSkipsQuery, "withdraw_skips_used < withdraw_skips_limit",
		"skip counter must stay bounded by its limit")
}

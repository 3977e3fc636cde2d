package dbrepository

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"momo-wallet/internal/momowallet/data"
	"momo-wallet/pkg/logging"
)

type DBStorage interface {
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, query string, args ...any) (pgx.Row, error)
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
	QueryValue(ctx context.Context, query string, args []any, dest []any) error
}

// DBRepository implements every store operation the services need. All
// balance mutations are single atomic statements: the debit is conditional
// on sufficient balance and the terminal status updates are conditional on
// the record still being in its non-terminal state.
type DBRepository struct {
	storage DBStorage
	logger  *logging.ZapLogger
}

func New(storage DBStorage, logger *logging.ZapLogger) *DBRepository {
	return &DBRepository{
		storage: storage,
		logger:  logger,
	}
}

//go:embed sql/select_profile.sql
var selectProfileQuery string

func (db *DBRepository) GetProfile(ctx context.Context, userID string) (data.Profile, error) {
	profile := data.Profile{UserID: userID}
	var mobile, provider *string
	err := db.storage.QueryValue(
		ctx,
		selectProfileQuery,
		[]any{userID},
		[]any{&mobile, &provider, &profile.SubscriptionTier, &profile.WithdrawSkipsUsed, &profile.WithdrawSkipsLimit},
	)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return data.Profile{}, data.ErrNoSuchProfile
		default:
			return data.Profile{}, handleSQLError(err)
		}
	}
	if mobile != nil {
		profile.Mobile = *mobile
	}
	if provider != nil {
		profile.Provider = data.Provider(*provider)
	}
	return profile, nil
}

//go:embed sql/debit_wallet.sql
var debitWalletQuery string

func (db *DBRepository) DebitWalletIfEnough(
	ctx context.Context,
	userID string,
	amount decimal.Decimal,
) (bool, error) {
	tag, err := db.storage.Exec(ctx, debitWalletQuery, userID, amount)
	if err != nil {
		return false, handleSQLError(err)
	}
	return tag.RowsAffected() == 1, nil
}

//go:embed sql/credit_wallet.sql
var creditWalletQuery string

func (db *DBRepository) CreditWallet(ctx context.Context, userID string, amount decimal.Decimal) error {
	_, err := db.storage.Exec(ctx, creditWalletQuery, userID, amount)
	if err != nil {
		return handleSQLError(err)
	}
	return nil
}

//go:embed sql/select_wallet_balance.sql
var selectWalletBalanceQuery string

func (db *DBRepository) GetWalletBalance(ctx context.Context, userID string) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := db.storage.QueryValue(ctx, selectWalletBalanceQuery, []any{userID}, []any{&balance})
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return decimal.Zero, nil
		default:
			return decimal.Zero, handleSQLError(err)
		}
	}
	return balance, nil
}

//go:embed sql/insert_withdrawal.sql
var insertWithdrawalQuery string

func (db *DBRepository) InsertWithdrawal(ctx context.Context, withdrawal data.Withdrawal) error {
	_, err := db.storage.Exec(
		ctx,
		insertWithdrawalQuery,
		withdrawal.ID,
		withdrawal.UserID,
		withdrawal.GrossAmount,
		withdrawal.FeeAmount,
		withdrawal.NetAmount,
		withdrawal.Currency,
		withdrawal.MobileNumber,
		string(withdrawal.Provider),
		string(withdrawal.Status),
		withdrawal.ExternalRef,
		withdrawal.CreatedAt,
		withdrawal.UpdatedAt,
	)
	if err != nil {
		return handleSQLError(err)
	}
	return nil
}

//go:embed sql/select_withdrawal_by_ref.sql
var selectWithdrawalByRefQuery string

func (db *DBRepository) GetWithdrawalByReference(
	ctx context.Context,
	externalRef string,
) (data.Withdrawal, error) {
	var w data.Withdrawal
	err := db.storage.QueryValue(
		ctx,
		selectWithdrawalByRefQuery,
		[]any{externalRef},
		[]any{
			&w.ID,
			&w.UserID,
			&w.GrossAmount,
			&w.FeeAmount,
			&w.NetAmount,
			&w.Currency,
			&w.MobileNumber,
			&w.Provider,
			&w.Status,
			&w.ExternalRef,
			&w.CreatedAt,
			&w.UpdatedAt,
		},
	)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return data.Withdrawal{}, data.ErrNoSuchWithdrawal
		default:
			return data.Withdrawal{}, handleSQLError(err)
		}
	}
	return w, nil
}

//go:embed sql/update_withdrawal_status.sql
var updateWithdrawalStatusQuery string

func (db *DBRepository) SetWithdrawalStatus(ctx context.Context, id string, status data.Status) error {
	_, err := db.storage.Exec(ctx, updateWithdrawalStatusQuery, id, string(status))
	if err != nil {
		return handleSQLError(err)
	}
	return nil
}

//go:embed sql/update_withdrawal_status_if_processing.sql
var updateWithdrawalStatusIfProcessingQuery string

func (db *DBRepository) SetWithdrawalStatusIfProcessing(
	ctx context.Context,
	id string,
	status data.Status,
) (bool, error) {
	tag, err := db.storage.Exec(ctx, updateWithdrawalStatusIfProcessingQuery, id, string(status))
	if err != nil {
		return false, handleSQLError(err)
	}
	return tag.RowsAffected() == 1, nil
}

//go:embed sql/select_withdrawals.sql
var selectWithdrawalsQuery string

func (db *DBRepository) GetAllUserWithdrawals(ctx context.Context, userID string) ([]data.Withdrawal, error) {
	rows, err := db.storage.Query(ctx, selectWithdrawalsQuery, userID)
	if err != nil {
		return nil, handleSQLError(err)
	}
	defer rows.Close()

	result := make([]data.Withdrawal, 0)
	for rows.Next() {
		w := data.Withdrawal{
			UserID: userID,
		}
		err := rows.Scan(
			&w.ID,
			&w.GrossAmount,
			&w.FeeAmount,
			&w.NetAmount,
			&w.Currency,
			&w.MobileNumber,
			&w.Provider,
			&w.Status,
			&w.ExternalRef,
			&w.CreatedAt,
			&w.UpdatedAt,
		)
		if err != nil {
			return nil, handleSQLError(err)
		}
		result = append(result, w)
	}
	if err := rows.Err(); err != nil {
		return nil, handleSQLError(err)
	}
	return result, nil
}

//go:embed sql/select_withdrawals_sum.sql
var selectWithdrawalsSumQuery string

func (db *DBRepository) GetTotalUserWithdraw(ctx context.Context, userID string) (decimal.Decimal, error) {
	var t *decimal.Decimal
	err := db.storage.QueryValue(ctx, selectWithdrawalsSumQuery, []any{userID}, []any{&t})
	if err != nil {
		return decimal.Zero, handleSQLError(err)
	}
	if t == nil {
		return decimal.Zero, nil
	}
	return *t, nil
}

//go:embed sql/increment_withdraw_skips.sql
var incrementWithdrawSkipsQuery string

func (db *DBRepository) IncrementWithdrawSkips(ctx context.Context, userID string) error {
	_, err := db.storage.Exec(ctx, incrementWithdrawSkipsQuery, userID)
	if err != nil {
		return handleSQLError(err)
	}
	return nil
}

//go:embed sql/insert_audit_record.sql
var insertAuditRecordQuery string

func (db *DBRepository) InsertAuditRecord(ctx context.Context, record data.AuditRecord) error {
	var reference *string
	if record.Reference != "" {
		reference = &record.Reference
	}
	_, err := db.storage.Exec(
		ctx,
		insertAuditRecordQuery,
		record.UserID,
		record.Amount,
		record.Kind,
		reference,
		record.Description,
		record.CreatedAt,
	)
	if err != nil {
		return handleSQLError(err)
	}
	return nil
}

//go:embed sql/insert_topup.sql
var insertTopupQuery string

func (db *DBRepository) InsertTopup(ctx context.Context, topup data.Topup) error {
	_, err := db.storage.Exec(
		ctx,
		insertTopupQuery,
		topup.ID,
		topup.UserID,
		topup.PhoneNumber,
		topup.Amount,
		topup.Currency,
		string(topup.Provider),
		string(topup.Status),
		topup.ExternalRef,
		topup.CreatedAt,
		topup.UpdatedAt,
	)
	if err != nil {
		return handleSQLError(err)
	}
	return nil
}

//go:embed sql/select_topup_by_ref.sql
var selectTopupByRefQuery string

func (db *DBRepository) GetTopupByReference(ctx context.Context, externalRef string) (data.Topup, error) {
	var t data.Topup
	err := db.storage.QueryValue(
		ctx,
		selectTopupByRefQuery,
		[]any{externalRef},
		[]any{
			&t.ID,
			&t.UserID,
			&t.PhoneNumber,
			&t.Amount,
			&t.Currency,
			&t.Provider,
			&t.Status,
			&t.ExternalRef,
			&t.CreatedAt,
			&t.UpdatedAt,
		},
	)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return data.Topup{}, data.ErrNoSuchTopup
		default:
			return data.Topup{}, handleSQLError(err)
		}
	}
	return t, nil
}

//go:embed sql/update_topup_status_if_pending.sql
var updateTopupStatusIfPendingQuery string

func (db *DBRepository) SetTopupStatusIfPending(
	ctx context.Context,
	id string,
	status data.TopupStatus,
) (bool, error) {
	tag, err := db.storage.Exec(ctx, updateTopupStatusIfPendingQuery, id, string(status))
	if err != nil {
		return false, handleSQLError(err)
	}
	return tag.RowsAffected() == 1, nil
}

func handleSQLError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			return data.ErrUniqueConstraintViolation
		}
	}
	return fmt.Errorf("storage error: %w", err)
}

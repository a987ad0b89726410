package spin_log_repo

import (
	"context"
	"vault_backend/internal/model"
	"vault_backend/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table           = "spin_log"
	colID           = "id"
	colUserID       = "user_id"
	colOutcomeID    = "outcome_id"
	colLabel        = "label"
	colKind         = "kind"
	colAmount       = "amount"
	colBalanceAfter = "balance_after"
	colCreatedAt    = "created_at"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewSpinLogRepository(dbc *pgxpool.Pool, getter *trmpgx.CtxGetter) repository.SpinLogRepository {
	return &repo{
		dbc:    dbc,
		getter: getter,
	}
}

func (r *repo) conn(ctx context.Context) trmpgx.Tr {
	return r.getter.DefaultTrOrDB(ctx, r.dbc)
}

// AppendSpin - пишет результат спина, вызывается в одной транзакции с обновлением баланса
func (r *repo) AppendSpin(ctx context.Context, rec *model.SpinRecord) error {
	query := sq.Insert(table).
		Columns(colUserID, colOutcomeID, colLabel, colKind, colAmount, colBalanceAfter, colCreatedAt).
		Values(rec.UserID, rec.OutcomeID, rec.Label, string(rec.Kind), rec.Amount, rec.BalanceAfter, rec.CreatedAt).
		Suffix("RETURNING " + colID).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	return r.conn(ctx).QueryRow(ctx, sqlStr, args...).Scan(&rec.ID)
}

// ListSpins - последние спины пользователя, новые первыми
func (r *repo) ListSpins(ctx context.Context, userID int, limit int) ([]model.SpinRecord, error) {
	query := sq.Select(colID, colUserID, colOutcomeID, colLabel, colKind, colAmount, colBalanceAfter, colCreatedAt).
		From(table).
		Where(sq.Eq{colUserID: userID}).
		OrderBy(colCreatedAt+" DESC", colID+" DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn(ctx).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.SpinRecord
	for rows.Next() {
		var (
			rec  model.SpinRecord
			kind string
		)
		err := rows.Scan(&rec.ID, &rec.UserID, &rec.OutcomeID, &rec.Label, &kind, &rec.Amount, &rec.BalanceAfter, &rec.CreatedAt)
		if err != nil {
			return nil, err
		}
		rec.Kind = model.OutcomeKind(kind)
		records = append(records, rec)
	}
	return records, rows.Err()
}

package wheel_repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
	"vault_backend/internal/model"
	"vault_backend/internal/repository"
	repoModel "vault_backend/internal/repository/wheel_repo/model"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table         = "wheel_config"
	colID         = "id"
	colOutcomes   = "outcomes"
	colDailyLimit = "daily_limit"
	colUpdatedAt  = "updated_at"

	// Конфиг колеса один на все приложение
	singletonID = 1
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewWheelRepository(dbc *pgxpool.Pool, getter *trmpgx.CtxGetter) repository.WheelRepository {
	return &repo{
		dbc:    dbc,
		getter: getter,
	}
}

func (r *repo) conn(ctx context.Context) trmpgx.Tr {
	return r.getter.DefaultTrOrDB(ctx, r.dbc)
}

// GetWheelConfig - текущие секторы и дневной лимит.
// Читается на каждый спин, чтобы правки админа применялись сразу
func (r *repo) GetWheelConfig(ctx context.Context) (*model.WheelConfig, error) {
	// Формируем запрос
	query := sq.Select(colOutcomes, colDailyLimit, colUpdatedAt).
		From(table).
		Where(sq.Eq{colID: singletonID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var (
		raw        []byte
		dailyLimit int
		updatedAt  time.Time
	)
	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).Scan(&raw, &dailyLimit, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrConfigUnavailable
		}
		return nil, err
	}

	var rows []repoModel.Outcome
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("decode outcomes: %w", err)
	}

	return &model.WheelConfig{
		Outcomes:   fromRows(rows),
		DailyLimit: dailyLimit,
		UpdatedAt:  updatedAt,
	}, nil
}

// SaveWheelConfig - создает или перезаписывает конфиг колеса
func (r *repo) SaveWheelConfig(ctx context.Context, cfg *model.WheelConfig) error {
	raw, err := json.Marshal(toRows(cfg.Outcomes))
	if err != nil {
		return fmt.Errorf("encode outcomes: %w", err)
	}

	updatedAt := cfg.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	// Формируем запрос на вставку, при конфликте обновляем запись
	query := sq.Insert(table).
		Columns(colID, colOutcomes, colDailyLimit, colUpdatedAt).
		Values(singletonID, raw, cfg.DailyLimit, updatedAt).
		Suffix("ON CONFLICT (" + colID + ") DO UPDATE SET " +
			colOutcomes + " = EXCLUDED." + colOutcomes + ", " +
			colDailyLimit + " = EXCLUDED." + colDailyLimit + ", " +
			colUpdatedAt + " = EXCLUDED." + colUpdatedAt).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn(ctx).Exec(ctx, sqlStr, args...)
	return err
}

func toRows(outcomes []model.Outcome) []repoModel.Outcome {
	rows := make([]repoModel.Outcome, len(outcomes))
	for i, o := range outcomes {
		rows[i] = repoModel.Outcome{
			ID:      o.ID,
			Label:   o.Label,
			Type:    string(o.Kind),
			Value:   o.Amount,
			Weight:  o.Weight,
			Premium: o.Premium,
		}
	}
	return rows
}

func fromRows(rows []repoModel.Outcome) []model.Outcome {
	outcomes := make([]model.Outcome, len(rows))
	for i, row := range rows {
		outcomes[i] = model.Outcome{
			ID:      row.ID,
			Label:   row.Label,
			Kind:    model.OutcomeKind(row.Type),
			Amount:  row.Value,
			Weight:  row.Weight,
			Premium: row.Premium,
		}
	}
	return outcomes
}

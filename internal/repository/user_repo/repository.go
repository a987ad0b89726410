package user_repo

import (
	"context"
	"errors"
	"fmt"
	"time"
	"vault_backend/internal/model"
	"vault_backend/internal/repository"
	"vault_backend/internal/repository/pgerr"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const (
	table              = "users"
	colID              = "id"
	colName            = "name"
	colEmail           = "email"
	colPasswordHash    = "password_hash"
	colBalance         = "balance"
	colIsAdmin         = "is_admin"
	colSpinCount       = "spin_count"
	colSpinWindowStart = "spin_window_start"
	colLastSpinAt      = "last_spin_at"
	colVersion         = "version"
	colCreatedAt       = "created_at"
)

var selectColumns = []string{
	colID, colName, colEmail, colPasswordHash, colBalance, colIsAdmin,
	colSpinCount, colSpinWindowStart, colLastSpinAt, colVersion, colCreatedAt,
}

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewUserRepository(dbc *pgxpool.Pool, getter *trmpgx.CtxGetter) repository.UserRepository {
	return &repo{
		dbc:    dbc,
		getter: getter,
	}
}

// conn - транзакция из контекста, если она открыта, иначе пул
func (r *repo) conn(ctx context.Context) trmpgx.Tr {
	return r.getter.DefaultTrOrDB(ctx, r.dbc)
}

// CreateUser - создает нового пользователя в БД.
// Возвращает ID созданного пользователя
func (r *repo) CreateUser(ctx context.Context, user *model.User) (int, error) {
	// Формируем запрос
	query := sq.Insert(table).
		Columns(colName, colEmail, colPasswordHash, colBalance, colIsAdmin).
		Values(user.Name, user.Email, user.Password, user.Balance, user.IsAdmin).
		Suffix("RETURNING " + colID).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var id int
	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).Scan(&id)
	if err != nil {
		if pgerr.IsUniqueViolation(err) {
			return 0, model.ErrEmailTaken
		}
		return 0, err
	}

	return id, nil
}

// GetUserByID - пользователь по ID, model.ErrUserNotFound если записи нет
func (r *repo) GetUserByID(ctx context.Context, id int) (*model.User, error) {
	return r.getOne(ctx, sq.Eq{colID: id})
}

// GetUserByEmail - пользователь по почте (почта хранится в нижнем регистре)
func (r *repo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx, sq.Eq{colEmail: email})
}

func (r *repo) getOne(ctx context.Context, where sq.Eq) (*model.User, error) {
	query := sq.Select(selectColumns...).
		From(table).
		Where(where).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	user, err := scanUser(r.conn(ctx).QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ListPlayers - все пользователи кроме администраторов
func (r *repo) ListPlayers(ctx context.Context) ([]model.User, error) {
	query := sq.Select(selectColumns...).
		From(table).
		Where(sq.Eq{colIsAdmin: false}).
		OrderBy(colID).
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

	var users []model.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

// UpdateBalance - выставляет баланс пользователя (правка администратором)
func (r *repo) UpdateBalance(ctx context.Context, id int, balance decimal.Decimal) error {
	query := sq.Update(table).
		Set(colBalance, balance).
		Set(colVersion, sq.Expr(colVersion+" + 1")).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	return r.execOne(ctx, query)
}

// UpdateEmail - меняет почту, model.ErrEmailTaken если она уже занята
func (r *repo) UpdateEmail(ctx context.Context, id int, email string) error {
	query := sq.Update(table).
		Set(colEmail, email).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	err := r.execOne(ctx, query)
	if pgerr.IsUniqueViolation(err) {
		return model.ErrEmailTaken
	}
	return err
}

// UpdateSpinState - баланс и состояние окна спинов одним условным UPDATE.
// Если версия записи изменилась после чтения - model.ErrPersistenceConflict
func (r *repo) UpdateSpinState(ctx context.Context, id int, expectedVersion int64, balance decimal.Decimal, state model.SpinState) error {
	query := sq.Update(table).
		Set(colBalance, balance).
		Set(colSpinCount, state.SpinCount).
		Set(colSpinWindowStart, nullTime(state.WindowStart)).
		Set(colLastSpinAt, nullTime(state.LastSpinAt)).
		Set(colVersion, sq.Expr(colVersion+" + 1")).
		Where(sq.Eq{colID: id, colVersion: expectedVersion}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.conn(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("update spin state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPersistenceConflict
	}
	return nil
}

func (r *repo) execOne(ctx context.Context, query sq.UpdateBuilder) error {
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.conn(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*model.User, error) {
	var (
		user        model.User
		windowStart *time.Time
		lastSpinAt  *time.Time
	)
	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.Password, &user.Balance, &user.IsAdmin,
		&user.Spin.SpinCount, &windowStart, &lastSpinAt, &user.Version, &user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if windowStart != nil {
		user.Spin.WindowStart = *windowStart
	}
	if lastSpinAt != nil {
		user.Spin.LastSpinAt = *lastSpinAt
	}
	return &user, nil
}

func nullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

package announcement_repo

import (
	"context"
	"errors"
	"vault_backend/internal/model"
	"vault_backend/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table        = "announcements"
	colID        = "id"
	colEnabled   = "enabled"
	colImageURL  = "image_url"
	colUpdatedAt = "updated_at"

	singletonID = 1
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewAnnouncementRepository(dbc *pgxpool.Pool, getter *trmpgx.CtxGetter) repository.AnnouncementRepository {
	return &repo{
		dbc:    dbc,
		getter: getter,
	}
}

func (r *repo) conn(ctx context.Context) trmpgx.Tr {
	return r.getter.DefaultTrOrDB(ctx, r.dbc)
}

func (r *repo) GetAnnouncement(ctx context.Context) (*model.Announcement, error) {
	query := sq.Select(colEnabled, colImageURL, colUpdatedAt).
		From(table).
		Where(sq.Eq{colID: singletonID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var a model.Announcement
	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).Scan(&a.Enabled, &a.ImageURL, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAnnouncementNotFound
		}
		return nil, err
	}
	return &a, nil
}

// SaveAnnouncement - upsert единственной записи баннера
func (r *repo) SaveAnnouncement(ctx context.Context, a *model.Announcement) error {
	query := sq.Insert(table).
		Columns(colID, colEnabled, colImageURL, colUpdatedAt).
		Values(singletonID, a.Enabled, a.ImageURL, a.UpdatedAt).
		Suffix("ON CONFLICT (" + colID + ") DO UPDATE SET " +
			colEnabled + " = EXCLUDED." + colEnabled + ", " +
			colImageURL + " = EXCLUDED." + colImageURL + ", " +
			colUpdatedAt + " = EXCLUDED." + colUpdatedAt).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn(ctx).Exec(ctx, sqlStr, args...)
	return err
}

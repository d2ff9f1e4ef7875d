package persistence

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gayathrinuthana/portfolio-api/internal/domain/asset"
	"github.com/gayathrinuthana/portfolio-api/pkg/apperror"
	"github.com/gayathrinuthana/portfolio-api/pkg/logger"
)

type postgresAssetRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresAssetRepo(db *pgxpool.Pool, logger logger.Logger) asset.Repository {
	return &postgresAssetRepo{db: db, logger: logger}
}

var psqlAsset = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func scanAsset(row pgx.Row, identifier string) (*asset.Asset, error) {
	a := &asset.Asset{}
	err := row.Scan(&a.ID, &a.OwnerID, &a.Kind, &a.Filename, &a.URL, &a.MimeType, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("asset", identifier)
		}
		return nil, apperror.NewInternal("failed to scan asset row", err)
	}
	return a, nil
}

func (r *postgresAssetRepo) Save(ctx context.Context, a *asset.Asset) error {
	query, args, err := psqlAsset.
		Insert("assets").
		Columns("id", "owner_id", "kind", "filename", "url", "mime_type", "created_at").
		Values(a.ID, a.OwnerID, a.Kind, a.Filename, a.URL, a.MimeType, a.CreatedAt).
		ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build asset insert", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return apperror.NewInternal("failed to insert asset", err)
	}
	return nil
}

func (r *postgresAssetRepo) FindByFilename(ctx context.Context, filename string) (*asset.Asset, error) {
	query, args, err := psqlAsset.
		Select("id", "owner_id", "kind", "filename", "url", "mime_type", "created_at").
		From("assets").
		Where(sq.Eq{"filename": filename}).
		OrderBy("created_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build asset query", err)
	}

	return scanAsset(r.db.QueryRow(ctx, query, args...), filename)
}

func (r *postgresAssetRepo) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*asset.Asset, error) {
	query, args, err := psqlAsset.
		Select("id", "owner_id", "kind", "filename", "url", "mime_type", "created_at").
		From("assets").
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build asset list query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to list assets", err)
	}
	defer rows.Close()

	assets := make([]*asset.Asset, 0)
	for rows.Next() {
		a, err := scanAsset(rows, ownerID)
		if err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating asset rows", err)
	}
	return assets, nil
}

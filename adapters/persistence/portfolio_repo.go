package persistence

import (
	"context"
	"encoding/json"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/gayathrinuthana/portfolio-api/internal/domain/portfolio"
	"github.com/gayathrinuthana/portfolio-api/pkg/apperror"
	"github.com/gayathrinuthana/portfolio-api/pkg/logger"
)

type postgresPortfolioRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresPortfolioRepo(db *pgxpool.Pool, logger logger.Logger) portfolio.Repository {
	return &postgresPortfolioRepo{db: db, logger: logger}
}

var psqlPortfolio = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var portfolioColumns = []string{
	"owner_id", "type", "profile", "skills", "projects",
	"experience", "education", "certifications",
	"resume_pdf_url", "ui_settings", "updated_at",
}

func scanPortfolio(row pgx.Row, ownerID string, l logger.Logger) (*portfolio.Document, error) {
	d := &portfolio.Document{}
	var profileBytes, skillsBytes, projectsBytes []byte
	var experienceBytes, educationBytes, certificationsBytes, uiSettingsBytes []byte

	err := row.Scan(
		&d.OwnerID, &d.Type, &profileBytes, &skillsBytes, &projectsBytes,
		&experienceBytes, &educationBytes, &certificationsBytes,
		&d.ResumePDFURL, &uiSettingsBytes, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("portfolio", ownerID)
		}
		return nil, apperror.NewInternal("failed to scan portfolio row", err)
	}

	for _, col := range []struct {
		raw  []byte
		dest any
	}{
		{profileBytes, &d.Profile},
		{skillsBytes, &d.Skills},
		{projectsBytes, &d.Projects},
		{experienceBytes, &d.Experience},
		{educationBytes, &d.Education},
		{certificationsBytes, &d.Certifications},
		{uiSettingsBytes, &d.UISettings},
	} {
		if col.raw == nil {
			continue
		}
		if err := json.Unmarshal(col.raw, col.dest); err != nil {
			l.Warn("Failed to unmarshal portfolio column", zap.String("owner_id", d.OwnerID), zap.Error(err))
		}
	}

	return d, nil
}

func (r *postgresPortfolioRepo) FindByOwnerID(ctx context.Context, ownerID string) (*portfolio.Document, error) {
	query, args, err := psqlPortfolio.
		Select(portfolioColumns...).
		From("portfolios").
		Where(sq.Eq{"owner_id": ownerID}).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build portfolio query", err)
	}

	return scanPortfolio(r.db.QueryRow(ctx, query, args...), ownerID, r.logger)
}

func (r *postgresPortfolioRepo) ListAll(ctx context.Context) ([]*portfolio.Document, error) {
	query, args, err := psqlPortfolio.
		Select(portfolioColumns...).
		From("portfolios").
		OrderBy("owner_id").
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build portfolio list query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to list portfolios", err)
	}
	defer rows.Close()

	docs := make([]*portfolio.Document, 0)
	for rows.Next() {
		d, err := scanPortfolio(rows, "", r.logger)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating portfolio rows", err)
	}
	return docs, nil
}

func (r *postgresPortfolioRepo) Upsert(ctx context.Context, d *portfolio.Document) error {
	jsonCols := make([][]byte, 7)
	for i, src := range []any{
		d.Profile, d.Skills, d.Projects, d.Experience,
		d.Education, d.Certifications, d.UISettings,
	} {
		raw, err := json.Marshal(src)
		if err != nil {
			return apperror.NewInternal("failed to marshal portfolio column", err)
		}
		jsonCols[i] = raw
	}

	query := `
		INSERT INTO portfolios (owner_id, type, profile, skills, projects,
			experience, education, certifications, resume_pdf_url, ui_settings, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (owner_id) DO UPDATE SET
			type = EXCLUDED.type,
			profile = EXCLUDED.profile,
			skills = EXCLUDED.skills,
			projects = EXCLUDED.projects,
			experience = EXCLUDED.experience,
			education = EXCLUDED.education,
			certifications = EXCLUDED.certifications,
			resume_pdf_url = EXCLUDED.resume_pdf_url,
			ui_settings = EXCLUDED.ui_settings,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.db.Exec(ctx, query,
		d.OwnerID, d.Type, jsonCols[0], jsonCols[1], jsonCols[2],
		jsonCols[3], jsonCols[4], jsonCols[5], d.ResumePDFURL, jsonCols[6], d.UpdatedAt,
	)
	if err != nil {
		return apperror.NewInternal("failed to upsert portfolio", err)
	}
	return nil
}

func (r *postgresPortfolioRepo) Delete(ctx context.Context, ownerID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM portfolios WHERE owner_id = $1`, ownerID)
	if err != nil {
		return apperror.NewInternal("failed to delete portfolio", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("portfolio", ownerID)
	}
	return nil
}

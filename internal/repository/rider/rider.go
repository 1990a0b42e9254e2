package rider

import (
	"context"
	"errors"
	"fmt"

	"dispatch/internal/entities"
	"dispatch/internal/repository"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Rider, error) {
	query := `SELECT id, display_name, is_online, is_verified, service_radius_km, updated_at
		FROM riders
		WHERE id = $1`

	var riderModel RiderDB
	err := r.querier.QueryRow(ctx, query, id).
		Scan(
			&riderModel.ID,
			&riderModel.DisplayName,
			&riderModel.IsOnline,
			&riderModel.IsVerified,
			&riderModel.ServiceRadiusKm,
			&riderModel.UpdatedAt,
		)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrRiderNotFound
		}

		return nil, fmt.Errorf("unexpected rider repository getbyid error: %w", err)
	}

	return ToDomain(&riderModel), nil
}

func (r *Repository) Update(ctx context.Context, riderModifyEntity entities.RiderModify) (*entities.Rider, error) {
	riderModifyModel := FromDomainModify(&riderModifyEntity)

	builder := qb.
		Update("riders")

	// опционнные поля
	if riderModifyModel.IsOnline != nil {
		builder = builder.Set("is_online", riderModifyModel.IsOnline)
	}
	if riderModifyModel.ServiceRadiusKm != nil {
		builder = builder.Set("service_radius_km", riderModifyModel.ServiceRadiusKm)
	}

	builder = builder.Set("updated_at", sq.Expr("NOW()"))

	builder = builder.
		Where(sq.Eq{"id": riderModifyModel.ID}).
		Suffix("RETURNING id, display_name, is_online, is_verified, service_radius_km, updated_at")

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected rider repository update error: %w", err)
	}

	var riderModel RiderDB
	err = r.querier.QueryRow(ctx, query, args...).
		Scan(
			&riderModel.ID,
			&riderModel.DisplayName,
			&riderModel.IsOnline,
			&riderModel.IsVerified,
			&riderModel.ServiceRadiusKm,
			&riderModel.UpdatedAt,
		)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrRiderNotFound
		}

		return nil, fmt.Errorf("unexpected rider repository update error: %w", err)
	}

	return ToDomain(&riderModel), nil
}

// ListCandidates онлайн и верифицированные райдеры с последним снимком позиции.
// Райдеры без снимков не попадают в выборку, радиус проверяет сервис.
func (r *Repository) ListCandidates(ctx context.Context) ([]entities.RiderCandidate, error) {
	query := `
	SELECT rd.id, rd.service_radius_km, s.lat, s.lng, s.created_at
	FROM riders rd
	JOIN LATERAL (
		SELECT lat, lng, created_at
		FROM rider_location_snapshots
		WHERE rider_id = rd.id
		ORDER BY created_at DESC
		LIMIT 1
	) s ON TRUE
	WHERE rd.is_online AND rd.is_verified
	ORDER BY rd.id`

	rows, err := r.querier.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("unexpected rider repository list candidates error: %w", err)
	}
	defer rows.Close()

	candidateModels := make([]CandidateDB, 0, 8)
	for rows.Next() {
		var candidateModel CandidateDB
		err := rows.Scan(
			&candidateModel.RiderID,
			&candidateModel.ServiceRadiusKm,
			&candidateModel.Lat,
			&candidateModel.Lng,
			&candidateModel.LocatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("unexpected rider repository list candidates error: %w", err)
		}
		candidateModels = append(candidateModels, candidateModel)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("unexpected rider repository list candidates error: %w", err)
	}

	return ToCandidateDomainList(candidateModels), nil
}

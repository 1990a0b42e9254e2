package location

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

// Create только добавляет снимок, существующие строки не меняются.
func (r *Repository) Create(ctx context.Context, snapshot entities.LocationSnapshot) (*entities.LocationSnapshot, error) {
	snapshotDB := FromDomain(&snapshot)

	query := `
		INSERT INTO rider_location_snapshots (rider_id, order_id, lat, lng, heading, speed, accuracy, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	err := r.querier.QueryRow(
		ctx,
		query,
		snapshotDB.RiderID,
		snapshotDB.OrderID,
		snapshotDB.Lat,
		snapshotDB.Lng,
		snapshotDB.Heading,
		snapshotDB.Speed,
		snapshotDB.Accuracy,
		snapshotDB.CreatedAt,
	).Scan(&snapshotDB.ID, &snapshotDB.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("unexpected location repository create error: %w", err)
	}

	return ToDomain(snapshotDB), nil
}

// Latest последний снимок райдера, при orderID != nil только по этому заказу.
func (r *Repository) Latest(ctx context.Context, riderID uuid.UUID, orderID *uuid.UUID) (*entities.LocationSnapshot, error) {
	builder := qb.
		Select("id", "rider_id", "order_id", "lat", "lng", "heading", "speed", "accuracy", "created_at").
		From("rider_location_snapshots").
		Where(sq.Eq{"rider_id": riderID})

	if orderID != nil {
		builder = builder.Where(sq.Eq{"order_id": *orderID})
	}

	query, args, err := builder.
		OrderBy("created_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected location repository latest error: %w", err)
	}

	var snapshotDB SnapshotDB
	err = r.querier.QueryRow(ctx, query, args...).Scan(
		&snapshotDB.ID,
		&snapshotDB.RiderID,
		&snapshotDB.OrderID,
		&snapshotDB.Lat,
		&snapshotDB.Lng,
		&snapshotDB.Heading,
		&snapshotDB.Speed,
		&snapshotDB.Accuracy,
		&snapshotDB.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrLocationNotFound
		}
		return nil, fmt.Errorf("unexpected location repository latest error: %w", err)
	}

	return ToDomain(&snapshotDB), nil
}

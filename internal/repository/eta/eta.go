package eta

import (
	"context"
	"errors"
	"fmt"

	"dispatch/internal/entities"
	"dispatch/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const columns = `order_id, rider_id, estimated_pickup_at, estimated_delivery_at,
	distance_to_pickup_km, distance_to_dropoff_km, traffic_factor, avg_speed_kmh, updated_at`

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

// Upsert одна строка на пару (заказ, райдер).
func (r *Repository) Upsert(ctx context.Context, eta entities.DeliveryETA) (*entities.DeliveryETA, error) {
	etaDB := FromDomain(&eta)

	query := `
		INSERT INTO delivery_etas (` + columns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (order_id, rider_id) DO UPDATE SET
			estimated_pickup_at    = EXCLUDED.estimated_pickup_at,
			estimated_delivery_at  = EXCLUDED.estimated_delivery_at,
			distance_to_pickup_km  = EXCLUDED.distance_to_pickup_km,
			distance_to_dropoff_km = EXCLUDED.distance_to_dropoff_km,
			traffic_factor         = EXCLUDED.traffic_factor,
			avg_speed_kmh          = EXCLUDED.avg_speed_kmh,
			updated_at             = EXCLUDED.updated_at
		RETURNING ` + columns

	row := r.querier.QueryRow(
		ctx,
		query,
		etaDB.OrderID,
		etaDB.RiderID,
		etaDB.EstimatedPickupAt,
		etaDB.EstimatedDeliveryAt,
		etaDB.DistanceToPickupKm,
		etaDB.DistanceToDropoffKm,
		etaDB.TrafficFactor,
		etaDB.AvgSpeedKmh,
		etaDB.UpdatedAt,
	)

	stored, err := scanETA(row)
	if err != nil {
		return nil, fmt.Errorf("unexpected eta repository upsert error: %w", err)
	}

	return ToDomain(stored), nil
}

// GetByOrder самая свежая оценка по заказу.
func (r *Repository) GetByOrder(ctx context.Context, orderID uuid.UUID) (*entities.DeliveryETA, error) {
	query := `
		SELECT ` + columns + `
		FROM delivery_etas
		WHERE order_id = $1
		ORDER BY updated_at DESC
		LIMIT 1
	`

	stored, err := scanETA(r.querier.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrETANotFound
		}
		return nil, fmt.Errorf("unexpected eta repository get error: %w", err)
	}

	return ToDomain(stored), nil
}

func (r *Repository) DeleteByOrder(ctx context.Context, orderID uuid.UUID) (int64, error) {
	result, err := r.querier.Exec(ctx, `DELETE FROM delivery_etas WHERE order_id = $1`, orderID)
	if err != nil {
		return 0, fmt.Errorf("unexpected eta repository delete error: %w", err)
	}

	return result.RowsAffected(), nil
}

func scanETA(row pgx.Row) (*DeliveryETADB, error) {
	var etaDB DeliveryETADB
	err := row.Scan(
		&etaDB.OrderID,
		&etaDB.RiderID,
		&etaDB.EstimatedPickupAt,
		&etaDB.EstimatedDeliveryAt,
		&etaDB.DistanceToPickupKm,
		&etaDB.DistanceToDropoffKm,
		&etaDB.TrafficFactor,
		&etaDB.AvgSpeedKmh,
		&etaDB.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &etaDB, nil
}

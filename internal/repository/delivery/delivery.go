package delivery

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"dispatch/internal/entities"
	"dispatch/internal/repository"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var deliveryColumns = []string{
	"id", "order_id",
	"pickup_lat", "pickup_lng", "pickup_address",
	"dropoff_lat", "dropoff_lng", "dropoff_address",
	"rider_id", "status",
	"assigned_at", "picked_up_at", "delivered_at",
	"created_at", "updated_at",
}

var errMissingKey = errors.New("delivery id and rider id are required")

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Delivery, error) {
	return r.getBy(ctx, sq.Eq{"id": id})
}

func (r *Repository) GetByOrderID(ctx context.Context, orderID uuid.UUID) (*entities.Delivery, error) {
	return r.getBy(ctx, sq.Eq{"order_id": orderID})
}

// AssignRider закрепляет райдера, только если доставка еще свободна.
func (r *Repository) AssignRider(ctx context.Context, deliveryID, riderID uuid.UUID, assignedAt time.Time) (bool, error) {
	query := `
		UPDATE deliveries
		SET rider_id = $2,
		    status = 'assigned',
		    assigned_at = $3,
		    updated_at = $3
		WHERE id = $1 AND rider_id IS NULL
	`

	result, err := r.querier.Exec(ctx, query, deliveryID, riderID, assignedAt)
	if err != nil {
		return false, fmt.Errorf("unexpected delivery repository assign rider error: %w", err)
	}

	return result.RowsAffected() == 1, nil
}

// UpdateStatus условное обновление: строка должна принадлежать райдеру и быть в статусе expected.
func (r *Repository) UpdateStatus(
	ctx context.Context,
	deliveryModify entities.DeliveryModify,
	expected entities.DeliveryStatus,
) (*entities.Delivery, error) {
	deliveryModifyDB := FromDomainModify(&deliveryModify)
	if deliveryModifyDB.ID == nil || deliveryModifyDB.RiderID == nil {
		return nil, errMissingKey
	}

	builder := qb.Update("deliveries")

	if deliveryModifyDB.Status != nil {
		builder = builder.Set("status", deliveryModifyDB.Status)
	}
	if deliveryModifyDB.PickedUpAt != nil {
		builder = builder.Set("picked_up_at", deliveryModifyDB.PickedUpAt)
	}
	if deliveryModifyDB.DeliveredAt != nil {
		builder = builder.Set("delivered_at", deliveryModifyDB.DeliveredAt)
	}

	builder = builder.Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{
			"id":       deliveryModifyDB.ID,
			"rider_id": deliveryModifyDB.RiderID,
			"status":   expected.String(),
		}).
		Suffix("RETURNING " + strings.Join(deliveryColumns, ", "))

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery repository update status error: %w", err)
	}

	deliveryDB, err := scanDelivery(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrConcurrentUpdate
		}
		return nil, fmt.Errorf("unexpected delivery repository update status error: %w", err)
	}

	return ToDomain(deliveryDB), nil
}

// ListStaleUnassigned свободные доставки с точкой забора и без живых предложений.
func (r *Repository) ListStaleUnassigned(ctx context.Context, createdAfter, now time.Time, limit int) ([]uuid.UUID, error) {
	builder := qb.
		Select("d.id").
		From("deliveries d").
		Where(sq.Eq{"d.rider_id": nil}).
		Where(sq.NotEq{"d.pickup_lat": nil, "d.pickup_lng": nil}).
		Where(sq.GtOrEq{"d.created_at": createdAfter}).
		Where(`NOT EXISTS (
			SELECT 1 FROM delivery_assignments a
			WHERE a.delivery_id = d.id AND a.status = 'pending' AND a.expires_at > ?
		)`, now).
		OrderBy("d.created_at ASC")

	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery repository list stale error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery repository list stale error: %w", err)
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("unexpected delivery repository list stale scan error: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected delivery repository list stale rows error: %w", err)
	}

	return ids, nil
}

func (r *Repository) getBy(ctx context.Context, where sq.Eq) (*entities.Delivery, error) {
	query, args, err := qb.
		Select(deliveryColumns...).
		From("deliveries").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery repository get error: %w", err)
	}

	deliveryDB, err := scanDelivery(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrDeliveryNotFound
		}
		return nil, fmt.Errorf("unexpected delivery repository get error: %w", err)
	}

	return ToDomain(deliveryDB), nil
}

func scanDelivery(row pgx.Row) (*DeliveryDB, error) {
	var deliveryDB DeliveryDB
	err := row.Scan(
		&deliveryDB.ID,
		&deliveryDB.OrderID,
		&deliveryDB.PickupLat,
		&deliveryDB.PickupLng,
		&deliveryDB.PickupAddress,
		&deliveryDB.DropoffLat,
		&deliveryDB.DropoffLng,
		&deliveryDB.DropoffAddress,
		&deliveryDB.RiderID,
		&deliveryDB.Status,
		&deliveryDB.AssignedAt,
		&deliveryDB.PickedUpAt,
		&deliveryDB.DeliveredAt,
		&deliveryDB.CreatedAt,
		&deliveryDB.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &deliveryDB, nil
}

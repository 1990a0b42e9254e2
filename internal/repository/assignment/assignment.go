package assignment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dispatch/internal/entities"
	"dispatch/internal/repository"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const returningColumns = "RETURNING id, delivery_id, rider_id, status, created_at, expires_at, responded_at"

var errIncompleteModify = errors.New("assignment requires delivery, rider, created_at and expires_at")

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

// CreateBatch вставляет все предложения одним запросом.
func (r *Repository) CreateBatch(ctx context.Context, assignments []entities.AssignmentModify) ([]entities.Assignment, error) {
	if len(assignments) == 0 {
		return []entities.Assignment{}, nil
	}

	builder := qb.
		Insert("delivery_assignments").
		Columns("delivery_id", "rider_id", "status", "created_at", "expires_at")

	for _, a := range assignments {
		if a.DeliveryID == nil || a.RiderID == nil || a.CreatedAt == nil || a.ExpiresAt == nil {
			return nil, errIncompleteModify
		}
		builder = builder.Values(*a.DeliveryID, *a.RiderID, entities.AssignmentPending.String(), *a.CreatedAt, *a.ExpiresAt)
	}

	query, args, err := builder.Suffix(returningColumns).ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected assignment repository create batch error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected assignment repository create batch error: %w", err)
	}
	defer rows.Close()

	created := make([]entities.Assignment, 0, len(assignments))
	for rows.Next() {
		assignmentDB, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("unexpected assignment repository create batch scan error: %w", err)
		}
		created = append(created, *ToDomain(assignmentDB))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected assignment repository create batch rows error: %w", err)
	}

	return created, nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Assignment, error) {
	query := `
		SELECT id, delivery_id, rider_id, status, created_at, expires_at, responded_at
		FROM delivery_assignments
		WHERE id = $1
	`

	assignmentDB, err := scanAssignment(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("unexpected assignment repository get error: %w", err)
	}

	return ToDomain(assignmentDB), nil
}

// Accept переводит pending в accepted, если предложение принадлежит райдеру и еще не истекло.
// false означает, что условие не выполнено и ничего не изменено.
func (r *Repository) Accept(ctx context.Context, id, riderID uuid.UUID, now time.Time) (*entities.Assignment, bool, error) {
	return r.respond(ctx, id, riderID, now, entities.AssignmentAccepted)
}

func (r *Repository) Decline(ctx context.Context, id, riderID uuid.UUID, now time.Time) (*entities.Assignment, bool, error) {
	return r.respond(ctx, id, riderID, now, entities.AssignmentDeclined)
}

// ExpireSiblings гасит остальные pending предложения той же доставки.
func (r *Repository) ExpireSiblings(ctx context.Context, deliveryID, acceptedID uuid.UUID, now time.Time) (int64, error) {
	query := `
		UPDATE delivery_assignments
		SET status = 'expired', responded_at = $3
		WHERE delivery_id = $1 AND id <> $2 AND status = 'pending'
	`

	result, err := r.querier.Exec(ctx, query, deliveryID, acceptedID, now)
	if err != nil {
		return 0, fmt.Errorf("unexpected assignment repository expire siblings error: %w", err)
	}

	return result.RowsAffected(), nil
}

func (r *Repository) CountLivePending(ctx context.Context, deliveryID uuid.UUID, now time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM delivery_assignments
		WHERE delivery_id = $1 AND status = 'pending' AND expires_at > $2
	`

	var count int
	if err := r.querier.QueryRow(ctx, query, deliveryID, now).Scan(&count); err != nil {
		return 0, fmt.Errorf("unexpected assignment repository count pending error: %w", err)
	}

	return count, nil
}

// ExpireStale помечает просроченные pending строки как expired.
func (r *Repository) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE delivery_assignments
		SET status = 'expired'
		WHERE status = 'pending' AND expires_at <= $1
	`

	result, err := r.querier.Exec(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("unexpected assignment repository expire stale error: %w", err)
	}

	return result.RowsAffected(), nil
}

func (r *Repository) ListPendingByRider(ctx context.Context, riderID uuid.UUID, now time.Time) ([]entities.AssignmentOffer, error) {
	query := `
		SELECT
			a.id, a.delivery_id, a.rider_id, a.status, a.created_at, a.expires_at, a.responded_at,
			d.order_id,
			d.pickup_lat, d.pickup_lng, d.pickup_address,
			d.dropoff_lat, d.dropoff_lng, d.dropoff_address
		FROM delivery_assignments a
		JOIN deliveries d ON d.id = a.delivery_id
		WHERE a.rider_id = $1 AND a.status = 'pending' AND a.expires_at > $2
		ORDER BY a.created_at DESC, a.id
	`

	rows, err := r.querier.Query(ctx, query, riderID, now)
	if err != nil {
		return nil, fmt.Errorf("unexpected assignment repository list pending error: %w", err)
	}
	defer rows.Close()

	offers := make([]entities.AssignmentOffer, 0)
	for rows.Next() {
		var offerDB OfferDB
		err := rows.Scan(
			&offerDB.ID,
			&offerDB.DeliveryID,
			&offerDB.RiderID,
			&offerDB.Status,
			&offerDB.CreatedAt,
			&offerDB.ExpiresAt,
			&offerDB.RespondedAt,
			&offerDB.OrderID,
			&offerDB.PickupLat,
			&offerDB.PickupLng,
			&offerDB.PickupAddress,
			&offerDB.DropoffLat,
			&offerDB.DropoffLng,
			&offerDB.DropoffAddress,
		)
		if err != nil {
			return nil, fmt.Errorf("unexpected assignment repository list pending scan error: %w", err)
		}
		offers = append(offers, *ToOfferDomain(&offerDB))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected assignment repository list pending rows error: %w", err)
	}

	return offers, nil
}

func (r *Repository) respond(
	ctx context.Context,
	id, riderID uuid.UUID,
	now time.Time,
	status entities.AssignmentStatus,
) (*entities.Assignment, bool, error) {
	query := `
		UPDATE delivery_assignments
		SET status = $4, responded_at = $3
		WHERE id = $1 AND rider_id = $2 AND status = 'pending' AND expires_at > $3
	` + returningColumns

	assignmentDB, err := scanAssignment(r.querier.QueryRow(ctx, query, id, riderID, now, status.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("unexpected assignment repository %s error: %w", status, err)
	}

	return ToDomain(assignmentDB), true, nil
}

func scanAssignment(row pgx.Row) (*AssignmentDB, error) {
	var assignmentDB AssignmentDB
	err := row.Scan(
		&assignmentDB.ID,
		&assignmentDB.DeliveryID,
		&assignmentDB.RiderID,
		&assignmentDB.Status,
		&assignmentDB.CreatedAt,
		&assignmentDB.ExpiresAt,
		&assignmentDB.RespondedAt,
	)
	if err != nil {
		return nil, err
	}
	return &assignmentDB, nil
}

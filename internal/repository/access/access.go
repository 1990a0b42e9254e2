package access

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

const roleAdmin = "admin"

// Repository отвечает на вопрос "может ли пользователь видеть доставку или заказ".
// Участники: покупатель, владелец магазина, назначенный райдер и админ.
type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) IsDeliveryParticipant(ctx context.Context, deliveryID, userID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM deliveries d
			JOIN orders o ON o.id = d.order_id
			LEFT JOIN vendors v ON v.id = o.vendor_id
			WHERE d.id = $1 AND (o.buyer_id = $2 OR v.owner_id = $2 OR d.rider_id = $2)
		) OR EXISTS (
			SELECT 1 FROM user_roles WHERE user_id = $2 AND role = $3
		)
	`

	var ok bool
	if err := r.querier.QueryRow(ctx, query, deliveryID, userID, roleAdmin).Scan(&ok); err != nil {
		return false, fmt.Errorf("unexpected access repository delivery participant error: %w", err)
	}

	return ok, nil
}

func (r *Repository) IsOrderParticipant(ctx context.Context, orderID, userID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM orders o
			LEFT JOIN vendors v ON v.id = o.vendor_id
			LEFT JOIN deliveries d ON d.order_id = o.id
			WHERE o.id = $1 AND (o.buyer_id = $2 OR v.owner_id = $2 OR d.rider_id = $2)
		) OR EXISTS (
			SELECT 1 FROM user_roles WHERE user_id = $2 AND role = $3
		)
	`

	var ok bool
	if err := r.querier.QueryRow(ctx, query, orderID, userID, roleAdmin).Scan(&ok); err != nil {
		return false, fmt.Errorf("unexpected access repository order participant error: %w", err)
	}

	return ok, nil
}

func (r *Repository) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM user_roles WHERE user_id = $1 AND role = $2)`

	var ok bool
	if err := r.querier.QueryRow(ctx, query, userID, roleAdmin).Scan(&ok); err != nil {
		return false, fmt.Errorf("unexpected access repository is admin error: %w", err)
	}

	return ok, nil
}

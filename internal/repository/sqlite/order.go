package sqlite

import (
	"context"
	"fmt"

	"github.com/sakif/orderdesk/internal/apperror"
	"github.com/sakif/orderdesk/internal/model"
	"github.com/sakif/orderdesk/internal/repository"
)

// compile-time check that *OrderDB implements repository.OrderRepository
var _ repository.OrderRepository = (*OrderDB)(nil)

// OrderDB serves the orders contract from a shared *DB.
type OrderDB struct {
	db *DB
}

// NewOrderDB returns the orders view of the database.
func NewOrderDB(db *DB) *OrderDB {
	return &OrderDB{db: db}
}

// List returns every order.
func (o *OrderDB) List(ctx context.Context) ([]model.Order, error) {
	rows, err := o.db.conn.QueryContext(ctx,
		`SELECT id, user_id, total FROM orders ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing orders: %w", err)
	}
	defer rows.Close()

	orders := []model.Order{}
	for rows.Next() {
		var order model.Order
		if err := rows.Scan(&order.ID, &order.UserID, &order.Total); err != nil {
			return nil, fmt.Errorf("sqlite: scanning order row: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating order rows: %w", err)
	}
	return orders, nil
}

// Create inserts a new order under the next free id and returns the stored
// record. The caller-provided id is ignored.
func (o *OrderDB) Create(ctx context.Context, order model.Order) (model.Order, error) {
	var next int64
	err := o.db.conn.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(id), -1) + 1 FROM orders`).Scan(&next)
	if err != nil {
		return model.Order{}, fmt.Errorf("sqlite: picking next order id: %w", err)
	}

	_, err = o.db.conn.ExecContext(ctx,
		`INSERT INTO orders (id, user_id, total) VALUES (?, ?, ?)`,
		next, order.UserID, order.Total)
	if err != nil {
		return model.Order{}, fmt.Errorf("sqlite: inserting order: %w", err)
	}

	order.ID = next
	return order, nil
}

// Update patches the stored order's fields; the id must already exist.
func (o *OrderDB) Update(ctx context.Context, order model.Order) (model.Order, error) {
	res, err := o.db.conn.ExecContext(ctx,
		`UPDATE orders SET user_id = ?, total = ? WHERE id = ?`,
		order.UserID, order.Total, order.ID)
	if err != nil {
		return model.Order{}, fmt.Errorf("sqlite: updating order %d: %w", order.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return model.Order{}, fmt.Errorf("sqlite: checking update result: %w", err)
	}
	if affected == 0 {
		return model.Order{}, apperror.NotFound("order", order.ID)
	}

	return order, nil
}

// Delete removes the order if present; absent ids succeed.
func (o *OrderDB) Delete(ctx context.Context, id int64) (int64, error) {
	if _, err := o.db.conn.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, id); err != nil {
		return 0, fmt.Errorf("sqlite: deleting order %d: %w", id, err)
	}
	return id, nil
}

// DeleteByUser removes every order owned by userID.
func (o *OrderDB) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	if _, err := o.db.conn.ExecContext(ctx,
		`DELETE FROM orders WHERE user_id = ?`, userID); err != nil {
		return 0, fmt.Errorf("sqlite: deleting orders for user %d: %w", userID, err)
	}
	return userID, nil
}

// Seed inserts the given orders unless the table already has rows.
func (o *OrderDB) Seed(orders []model.Order) error {
	n, err := o.db.seedCount("orders")
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	for _, order := range orders {
		if _, err := o.db.conn.Exec(
			`INSERT INTO orders (id, user_id, total) VALUES (?, ?, ?)`,
			order.ID, order.UserID, order.Total); err != nil {
			return fmt.Errorf("seeding order %d: %w", order.ID, err)
		}
	}
	return nil
}

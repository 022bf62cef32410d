package repository

import (
	"context"
	"database/sql"

	"github.com/linstore/linstore-api/internal/model"
)

// BasketRepo provides data access to baskets and their items. Every
// mutation is a single statement, so concurrent adds and removes on the
// same basket resolve through row-level atomicity; the unique key on
// (basket_id, product_id, color) enforces the no-duplicate invariant even
// when two identical adds race past the existence check.
type BasketRepo struct{ db *sql.DB }

func NewBasketRepo(db *sql.DB) *BasketRepo { return &BasketRepo{db: db} }

// GetByUser fetches the basket container row for a user.
func (r *BasketRepo) GetByUser(ctx context.Context, userID uint64) (model.Basket, error) {
	var b model.Basket
	err := r.db.QueryRowContext(ctx,
		"SELECT id, user_id FROM baskets WHERE user_id=? LIMIT 1", userID).
		Scan(&b.ID, &b.UserID)
	if err == sql.ErrNoRows {
		return model.Basket{}, ErrNotFound
	}
	return b, err
}

// ensure returns the user's basket id, creating the container row when it
// is missing. Registration normally creates the basket, but adds must
// upsert so an account with a lost basket row still works.
func (r *BasketRepo) ensure(ctx context.Context, userID uint64) (uint64, error) {
	b, err := r.GetByUser(ctx, userID)
	if err == nil {
		return b.ID, nil
	}
	if err != ErrNotFound {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, "INSERT INTO baskets (user_id) VALUES (?)", userID)
	if err != nil {
		if isDuplicateKey(err) {
			// Lost the race against a concurrent create; read the winner.
			b, err2 := r.GetByUser(ctx, userID)
			if err2 != nil {
				return 0, err2
			}
			return b.ID, nil
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// Items returns the ordered selections of a user's basket.
func (r *BasketRepo) Items(ctx context.Context, userID uint64) ([]model.BasketItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT bi.id, bi.basket_id, bi.product_id, bi.color, bi.selected_img, bi.created_at
		 FROM basket_items bi JOIN baskets b ON b.id = bi.basket_id
		 WHERE b.user_id = ? ORDER BY bi.id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.BasketItem
	for rows.Next() {
		var it model.BasketItem
		if err := rows.Scan(&it.ID, &it.BasketID, &it.ProductID, &it.Color, &it.SelectedImg, &it.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Contains reports whether the exact (product, color) pair is already in
// the user's basket.
func (r *BasketRepo) Contains(ctx context.Context, userID, productID uint64, color string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM basket_items bi JOIN baskets b ON b.id = bi.basket_id
		 WHERE b.user_id=? AND bi.product_id=? AND bi.color=? LIMIT 1`,
		userID, productID, color).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Add appends a (product, color, image) selection to the user's basket,
// creating the basket when absent. ErrDuplicateItem is returned when the
// pair is already present.
func (r *BasketRepo) Add(ctx context.Context, userID, productID uint64, color, selectedImg string) error {
	basketID, err := r.ensure(ctx, userID)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		"INSERT INTO basket_items (basket_id, product_id, color, selected_img) VALUES (?,?,?,?)",
		basketID, productID, color, selectedImg)
	if isDuplicateKey(err) {
		return ErrDuplicateItem
	}
	return err
}

// Remove deletes every matching (product, color) entry from the user's
// basket and returns how many rows were removed. Removing an absent pair
// is not an error.
func (r *BasketRepo) Remove(ctx context.Context, userID, productID uint64, color string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE bi FROM basket_items bi JOIN baskets b ON b.id = bi.basket_id
		 WHERE b.user_id=? AND bi.product_id=? AND bi.color=?`,
		userID, productID, color)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

package repository

import (
	"context"
	"database/sql"
)

// SaveListRepo stores the products a user bookmarked for later. The list
// container row is created at registration; items reference products by id
// with a unique key per list.
type SaveListRepo struct{ db *sql.DB }

func NewSaveListRepo(db *sql.DB) *SaveListRepo { return &SaveListRepo{db: db} }

func (r *SaveListRepo) listID(ctx context.Context, userID uint64) (uint64, error) {
	var id uint64
	err := r.db.QueryRowContext(ctx,
		"SELECT id FROM save_lists WHERE user_id=? LIMIT 1", userID).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, ErrNotFound
	}
	return id, err
}

// ProductIDs returns the saved product ids for a user, oldest first.
func (r *SaveListRepo) ProductIDs(ctx context.Context, userID uint64) ([]uint64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT sli.product_id FROM save_list_items sli
		 JOIN save_lists sl ON sl.id = sli.save_list_id
		 WHERE sl.user_id=? ORDER BY sli.id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Contains reports whether a product is on the user's save list.
func (r *SaveListRepo) Contains(ctx context.Context, userID, productID uint64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM save_list_items sli JOIN save_lists sl ON sl.id = sli.save_list_id
		 WHERE sl.user_id=? AND sli.product_id=? LIMIT 1`, userID, productID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Add bookmarks a product. ErrDuplicateItem when it is already saved.
func (r *SaveListRepo) Add(ctx context.Context, userID, productID uint64) error {
	listID, err := r.listID(ctx, userID)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		"INSERT INTO save_list_items (save_list_id, product_id) VALUES (?,?)", listID, productID)
	if isDuplicateKey(err) {
		return ErrDuplicateItem
	}
	return err
}

// Remove deletes a bookmark; removing an absent product is not an error.
func (r *SaveListRepo) Remove(ctx context.Context, userID, productID uint64) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE sli FROM save_list_items sli JOIN save_lists sl ON sl.id = sli.save_list_id
		 WHERE sl.user_id=? AND sli.product_id=?`, userID, productID)
	return err
}

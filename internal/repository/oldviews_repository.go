package repository

import (
	"context"
	"database/sql"
)

// OldViewsRepo stores a user's recently-viewed products. The list is
// capped: recording a view beyond the cap evicts the oldest entry, and
// viewing an already-listed product just refreshes its position.
type OldViewsRepo struct{ db *sql.DB }

func NewOldViewsRepo(db *sql.DB) *OldViewsRepo { return &OldViewsRepo{db: db} }

// maxOldViews caps how many recently-viewed products are kept per user.
const maxOldViews = 20

func (r *OldViewsRepo) listID(ctx context.Context, userID uint64) (uint64, error) {
	var id uint64
	err := r.db.QueryRowContext(ctx,
		"SELECT id FROM old_views WHERE user_id=? LIMIT 1", userID).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, ErrNotFound
	}
	return id, err
}

// ProductIDs returns the recently-viewed product ids, newest first.
func (r *OldViewsRepo) ProductIDs(ctx context.Context, userID uint64) ([]uint64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT ovi.product_id FROM old_view_items ovi
		 JOIN old_views ov ON ov.id = ovi.old_view_id
		 WHERE ov.user_id=? ORDER BY ovi.id DESC`, userID)
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

// RecordView appends a product view, refreshing its position when already
// listed and evicting the oldest entries beyond the cap.
func (r *OldViewsRepo) RecordView(ctx context.Context, userID, productID uint64) error {
	listID, err := r.listID(ctx, userID)
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx,
		"DELETE FROM old_view_items WHERE old_view_id=? AND product_id=?", listID, productID); err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx,
		"INSERT INTO old_view_items (old_view_id, product_id) VALUES (?,?)", listID, productID); err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`DELETE FROM old_view_items WHERE old_view_id=? AND id NOT IN (
			SELECT id FROM (SELECT id FROM old_view_items WHERE old_view_id=? ORDER BY id DESC LIMIT ?) keep
		)`, listID, listID, maxOldViews)
	return err
}

// normalizeViews prepares an incoming view list for insertion: duplicates
// collapse onto their newest position, then the list is capped to the
// newest max entries. Deduplication runs before the cap so a list with
// repeats keeps as many unique products as fit. The result is ordered
// oldest first.
func normalizeViews(ids []uint64, max int) []uint64 {
	seen := make(map[uint64]bool, len(ids))
	newest := make([]uint64, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		id := ids[i]
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		newest = append(newest, id)
	}
	if len(newest) > max {
		newest = newest[:max]
	}
	out := make([]uint64, len(newest))
	for i, id := range newest {
		out[len(out)-1-i] = id
	}
	return out
}

// Replace swaps the whole list for the given product ids, oldest first.
func (r *OldViewsRepo) Replace(ctx context.Context, userID uint64, productIDs []uint64) error {
	listID, err := r.listID(ctx, userID)
	if err != nil {
		return err
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM old_view_items WHERE old_view_id=?", listID); err != nil {
		return err
	}
	for _, pid := range normalizeViews(productIDs, maxOldViews) {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO old_view_items (old_view_id, product_id) VALUES (?,?)", listID, pid); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

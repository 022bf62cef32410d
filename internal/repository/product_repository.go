package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/linstore/linstore-api/internal/model"
)

// ProductRepo reads the product catalog. Products are maintained by a
// separate admin pipeline; this API only queries them by id, by id set
// (for the basket join) and by name for the quick search box.
type ProductRepo struct{ db *sql.DB }

func NewProductRepo(db *sql.DB) *ProductRepo { return &ProductRepo{db: db} }

const productColumns = "id, name, price, brand_id, type_id, img, COALESCE(colors,'[]'), created_at"

// scanProduct reads one product row. The colors column holds a JSON array
// of the color names the product is offered in; a row that predates the
// column decodes to an empty list rather than failing the whole query.
func scanProduct(scan func(dest ...interface{}) error) (model.Product, error) {
	var p model.Product
	var colors []byte
	if err := scan(&p.ID, &p.Name, &p.Price, &p.BrandID, &p.TypeID, &p.Img, &colors, &p.CreatedAt); err != nil {
		return model.Product{}, err
	}
	if len(colors) > 0 {
		_ = json.Unmarshal(colors, &p.Colors)
	}
	return p, nil
}

// GetByID fetches a single product.
func (r *ProductRepo) GetByID(ctx context.Context, id uint64) (model.Product, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+productColumns+" FROM products WHERE id=? LIMIT 1", id)
	p, err := scanProduct(row.Scan)
	if err == sql.ErrNoRows {
		return model.Product{}, ErrNotFound
	}
	return p, err
}

// ListByIDs fetches the products referenced by a basket or save list. The
// result map is keyed by product id; ids with no matching row are simply
// absent, mirroring a catalog entry that was retired after being added.
func (r *ProductRepo) ListByIDs(ctx context.Context, ids []uint64) (map[uint64]model.Product, error) {
	out := make(map[uint64]model.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	query := "SELECT " + productColumns + " FROM products WHERE id IN (?"
	args := []interface{}{ids[0]}
	for _, id := range ids[1:] {
		query += ",?"
		args = append(args, id)
	}
	query += ")"
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, err
		}
		out[p.ID] = p
	}
	return out, rows.Err()
}

// SearchByName returns up to limit products whose name contains the query,
// for the storefront's quick search box.
func (r *ProductRepo) SearchByName(ctx context.Context, name string, limit int) ([]model.Product, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+productColumns+" FROM products WHERE name LIKE CONCAT('%', ?, '%') ORDER BY name LIMIT ?",
		name, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Product
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

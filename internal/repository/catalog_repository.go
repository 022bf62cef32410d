package repository

import (
	"context"
	"database/sql"

	"github.com/linstore/linstore-api/internal/model"
)

// CatalogRepo maintains the brand and type lookup tables behind the filter
// endpoint. Reads are public; creation is reserved for admins.
type CatalogRepo struct{ db *sql.DB }

func NewCatalogRepo(db *sql.DB) *CatalogRepo { return &CatalogRepo{db: db} }

// Brands returns every brand ordered by name.
func (r *CatalogRepo) Brands(ctx context.Context) ([]model.Brand, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name FROM brands ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Brand
	for rows.Next() {
		var b model.Brand
		if err := rows.Scan(&b.ID, &b.Name); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// BrandByID fetches one brand.
func (r *CatalogRepo) BrandByID(ctx context.Context, id uint64) (model.Brand, error) {
	var b model.Brand
	err := r.db.QueryRowContext(ctx, "SELECT id, name FROM brands WHERE id=? LIMIT 1", id).
		Scan(&b.ID, &b.Name)
	if err == sql.ErrNoRows {
		return model.Brand{}, ErrNotFound
	}
	return b, err
}

// CreateBrand inserts a brand and returns it with the generated id.
func (r *CatalogRepo) CreateBrand(ctx context.Context, name string) (model.Brand, error) {
	res, err := r.db.ExecContext(ctx, "INSERT INTO brands (name) VALUES (?)", name)
	if err != nil {
		if isDuplicateKey(err) {
			return model.Brand{}, ErrDuplicateItem
		}
		return model.Brand{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Brand{}, err
	}
	return model.Brand{ID: uint64(id), Name: name}, nil
}

// Types returns every product type ordered by name.
func (r *CatalogRepo) Types(ctx context.Context) ([]model.ProductType, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name FROM types ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.ProductType
	for rows.Next() {
		var t model.ProductType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// TypeByID fetches one product type.
func (r *CatalogRepo) TypeByID(ctx context.Context, id uint64) (model.ProductType, error) {
	var t model.ProductType
	err := r.db.QueryRowContext(ctx, "SELECT id, name FROM types WHERE id=? LIMIT 1", id).
		Scan(&t.ID, &t.Name)
	if err == sql.ErrNoRows {
		return model.ProductType{}, ErrNotFound
	}
	return t, err
}

// CreateType inserts a product type and returns it with the generated id.
func (r *CatalogRepo) CreateType(ctx context.Context, name string) (model.ProductType, error) {
	res, err := r.db.ExecContext(ctx, "INSERT INTO types (name) VALUES (?)", name)
	if err != nil {
		if isDuplicateKey(err) {
			return model.ProductType{}, ErrDuplicateItem
		}
		return model.ProductType{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.ProductType{}, err
	}
	return model.ProductType{ID: uint64(id), Name: name}, nil
}

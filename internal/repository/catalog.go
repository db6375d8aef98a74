package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bidfinds/catalog-importer/internal/entity"
)

// LoadResult summarizes one full-replace load.
type LoadResult struct {
	ProductsCreated   int
	CategoriesCreated int
}

// CatalogRepository owns all catalog writes for the duration of a run.
type CatalogRepository interface {
	// ReplaceCatalog deletes the existing catalog and recreates it from
	// products, creating each category the first time a product references
	// it. The whole load runs in one transaction: a mid-load failure leaves
	// the previous catalog untouched.
	ReplaceCatalog(ctx context.Context, products []*entity.Product) (*LoadResult, error)

	GetProductBySlug(ctx context.Context, slug string) (*entity.Product, error)
	ListCategories(ctx context.Context) ([]*entity.Category, error)
	CountProducts(ctx context.Context) (int, error)
}

type catalogRepository struct {
	db     *DB
	logger *slog.Logger
}

func NewCatalogRepository(db *DB, logger *slog.Logger) CatalogRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &catalogRepository{db: db, logger: logger}
}

func (r *catalogRepository) ReplaceCatalog(ctx context.Context, products []*entity.Product) (*LoadResult, error) {
	tx, err := r.db.SQL.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin load: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM products`); err != nil {
		return nil, fmt.Errorf("delete products: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM categories`); err != nil {
		return nil, fmt.Errorf("delete categories: %w", err)
	}

	now := time.Now().UTC()
	categoryIDs := make(map[string]int64)
	result := &LoadResult{}

	insertCategory := r.db.rebind(`
		INSERT INTO categories (name, slug, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		RETURNING id`)
	insertProduct := r.db.rebind(`
		INSERT INTO products (
			title, slug, description, reviews, rating, brand, asin, features,
			price, discounted_price, thumbnails, previews, category_id,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`)

	// Categories and products are created interleaved in input order: a
	// category row must exist before the first product referencing it.
	for _, p := range products {
		catID, ok := categoryIDs[p.CategorySlug]
		if !ok {
			err := tx.QueryRowContext(ctx, insertCategory,
				p.CategoryName, p.CategorySlug, now, now).Scan(&catID)
			if err != nil {
				return nil, fmt.Errorf("create category %q: %w", p.CategorySlug, err)
			}
			categoryIDs[p.CategorySlug] = catID
			result.CategoriesCreated++
		}
		p.CategoryID = catID

		features, err := marshalNullableList(p.Features)
		if err != nil {
			return nil, fmt.Errorf("encode features for %q: %w", p.Slug, err)
		}
		thumbnails, err := json.Marshal(p.Thumbnails)
		if err != nil {
			return nil, fmt.Errorf("encode thumbnails for %q: %w", p.Slug, err)
		}
		previews, err := json.Marshal(p.Previews)
		if err != nil {
			return nil, fmt.Errorf("encode previews for %q: %w", p.Slug, err)
		}

		err = tx.QueryRowContext(ctx, insertProduct,
			p.Title,
			p.Slug,
			p.Description,
			p.Reviews,
			nullableFloat(p.Rating),
			nullableString(p.Brand),
			nullableString(p.ASIN),
			features,
			p.Price.StringFixed(2),
			p.DiscountedPrice.StringFixed(2),
			string(thumbnails),
			string(previews),
			catID,
			now, now,
		).Scan(&p.ID)
		if err != nil {
			return nil, fmt.Errorf("create product %q: %w", p.Slug, err)
		}
		p.CreatedAt = now
		p.UpdatedAt = now
		result.ProductsCreated++
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit load: %w", err)
	}

	r.logger.Info("catalog replaced",
		"products", result.ProductsCreated,
		"categories", result.CategoriesCreated)
	return result, nil
}

func (r *catalogRepository) GetProductBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	query := r.db.rebind(`
		SELECT p.id, p.title, p.slug, p.description, p.reviews, p.rating,
		       p.brand, p.asin, p.features, p.price, p.discounted_price,
		       p.thumbnails, p.previews, p.category_id, c.name, c.slug
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.slug = ?`)

	var (
		p          entity.Product
		rating     sql.NullFloat64
		brand      sql.NullString
		asin       sql.NullString
		features   sql.NullString
		price      string
		discounted string
		thumbnails string
		previews   string
	)
	err := r.db.SQL.QueryRowContext(ctx, query, slug).Scan(
		&p.ID, &p.Title, &p.Slug, &p.Description, &p.Reviews, &rating,
		&brand, &asin, &features, &price, &discounted,
		&thumbnails, &previews, &p.CategoryID, &p.CategoryName, &p.CategorySlug,
	)
	if err != nil {
		return nil, err
	}

	if rating.Valid {
		p.Rating = &rating.Float64
	}
	if brand.Valid {
		p.Brand = &brand.String
	}
	if asin.Valid {
		p.ASIN = &asin.String
	}
	if features.Valid && features.String != "" {
		if err := json.Unmarshal([]byte(features.String), &p.Features); err != nil {
			return nil, fmt.Errorf("decode features for %q: %w", slug, err)
		}
	}
	if p.Price, err = decimal.NewFromString(price); err != nil {
		return nil, fmt.Errorf("decode price for %q: %w", slug, err)
	}
	if p.DiscountedPrice, err = decimal.NewFromString(discounted); err != nil {
		return nil, fmt.Errorf("decode discounted price for %q: %w", slug, err)
	}
	if err := json.Unmarshal([]byte(thumbnails), &p.Thumbnails); err != nil {
		return nil, fmt.Errorf("decode thumbnails for %q: %w", slug, err)
	}
	if err := json.Unmarshal([]byte(previews), &p.Previews); err != nil {
		return nil, fmt.Errorf("decode previews for %q: %w", slug, err)
	}
	return &p, nil
}

func (r *catalogRepository) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	rows, err := r.db.SQL.QueryContext(ctx,
		`SELECT id, name, slug FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			r.logger.Error("failed to close rows", "error", err)
		}
	}()

	var out []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug); err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

func (r *catalogRepository) CountProducts(ctx context.Context) (int, error) {
	var n int
	err := r.db.SQL.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n)
	return n, err
}

func marshalNullableList(items []string) (any, error) {
	if len(items) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func nullableFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func nullableString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

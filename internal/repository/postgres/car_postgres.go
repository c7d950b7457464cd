package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"carcatalog/internal/model"
	"carcatalog/internal/repository"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var carColumns = []string{
	"c.id",
	"c.name",
	"c.description",
	"c.price",
	"c.image",
	"c.mime_type",
	"c.category_id",
	"cat.name",
	"cat.normalized_name",
}

// CarPostgres is a PostgreSQL implementation of repository.CarRepository.
// Queries are built with squirrel so the category filter stays optional.
type CarPostgres struct {
	db *sql.DB
}

// NewCarPostgres creates a new CarPostgres repository.
func NewCarPostgres(db *sql.DB) *CarPostgres {
	return &CarPostgres{db: db}
}

var _ repository.CarRepository = (*CarPostgres)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCar(row rowScanner) (*model.Car, error) {
	var (
		c   model.Car
		cat model.Category
	)
	if err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Description,
		&c.Price,
		&c.Image,
		&c.MimeType,
		&c.CategoryID,
		&cat.Name,
		&cat.NormalizedName,
	); err != nil {
		return nil, err
	}
	cat.ID = c.CategoryID
	c.Category = &cat
	return &c, nil
}

func selectCars() squirrel.SelectBuilder {
	return psql.Select(carColumns...).
		From("cars c").
		Join("categories cat ON cat.id = c.category_id")
}

func withCategory(b squirrel.SelectBuilder, normalizedName string) squirrel.SelectBuilder {
	if normalizedName == "" {
		return b
	}
	return b.Where(squirrel.Eq{"cat.normalized_name": normalizedName})
}

// Create inserts a car row and returns the stored record.
func (r *CarPostgres) Create(ctx context.Context, car *model.Car) (*model.Car, error) {
	q, args, err := psql.Insert("cars").
		Columns("name", "description", "price", "image", "mime_type", "category_id").
		Values(car.Name, car.Description, car.Price, car.Image, car.MimeType, car.CategoryID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert: %w", err)
	}

	out := *car
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&out.ID); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single car by its ID.
func (r *CarPostgres) FindByID(ctx context.Context, id int) (*model.Car, error) {
	q, args, err := selectCars().Where(squirrel.Eq{"c.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}
	return scanCar(r.db.QueryRowContext(ctx, q, args...))
}

// List returns cars using LIMIT/OFFSET pagination and a total count.
func (r *CarPostgres) List(ctx context.Context, cq repository.CarQuery) (*repository.PageResult[model.Car], error) {
	if cq.Limit <= 0 || cq.Offset < 0 {
		return nil, fmt.Errorf("invalid page: limit %d, offset %d", cq.Limit, cq.Offset)
	}

	countQ, countArgs, err := withCategory(
		psql.Select("COUNT(*)").
			From("cars c").
			Join("categories cat ON cat.id = c.category_id"),
		cq.CategoryNormalizedName,
	).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build count: %w", err)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, countQ, countArgs...).Scan(&total); err != nil {
		return nil, err
	}

	items := make([]model.Car, 0)
	if total == 0 || cq.Offset >= total {
		return &repository.PageResult[model.Car]{Items: items, Total: total}, nil
	}

	listQ, listArgs, err := withCategory(selectCars(), cq.CategoryNormalizedName).
		OrderBy("c.id").
		Limit(uint64(cq.Limit)).
		Offset(uint64(cq.Offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, listQ, listArgs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		c, err := scanCar(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Car]{Items: items, Total: total}, nil
}

// Update overwrites a car row. It returns sql.ErrNoRows when no row matched.
func (r *CarPostgres) Update(ctx context.Context, id int, car *model.Car) error {
	q, args, err := psql.Update("cars").
		Set("name", car.Name).
		Set("description", car.Description).
		Set("price", car.Price).
		Set("category_id", car.CategoryID).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}
	return r.execOne(ctx, q, args...)
}

// UpdateImage sets the picture columns. It returns sql.ErrNoRows when no row matched.
func (r *CarPostgres) UpdateImage(ctx context.Context, id int, image, mimeType string) error {
	q, args, err := psql.Update("cars").
		Set("image", image).
		Set("mime_type", mimeType).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update image: %w", err)
	}
	return r.execOne(ctx, q, args...)
}

// Delete removes a car by ID. It returns sql.ErrNoRows when no row matched.
func (r *CarPostgres) Delete(ctx context.Context, id int) error {
	q, args, err := psql.Delete("cars").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	return r.execOne(ctx, q, args...)
}

func (r *CarPostgres) execOne(ctx context.Context, q string, args ...any) error {
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"

	"github.com/realtorhub/homes-api/internal/core/domain"
)

const (
	findRealtorByHomeID = `SELECT u.id, u.email, u.name, u.phone, u.password_hash, u.role, u.created_at, u.updated_at
FROM homes h JOIN users u ON u.id = h.realtor_id
WHERE h.id = $1`

	deleteHome      = `DELETE FROM homes WHERE id = $1`
	insertHomeImage = `INSERT INTO home_images (home_id, url) VALUES ($1, $2)`
	touchHome       = `UPDATE homes SET updated_at = $2 WHERE id = $1`
)

// HomeRepository is the PostgreSQL-backed implementation of ports.HomeRepository.
type HomeRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewHomeRepository(db *sql.DB) *HomeRepository {
	return &HomeRepository{db: db, now: time.Now}
}

func (r *HomeRepository) List(ctx context.Context, filter domain.HomeFilter) ([]*domain.Home, error) {
	query, args, err := buildListHomesQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list homes: %w", err)
	}
	defer rows.Close()

	homes := make([]*domain.Home, 0)
	for rows.Next() {
		h, err := scanHome(rows)
		if err != nil {
			return nil, err
		}
		homes = append(homes, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate homes: %w", err)
	}

	if err := r.attachImages(ctx, homes); err != nil {
		return nil, err
	}
	return homes, nil
}

func (r *HomeRepository) FindByID(ctx context.Context, id int64) (*domain.Home, error) {
	query, args, err := buildFindHomeQuery(id)
	if err != nil {
		return nil, fmt.Errorf("build find query: %w", err)
	}

	h, err := scanHome(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, err
	}
	if err := r.attachImages(ctx, []*domain.Home{h}); err != nil {
		return nil, err
	}
	return h, nil
}

func (r *HomeRepository) FindRealtorByHomeID(ctx context.Context, homeID int64) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, findRealtorByHomeID, homeID))
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrHomeNotFound
	}
	return u, err
}

func (r *HomeRepository) Create(ctx context.Context, h *domain.Home) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query, args, err := buildInsertHomeQuery(h)
	if err != nil {
		return fmt.Errorf("build insert query: %w", err)
	}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&h.ID); err != nil {
		return fmt.Errorf("insert home: %w", err)
	}
	for _, url := range h.Images {
		if _, err := tx.ExecContext(ctx, insertHomeImage, h.ID, url); err != nil {
			return fmt.Errorf("insert home image: %w", err)
		}
	}
	if h.Images == nil {
		h.Images = []string{}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *HomeRepository) Update(ctx context.Context, id int64, u domain.HomeUpdate) (*domain.Home, error) {
	query, args, err := buildUpdateHomeQuery(id, u, r.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("build update query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("update home: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, domain.ErrHomeNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *HomeRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, deleteHome, id)
	if err != nil {
		return fmt.Errorf("delete home: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrHomeNotFound
	}
	return nil
}

func (r *HomeRepository) AddImage(ctx context.Context, id int64, url string) (*domain.Home, error) {
	if _, err := r.db.ExecContext(ctx, insertHomeImage, id, url); err != nil {
		if postgresError(err) == pgerrcode.ForeignKeyViolation {
			return nil, domain.ErrHomeNotFound
		}
		return nil, fmt.Errorf("insert home image: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, touchHome, id, r.now().UTC()); err != nil {
		return nil, fmt.Errorf("touch home: %w", err)
	}
	return r.FindByID(ctx, id)
}

// attachImages fills Images for every home with a single query.
func (r *HomeRepository) attachImages(ctx context.Context, homes []*domain.Home) error {
	if len(homes) == 0 {
		return nil
	}
	byID := make(map[int64]*domain.Home, len(homes))
	ids := make([]int64, 0, len(homes))
	for _, h := range homes {
		h.Images = []string{}
		byID[h.ID] = h
		ids = append(ids, h.ID)
	}

	query, args, err := buildImagesQuery(ids)
	if err != nil {
		return fmt.Errorf("build images query: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("list home images: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			homeID int64
			url    string
		)
		if err := rows.Scan(&homeID, &url); err != nil {
			return fmt.Errorf("scan home image: %w", err)
		}
		if h, ok := byID[homeID]; ok {
			h.Images = append(h.Images, url)
		}
	}
	return rows.Err()
}

func scanHome(row rowScanner) (*domain.Home, error) {
	var (
		h     domain.Home
		ptype string
	)
	err := row.Scan(&h.ID, &h.Address, &h.NumberOfBedrooms, &h.NumberOfBathrooms, &h.City, &h.ListedDate,
		&h.Price, &h.LandSize, &ptype, &h.RealtorID, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrHomeNotFound
		}
		return nil, fmt.Errorf("scan home: %w", err)
	}
	h.PropertyType = domain.PropertyType(ptype)
	return &h, nil
}

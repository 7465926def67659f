package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

var _ repository.ProductLotRepository = (*ProductLotRepo)(nil)

// ProductLotRepo implementación de ProductLotRepository sobre PostgreSQL
// (usable con pool o tx). La unicidad de (product_id, lot_number) la garantiza
// el constraint; Create traduce la violación a domain.ErrDuplicate.
type ProductLotRepo struct {
	q Querier
}

// NewProductLotRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductLotRepository(q Querier) *ProductLotRepo {
	return &ProductLotRepo{q: q}
}

// GetByID obtiene un lote por ID.
func (r *ProductLotRepo) GetByID(id string) (*entity.ProductLot, error) {
	query := `
		SELECT id, product_id, lot_number, expiration_date, created_at
		FROM product_lots WHERE id = $1`
	var lot entity.ProductLot
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&lot.ID, &lot.ProductID, &lot.LotNumber, &lot.ExpirationDate, &lot.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lot: %w", err)
	}
	return &lot, nil
}

// GetByProductAndLot obtiene un lote por producto y número de lote.
func (r *ProductLotRepo) GetByProductAndLot(productID, lotNumber string) (*entity.ProductLot, error) {
	query := `
		SELECT id, product_id, lot_number, expiration_date, created_at
		FROM product_lots WHERE product_id = $1 AND lot_number = $2`
	var lot entity.ProductLot
	err := r.q.QueryRow(context.Background(), query, productID, lotNumber).Scan(
		&lot.ID, &lot.ProductID, &lot.LotNumber, &lot.ExpirationDate, &lot.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lot by product and number: %w", err)
	}
	return &lot, nil
}

// Create persiste un lote nuevo. Devuelve domain.ErrDuplicate si (product_id,
// lot_number) ya existe, para que el caller relea en vez de duplicar. El
// conflicto se detecta con ON CONFLICT DO NOTHING en lugar del error 23505:
// un 23505 dentro del TxRunner dejaría la transacción de la recepción
// abortada y la relectura del ganador fallaría con 25P02.
func (r *ProductLotRepo) Create(lot *entity.ProductLot) error {
	if lot.ID == "" {
		lot.ID = uuid.New().String()
	}
	query := `
		INSERT INTO product_lots (id, product_id, lot_number, expiration_date, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (product_id, lot_number) DO NOTHING`
	tag, err := r.q.Exec(context.Background(), query,
		lot.ID, lot.ProductID, lot.LotNumber, lot.ExpirationDate, lot.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert lot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDuplicate
	}
	return nil
}

// SetExpiration completa la fecha de vencimiento de un lote creado sin ella.
func (r *ProductLotRepo) SetExpiration(id string, expiration time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE product_lots SET expiration_date = $2 WHERE id = $1 AND expiration_date IS NULL`,
		id, expiration,
	)
	if err != nil {
		return fmt.Errorf("set lot expiration: %w", err)
	}
	return nil
}

package repository

import (
	"context"

	"github.com/rafamossetto/distributor-api/internal/dto"
	"github.com/rafamossetto/distributor-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via in-memory stubs.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	FindByCode(ctx context.Context, code int64) (*model.Product, error)
	List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, int64, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]model.Product, error)
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	NextCode(ctx context.Context) (int64, error)

	// ListPage streams the catalog in stable code order for the price
	// recompute job.
	ListPage(ctx context.Context, offset, limit int) ([]model.Product, error)
	// UpdatePricesPage persists one recomputed page in a single transaction.
	UpdatePricesPage(ctx context.Context, products []model.Product) error
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *productRepo) FindByCode(ctx context.Context, code int64) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&p).Error
	return &p, err
}

func (r *productRepo) List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Product{})
	if filter.Name != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("name").Offset(offset).Limit(filter.Limit).Find(&products).Error
	return products, total, err
}

func (r *productRepo) ListByUserID(ctx context.Context, userID uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("name").Find(&products).Error
	return products, err
}

func (r *productRepo) Update(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Product{}, id).Error
}

// NextCode draws the next product code from a postgres sequence,
// which stays atomic under concurrent writers.
func (r *productRepo) NextCode(ctx context.Context) (int64, error) {
	var num int64
	err := r.db.WithContext(ctx).Raw("SELECT nextval('products_code_seq')").Scan(&num).Error
	return num, err
}

func (r *productRepo) ListPage(ctx context.Context, offset, limit int) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).Order("code").Offset(offset).Limit(limit).Find(&products).Error
	return products, err
}

func (r *productRepo) UpdatePricesPage(ctx context.Context, products []model.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range products {
			if err := tx.Model(&model.Product{}).
				Where("id = ?", products[i].ID).
				Update("prices", products[i].Prices).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

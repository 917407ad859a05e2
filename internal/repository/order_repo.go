package repository

import (
	"context"

	"github.com/rafamossetto/distributor-api/internal/dto"
	"github.com/rafamossetto/distributor-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, o *model.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	List(ctx context.Context, filter dto.OrderFilter) ([]model.Order, int64, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]model.Order, error)
	ListBySelectedList(ctx context.Context, selectedList int) ([]model.Order, error)
	Delete(ctx context.Context, id uuid.UUID) error
	NextDocumentNumber(ctx context.Context, tx *gorm.DB) (int64, error)

	// Transaction runs fn atomically; document numbering and item
	// replacement must commit together with the order row.
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
	ReplaceItemsTx(tx *gorm.DB, orderID uuid.UUID, items []model.OrderItem) error
	UpdateFieldsTx(tx *gorm.DB, orderID uuid.UUID, deliveryDate string, selectedList int) error
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) OrderRepository { return &orderRepo{db: db} }

func (r *orderRepo) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *orderRepo) Create(ctx context.Context, tx *gorm.DB, o *model.Order) error {
	return tx.WithContext(ctx).Create(o).Error
}

func (r *orderRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Preload("Items").First(&o, id).Error
	return &o, err
}

func (r *orderRepo) List(ctx context.Context, filter dto.OrderFilter) ([]model.Order, int64, error) {
	var orders []model.Order
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Order{})
	if filter.Search != "" {
		q = q.Where("client_name ILIKE ?", "%"+filter.Search+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Items").
		Order("date DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&orders).Error

	return orders, total, err
}

func (r *orderRepo) ListByUserID(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).Preload("Items").
		Where("user_id = ?", userID).Order("date DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepo) ListBySelectedList(ctx context.Context, selectedList int) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).Preload("Items").
		Where("selected_list = ?", selectedList).Order("date DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepo) ReplaceItemsTx(tx *gorm.DB, orderID uuid.UUID, items []model.OrderItem) error {
	if err := tx.Where("order_id = ?", orderID).Delete(&model.OrderItem{}).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].OrderID = orderID
	}
	return tx.Create(&items).Error
}

func (r *orderRepo) UpdateFieldsTx(tx *gorm.DB, orderID uuid.UUID, deliveryDate string, selectedList int) error {
	return tx.Model(&model.Order{}).Where("id = ?", orderID).Updates(map[string]interface{}{
		"delivery_date": deliveryDate,
		"selected_list": selectedList,
	}).Error
}

func (r *orderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Order{}, id).Error
}

// NextDocumentNumber uses a postgres sequence for atomic remit numbering.
func (r *orderRepo) NextDocumentNumber(ctx context.Context, tx *gorm.DB) (int64, error) {
	var num int64
	err := tx.WithContext(ctx).Raw("SELECT nextval('orders_document_number_seq')").Scan(&num).Error
	return num, err
}

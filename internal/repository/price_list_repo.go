package repository

import (
	"context"

	"github.com/rafamossetto/distributor-api/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PriceListRepository interface {
	// List returns all tiers in ascending Number order.
	List(ctx context.Context) ([]model.PriceList, error)
	FindByNumber(ctx context.Context, number int) (*model.PriceList, error)
	FindByPercent(ctx context.Context, percent decimal.Decimal) (*model.PriceList, error)
	UpdatePercent(ctx context.Context, number int, percent decimal.Decimal) (int64, error)

	// Transaction runs fn atomically. Tier creation, deletion and
	// renumbering must happen atomically with the count that drives them.
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
	CountTx(tx *gorm.DB) (int64, error)
	CreateTx(tx *gorm.DB, pl *model.PriceList) error
	FindByPercentTx(tx *gorm.DB, percent decimal.Decimal) (*model.PriceList, error)
	DeleteByNumberTx(tx *gorm.DB, number int) (int64, error)
	ListByPercentAscTx(tx *gorm.DB) ([]model.PriceList, error)
	UpdateNumberTx(tx *gorm.DB, id uuid.UUID, number int) error
}

type priceListRepo struct{ db *gorm.DB }

func NewPriceListRepository(db *gorm.DB) PriceListRepository { return &priceListRepo{db: db} }

func (r *priceListRepo) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *priceListRepo) List(ctx context.Context) ([]model.PriceList, error) {
	var lists []model.PriceList
	err := r.db.WithContext(ctx).Order("number").Find(&lists).Error
	return lists, err
}

func (r *priceListRepo) FindByNumber(ctx context.Context, number int) (*model.PriceList, error) {
	var pl model.PriceList
	err := r.db.WithContext(ctx).Where("number = ?", number).First(&pl).Error
	return &pl, err
}

func (r *priceListRepo) FindByPercent(ctx context.Context, percent decimal.Decimal) (*model.PriceList, error) {
	var pl model.PriceList
	err := r.db.WithContext(ctx).Where("percent = ?", percent).First(&pl).Error
	return &pl, err
}

func (r *priceListRepo) FindByPercentTx(tx *gorm.DB, percent decimal.Decimal) (*model.PriceList, error) {
	var pl model.PriceList
	err := tx.Where("percent = ?", percent).First(&pl).Error
	return &pl, err
}

func (r *priceListRepo) CountTx(tx *gorm.DB) (int64, error) {
	var count int64
	err := tx.Model(&model.PriceList{}).Count(&count).Error
	return count, err
}

func (r *priceListRepo) CreateTx(tx *gorm.DB, pl *model.PriceList) error {
	return tx.Create(pl).Error
}

func (r *priceListRepo) DeleteByNumberTx(tx *gorm.DB, number int) (int64, error) {
	res := tx.Where("number = ?", number).Delete(&model.PriceList{})
	return res.RowsAffected, res.Error
}

func (r *priceListRepo) ListByPercentAscTx(tx *gorm.DB) ([]model.PriceList, error) {
	var lists []model.PriceList
	err := tx.Order("percent").Find(&lists).Error
	return lists, err
}

func (r *priceListRepo) UpdateNumberTx(tx *gorm.DB, id uuid.UUID, number int) error {
	return tx.Model(&model.PriceList{}).Where("id = ?", id).Update("number", number).Error
}

func (r *priceListRepo) UpdatePercent(ctx context.Context, number int, percent decimal.Decimal) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.PriceList{}).
		Where("number = ?", number).Update("percent", percent)
	return res.RowsAffected, res.Error
}

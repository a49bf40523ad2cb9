package repositories

import (
	"context"
	"errors"

	"github.com/gymtrack/gymtrack-api/internal/domain/payment"
	"gorm.io/gorm"
)

type gormPaymentRepo struct {
	db *gorm.DB
}

func NewGormPaymentRepo(db *gorm.DB) (PaymentRepository, error) {
	if err := db.AutoMigrate(&payment.Payment{}); err != nil {
		return nil, err
	}
	return &gormPaymentRepo{db: db}, nil
}

func (r *gormPaymentRepo) Create(ctx context.Context, p *payment.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *gormPaymentRepo) List(ctx context.Context) ([]*payment.Payment, error) {
	var out []*payment.Payment
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *gormPaymentRepo) Get(ctx context.Context, id string) (*payment.Payment, error) {
	var p payment.Payment
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *gormPaymentRepo) Update(ctx context.Context, p *payment.Payment) error {
	res := r.db.WithContext(ctx).Model(&payment.Payment{}).
		Where("id = ?", p.ID).
		Select("*").Omit("id", "created_at").
		Updates(p)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

func (r *gormPaymentRepo) Delete(ctx context.Context, id string) (*payment.Payment, error) {
	p, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Delete(&payment.Payment{}, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return p, nil
}

package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/gymtrack/gymtrack-api/internal/domain/member"
	"gorm.io/gorm"
)

type gormMemberRepo struct {
	db *gorm.DB
}

func NewGormMemberRepo(db *gorm.DB) (MemberRepository, error) {
	if err := db.AutoMigrate(&member.Member{}); err != nil {
		return nil, err
	}
	return &gormMemberRepo{db: db}, nil
}

func (r *gormMemberRepo) Create(ctx context.Context, m *member.Member) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *gormMemberRepo) List(ctx context.Context) ([]*member.Member, error) {
	var out []*member.Member
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *gormMemberRepo) Get(ctx context.Context, id member.ID) (*member.Member, error) {
	var m member.Member
	err := r.db.WithContext(ctx).First(&m, "id = ?", string(id)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMemberNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *gormMemberRepo) Update(ctx context.Context, m *member.Member) error {
	// Save on a full struct; nil pointer fields (paymentDate, dueDate) must
	// overwrite, so Select(*) instead of the default non-zero update.
	res := r.db.WithContext(ctx).Model(&member.Member{}).
		Where("id = ?", string(m.ID)).
		Select("*").Omit("id", "created_at").
		Updates(m)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrMemberNotFound
	}
	return nil
}

func (r *gormMemberRepo) Delete(ctx context.Context, id member.ID) (*member.Member, error) {
	m, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Delete(&member.Member{}, "id = ?", string(id)).Error; err != nil {
		return nil, err
	}
	return m, nil
}

func (r *gormMemberRepo) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&member.Member{}).
		Where("due_date IS NOT NULL AND due_date < ? AND payment <> ?", now, member.PaymentPaid).
		Where("payment <> ?", member.PaymentOverdue).
		Updates(map[string]any{"payment": member.PaymentOverdue, "updated_at": now})
	return res.RowsAffected, res.Error
}

func (r *gormMemberRepo) ListOverdue(ctx context.Context) ([]*member.Member, error) {
	var out []*member.Member
	err := r.db.WithContext(ctx).
		Where("payment = ?", member.PaymentOverdue).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *gormMemberRepo) CountByPayment(ctx context.Context, status member.PaymentStatus) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&member.Member{}).
		Where("payment = ?", status).
		Count(&n).Error
	return n, err
}

func (r *gormMemberRepo) SumPaidAmount(ctx context.Context) (float64, error) {
	var total *float64
	err := r.db.WithContext(ctx).Model(&member.Member{}).
		Where("payment = ?", member.PaymentPaid).
		Select("SUM(amount)").
		Scan(&total).Error
	if err != nil || total == nil {
		return 0, err
	}
	return *total, nil
}

func (r *gormMemberRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&member.Member{}).Count(&n).Error
	return n, err
}

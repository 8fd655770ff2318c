package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/finance"
	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/shared"
)

// GormAdvanceRepository implements finance.AdvanceRepository using GORM
type GormAdvanceRepository struct {
	db *gorm.DB
}

// NewGormAdvanceRepository creates a new GormAdvanceRepository
func NewGormAdvanceRepository(db *gorm.DB) *GormAdvanceRepository {
	return &GormAdvanceRepository{db: db}
}

// FindByParty returns one party's advances for one direction
func (r *GormAdvanceRepository) FindByParty(ctx context.Context, direction finance.VoucherDirection, partyID uuid.UUID) ([]*finance.Advance, error) {
	var advances []*finance.Advance
	if err := r.db.WithContext(ctx).
		Where("direction = ? AND party_id = ?", direction, partyID).
		Order("date ASC, created_at ASC").
		Find(&advances).Error; err != nil {
		return nil, err
	}
	return advances, nil
}

// FindByVoucher finds the advance created by one voucher's surplus
func (r *GormAdvanceRepository) FindByVoucher(ctx context.Context, voucherID uuid.UUID) (*finance.Advance, error) {
	var advance finance.Advance
	if err := r.db.WithContext(ctx).First(&advance, "voucher_id = ?", voucherID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &advance, nil
}

// Save creates or updates an advance
func (r *GormAdvanceRepository) Save(ctx context.Context, advance *finance.Advance) error {
	return r.db.WithContext(ctx).Save(advance).Error
}

// DeleteByVoucher deletes the advance created by one voucher
func (r *GormAdvanceRepository) DeleteByVoucher(ctx context.Context, voucherID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("voucher_id = ?", voucherID).
		Delete(&finance.Advance{}).Error
}

// Ensure GormAdvanceRepository implements finance.AdvanceRepository
var _ finance.AdvanceRepository = (*GormAdvanceRepository)(nil)

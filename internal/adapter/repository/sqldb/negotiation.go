package sqldb

import (
	"context"

	"gorm.io/gorm"

	negDomain "peerlend/internal/domain/negotiation"
)

type NegotiationRepository struct{ db *gorm.DB }

func NewNegotiationRepository(db *gorm.DB) *NegotiationRepository {
	return &NegotiationRepository{db: db}
}

func (r *NegotiationRepository) Create(ctx context.Context, n *negDomain.Negotiation) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *NegotiationRepository) GetByNegotiationID(ctx context.Context, negotiationID string) (*negDomain.Negotiation, error) {
	var out negDomain.Negotiation
	res := r.db.WithContext(ctx).Where("negotiation_id = ?", negotiationID).First(&out)
	return &out, res.Error
}

func (r *NegotiationRepository) GetByRequestID(ctx context.Context, requestID string) (*negDomain.Negotiation, error) {
	var out negDomain.Negotiation
	res := r.db.WithContext(ctx).Where("request_id = ?", requestID).First(&out)
	return &out, res.Error
}

func (r *NegotiationRepository) DeleteByRequestID(ctx context.Context, requestID string) error {
	return r.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		Delete(&negDomain.Negotiation{}).Error
}

func (r *NegotiationRepository) Delete(ctx context.Context, n *negDomain.Negotiation) error {
	return r.db.WithContext(ctx).Delete(n).Error
}

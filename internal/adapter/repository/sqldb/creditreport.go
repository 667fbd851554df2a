package sqldb

import (
	"context"

	"gorm.io/gorm"

	crDomain "peerlend/internal/domain/creditreport"
)

type CreditReportRepository struct{ db *gorm.DB }

func NewCreditReportRepository(db *gorm.DB) *CreditReportRepository {
	return &CreditReportRepository{db: db}
}

func (r *CreditReportRepository) Create(ctx context.Context, cr *crDomain.Request) error {
	return r.db.WithContext(ctx).Create(cr).Error
}

func (r *CreditReportRepository) Save(ctx context.Context, cr *crDomain.Request) error {
	return r.db.WithContext(ctx).Save(cr).Error
}

func (r *CreditReportRepository) GetByReportID(ctx context.Context, reportID string) (*crDomain.Request, error) {
	var out crDomain.Request
	res := r.db.WithContext(ctx).Where("report_id = ?", reportID).First(&out)
	return &out, res.Error
}

func (r *CreditReportRepository) ListByRequestID(ctx context.Context, requestID string) ([]crDomain.Request, error) {
	var out []crDomain.Request
	res := r.db.WithContext(ctx).Where("request_id = ?", requestID).Find(&out)
	return out, res.Error
}

func (r *CreditReportRepository) DeleteByRequestID(ctx context.Context, requestID string) error {
	return r.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		Delete(&crDomain.Request{}).Error
}

func (r *CreditReportRepository) Delete(ctx context.Context, cr *crDomain.Request) error {
	return r.db.WithContext(ctx).Delete(cr).Error
}

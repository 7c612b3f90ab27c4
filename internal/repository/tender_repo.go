package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"tendertrack/backend/internal/model"
)

// TenderRepository 合同数据访问接口
type TenderRepository interface {
	Create(ctx context.Context, tender *model.Tender) error
	GetByID(ctx context.Context, id string) (*model.Tender, error)
	// List 按创建时间倒序返回全部合同
	List(ctx context.Context) ([]model.Tender, error)
	// ListRecent 按更新时间倒序返回最近 n 条
	ListRecent(ctx context.Context, n int) ([]model.Tender, error)
	Update(ctx context.Context, tender *model.Tender) error
	Delete(ctx context.Context, id string) error
	// ExistsByTenderID 大小写不敏感的招标编号精确查重，excludeID 非空时排除该内部 ID
	ExistsByTenderID(ctx context.Context, tenderID string, excludeID string) (bool, error)
	// FindForActivation 查询 status=upcoming 且 start_date <= now 的合同
	FindForActivation(ctx context.Context, now time.Time) ([]model.Tender, error)
	// FindForExpiry 查询 status=active 且 end_date < now 的合同
	FindForExpiry(ctx context.Context, now time.Time) ([]model.Tender, error)
	// BulkUpdateStatus 批量更新指定 ID 集合的 status 与 updated_at
	BulkUpdateStatus(ctx context.Context, ids []string, status model.TenderStatus, now time.Time) error
}

type tenderRepo struct {
	db *gorm.DB
}

// NewTenderRepo 创建 TenderRepository 实例
func NewTenderRepo(db *gorm.DB) TenderRepository {
	return &tenderRepo{db: db}
}

func (r *tenderRepo) Create(ctx context.Context, tender *model.Tender) error {
	return r.db.WithContext(ctx).Create(tender).Error
}

func (r *tenderRepo) GetByID(ctx context.Context, id string) (*model.Tender, error) {
	var tender model.Tender
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&tender).Error
	if err != nil {
		return nil, err
	}
	return &tender, nil
}

func (r *tenderRepo) List(ctx context.Context) ([]model.Tender, error) {
	var tenders []model.Tender
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&tenders).Error
	return tenders, err
}

func (r *tenderRepo) ListRecent(ctx context.Context, n int) ([]model.Tender, error) {
	var tenders []model.Tender
	err := r.db.WithContext(ctx).
		Order("updated_at DESC").
		Limit(n).
		Find(&tenders).Error
	return tenders, err
}

func (r *tenderRepo) Update(ctx context.Context, tender *model.Tender) error {
	return r.db.WithContext(ctx).Save(tender).Error
}

func (r *tenderRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Tender{}).Error
}

func (r *tenderRepo) ExistsByTenderID(ctx context.Context, tenderID string, excludeID string) (bool, error) {
	db := r.db.WithContext(ctx).
		Model(&model.Tender{}).
		Where("LOWER(tender_id) = LOWER(?)", tenderID)

	if excludeID != "" {
		db = db.Where("id <> ?", excludeID)
	}

	var count int64
	if err := db.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *tenderRepo) FindForActivation(ctx context.Context, now time.Time) ([]model.Tender, error) {
	var tenders []model.Tender
	err := r.db.WithContext(ctx).
		Where("status = ? AND start_date <= ?", model.StatusUpcoming, now).
		Find(&tenders).Error
	return tenders, err
}

func (r *tenderRepo) FindForExpiry(ctx context.Context, now time.Time) ([]model.Tender, error) {
	var tenders []model.Tender
	err := r.db.WithContext(ctx).
		Where("status = ? AND end_date < ?", model.StatusActive, now).
		Find(&tenders).Error
	return tenders, err
}

func (r *tenderRepo) BulkUpdateStatus(ctx context.Context, ids []string, status model.TenderStatus, now time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&model.Tender{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": now,
		}).Error
}

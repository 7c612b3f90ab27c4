package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Tender   TenderRepository
	Activity ActivityLogRepository
	User     UserRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Tender:   NewTenderRepo(db),
		Activity: NewActivityLogRepo(db),
		User:     NewUserRepo(db),
	}
}

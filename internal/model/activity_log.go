package model

import "time"

// ── 活动日志动作枚举 ──

// ActivityType 日志动作标签
type ActivityType string

const (
	ActionCreated    ActivityType = "created"
	ActionEdited     ActivityType = "edited"
	ActionExtended   ActivityType = "extended"
	ActionFulfilled  ActivityType = "fulfilled"
	ActionTerminated ActivityType = "terminated"
	ActionDeleted    ActivityType = "deleted"
	ActionActivated  ActivityType = "activated"
	ActionExpired    ActivityType = "expired"
)

// Valid 检查动作是否属于闭合枚举
func (t ActivityType) Valid() bool {
	switch t {
	case ActionCreated, ActionEdited, ActionExtended, ActionFulfilled,
		ActionTerminated, ActionDeleted, ActionActivated, ActionExpired:
		return true
	}
	return false
}

// ActivityLog 活动日志表 — 对应 activity_logs
// 仅追加，创建后不可修改、不可删除；合同删除后日志保留
type ActivityLog struct {
	ID          string        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	TenderRefID string        `gorm:"type:uuid;not null;index"                       json:"tender_ref_id"` // 指向 tenders.id，无外键约束（日志需在合同删除后存活）
	Type        ActivityType  `gorm:"type:varchar(20);not null"                      json:"type"`
	Title       string        `gorm:"type:varchar(255);not null"                     json:"title"`
	Description string        `gorm:"type:text"                                      json:"description"`
	User        ActorSnapshot `gorm:"embedded;embeddedPrefix:user_"                  json:"user"`
	Timestamp   time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP;index"       json:"timestamp"`
}

// TableName 指定表名
func (ActivityLog) TableName() string { return "activity_logs" }

package model

import "time"

// User 用户表 — 对应 users
type User struct {
	ID           string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name         string    `gorm:"type:varchar(100);not null"                     json:"name"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         string    `gorm:"type:varchar(20);not null;default:'user'"       json:"role"` // admin | manager | user
	Department   string    `gorm:"type:varchar(100)"                              json:"department"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"updated_at"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// Snapshot 生成写入日志的操作者快照
func (u *User) Snapshot() ActorSnapshot {
	return ActorSnapshot{Name: u.Name, Email: u.Email, Role: u.Role}
}

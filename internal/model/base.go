package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ── PostgreSQL JSONB 自定义类型 ──

// MedicineList 对应 JSONB 药品清单列，实现 GORM Scanner/Valuer 接口。
type MedicineList []Medicine

// Medicine 合同内的单个药品条目
type Medicine struct {
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Quantity     int     `json:"quantity"`
	Unit         string  `json:"unit"`
	PricePerUnit float64 `json:"price_per_unit"`
	Description  string  `json:"description,omitempty"`
}

// Scan 将 JSONB 字节解析为 []Medicine。
func (m *MedicineList) Scan(src interface{}) error {
	return scanJSON(src, m, "MedicineList")
}

// Value 将 []Medicine 序列化为 JSONB。
func (m MedicineList) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// StakeholderList 对应 JSONB 干系人列，实现 GORM Scanner/Valuer 接口。
type StakeholderList []Stakeholder

// Stakeholder 合同干系人
type Stakeholder struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Scan 将 JSONB 字节解析为 []Stakeholder。
func (s *StakeholderList) Scan(src interface{}) error {
	return scanJSON(src, s, "StakeholderList")
}

// Value 将 []Stakeholder 序列化为 JSONB。
func (s StakeholderList) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

func scanJSON(src interface{}, dst interface{}, name string) error {
	if src == nil {
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("%s.Scan: unsupported type %T", name, src)
	}
	if len(b) == 0 {
		return nil
	}
	return json.Unmarshal(b, dst)
}

// ── 操作者快照 ──

// ActorSnapshot 操作者身份快照（嵌入记录时固化，不随用户表变化）
type ActorSnapshot struct {
	Name  string `gorm:"type:varchar(100)" json:"name"`
	Email string `gorm:"type:varchar(255)" json:"email"`
	Role  string `gorm:"type:varchar(20)"  json:"role"`
}

// SystemActor 巡检等后台任务使用的合成操作者
func SystemActor() ActorSnapshot {
	return ActorSnapshot{
		Name:  "system",
		Email: "system@system",
		Role:  "system",
	}
}

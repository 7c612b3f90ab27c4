package model

import "time"

// ── 合同状态枚举 ──

// TenderStatus 合同状态
// terminated 为终态，仅能手动设置，巡检任务永不覆盖
type TenderStatus string

const (
	StatusDraft      TenderStatus = "draft"
	StatusUpcoming   TenderStatus = "upcoming"
	StatusActive     TenderStatus = "active"
	StatusExpired    TenderStatus = "expired"
	StatusTerminated TenderStatus = "terminated"
)

// Valid 检查状态是否属于闭合枚举
func (s TenderStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusUpcoming, StatusActive, StatusExpired, StatusTerminated:
		return true
	}
	return false
}

// Tender 合同（招标）表 — 对应 tenders
type Tender struct {
	ID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	TenderID string `gorm:"type:varchar(64);not null"                      json:"tender_id"` // 外部招标编号，大小写不敏感唯一
	Title    string `gorm:"type:varchar(255);not null"                     json:"title"`

	// 医院信息
	HospitalName    string `gorm:"type:varchar(255);not null" json:"hospital_name"`
	HospitalAddress string `gorm:"type:varchar(255)"          json:"hospital_address"`
	Country         string `gorm:"type:varchar(100)"          json:"country"`
	City            string `gorm:"type:varchar(100)"          json:"city"`
	PostalCode      string `gorm:"type:varchar(20)"           json:"postal_code"`
	ContactPerson   string `gorm:"type:varchar(100)"          json:"contact_person"`
	Email           string `gorm:"type:varchar(255)"          json:"email"`
	Phone           string `gorm:"type:varchar(50)"           json:"phone"`
	HospitalType    string `gorm:"type:varchar(50)"           json:"hospital_type"`
	BedCapacity     int    `gorm:"not null;default:0"         json:"bed_capacity"`

	// 药品与干系人（JSONB）
	Medicines    MedicineList    `gorm:"type:jsonb" json:"medicines"`
	Stakeholders StakeholderList `gorm:"type:jsonb" json:"stakeholders"`

	// 合同条款
	StartDate        time.Time `gorm:"not null"               json:"start_date"`
	EndDate          time.Time `gorm:"not null"               json:"end_date"`
	OriginalEndDate  time.Time `gorm:"not null"               json:"original_end_date"` // 创建时 EndDate 的不可变快照
	ContractValue    float64   `gorm:"type:numeric(14,2)"     json:"contract_value"`
	PaymentTerms     string    `gorm:"type:varchar(255)"      json:"payment_terms"`
	DeliverySchedule string    `gorm:"type:varchar(255)"      json:"delivery_schedule"`
	SpecialTerms     string    `gorm:"type:text"              json:"special_terms,omitempty"`
	RenewalOption    bool      `gorm:"not null;default:false" json:"renewal_option"`

	// 元数据
	Status    TenderStatus  `gorm:"type:varchar(20);not null;default:'draft'" json:"status"`
	CreatedBy ActorSnapshot `gorm:"embedded;embeddedPrefix:created_by_"       json:"created_by"`
	CreatedAt time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP"        json:"created_at"`
	UpdatedAt time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP"        json:"updated_at"`
}

// TableName 指定表名
func (Tender) TableName() string { return "tenders" }

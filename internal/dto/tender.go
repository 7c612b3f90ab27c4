package dto

import "time"

// ── 合同模块 DTO ──

// MedicineItem 药品条目
type MedicineItem struct {
	Name         string  `json:"name"           binding:"required"`
	Category     string  `json:"category"       binding:"required"`
	Quantity     int     `json:"quantity"       binding:"required,min=1"`
	Unit         string  `json:"unit"           binding:"required"`
	PricePerUnit float64 `json:"price_per_unit" binding:"required,min=0"`
	Description  string  `json:"description"`
}

// StakeholderItem 干系人条目
type StakeholderItem struct {
	Name  string `json:"name"  binding:"required"`
	Role  string `json:"role"  binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone"`
}

// CreateTenderRequest 创建合同请求
type CreateTenderRequest struct {
	TenderID string `json:"tender_id" binding:"required,max=64"`
	Title    string `json:"title"     binding:"required,max=255"`

	HospitalName    string `json:"hospital_name" binding:"required"`
	HospitalAddress string `json:"hospital_address"`
	Country         string `json:"country"`
	City            string `json:"city"`
	PostalCode      string `json:"postal_code"`
	ContactPerson   string `json:"contact_person"`
	Email           string `json:"email" binding:"omitempty,email"`
	Phone           string `json:"phone"`
	HospitalType    string `json:"hospital_type"`
	BedCapacity     int    `json:"bed_capacity" binding:"omitempty,min=0"`

	Medicines    []MedicineItem    `json:"medicines"    binding:"omitempty,dive"`
	Stakeholders []StakeholderItem `json:"stakeholders" binding:"omitempty,dive"`

	StartDate        time.Time `json:"start_date" binding:"required"`
	EndDate          time.Time `json:"end_date"   binding:"required"`
	ContractValue    float64   `json:"contract_value" binding:"omitempty,min=0"`
	PaymentTerms     string    `json:"payment_terms"`
	DeliverySchedule string    `json:"delivery_schedule"`
	SpecialTerms     string    `json:"special_terms"`
	RenewalOption    bool      `json:"renewal_option"`
}

// UpdateTenderRequest 更新合同请求
// 全部为可选字段；显式传入的 status 按原样采纳（状态引擎仅用于推导动作标签）
type UpdateTenderRequest struct {
	Title *string `json:"title" binding:"omitempty,max=255"`

	HospitalName    *string `json:"hospital_name"`
	HospitalAddress *string `json:"hospital_address"`
	Country         *string `json:"country"`
	City            *string `json:"city"`
	PostalCode      *string `json:"postal_code"`
	ContactPerson   *string `json:"contact_person"`
	Email           *string `json:"email" binding:"omitempty,email"`
	Phone           *string `json:"phone"`
	HospitalType    *string `json:"hospital_type"`
	BedCapacity     *int    `json:"bed_capacity" binding:"omitempty,min=0"`

	Medicines    []MedicineItem    `json:"medicines"    binding:"omitempty,dive"`
	Stakeholders []StakeholderItem `json:"stakeholders" binding:"omitempty,dive"`

	StartDate        *time.Time `json:"start_date"`
	EndDate          *time.Time `json:"end_date"`
	ContractValue    *float64   `json:"contract_value" binding:"omitempty,min=0"`
	PaymentTerms     *string    `json:"payment_terms"`
	DeliverySchedule *string    `json:"delivery_schedule"`
	SpecialTerms     *string    `json:"special_terms"`
	RenewalOption    *bool      `json:"renewal_option"`

	Status *string `json:"status" binding:"omitempty,oneof=draft upcoming active expired terminated"`
}

// TenderResponse 合同响应
type TenderResponse struct {
	ID       string `json:"id"`
	TenderID string `json:"tender_id"`
	Title    string `json:"title"`

	HospitalName    string `json:"hospital_name"`
	HospitalAddress string `json:"hospital_address,omitempty"`
	Country         string `json:"country,omitempty"`
	City            string `json:"city,omitempty"`
	PostalCode      string `json:"postal_code,omitempty"`
	ContactPerson   string `json:"contact_person,omitempty"`
	Email           string `json:"email,omitempty"`
	Phone           string `json:"phone,omitempty"`
	HospitalType    string `json:"hospital_type,omitempty"`
	BedCapacity     int    `json:"bed_capacity"`

	Medicines    []MedicineItem    `json:"medicines"`
	Stakeholders []StakeholderItem `json:"stakeholders"`

	StartDate        string  `json:"start_date"`
	EndDate          string  `json:"end_date"`
	OriginalEndDate  string  `json:"original_end_date"`
	ContractValue    float64 `json:"contract_value"`
	PaymentTerms     string  `json:"payment_terms,omitempty"`
	DeliverySchedule string  `json:"delivery_schedule,omitempty"`
	SpecialTerms     string  `json:"special_terms,omitempty"`
	RenewalOption    bool    `json:"renewal_option"`

	Status    string        `json:"status"`
	CreatedBy ActorResponse `json:"created_by"`
	CreatedAt string        `json:"created_at"`
	UpdatedAt string        `json:"updated_at"`
}

// CheckTenderIDResponse 招标编号查重响应
type CheckTenderIDResponse struct {
	Exists bool `json:"exists"`
}

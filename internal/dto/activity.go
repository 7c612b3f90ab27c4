package dto

// ── 活动日志模块 DTO ──

// ActorResponse 操作者快照
type ActorResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// ActivityLogResponse 活动日志响应
type ActivityLogResponse struct {
	ID          string        `json:"id"`
	TenderRefID string        `json:"tender_ref_id"`
	Type        string        `json:"type"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	User        ActorResponse `json:"user"`
	Timestamp   string        `json:"timestamp"`
}

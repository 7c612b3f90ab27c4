package dto

// ── 认证模块 DTO ──

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse 用户信息响应（不含密码）
type UserResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Department string `json:"department,omitempty"`
}

// LoginResponse 登录成功响应
// 会话 Token 通过 HttpOnly Cookie 下发，响应体仅携带用户画像
type LoginResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

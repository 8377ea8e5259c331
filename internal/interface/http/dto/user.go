package dto

// RegisterRequest HTTP注册请求
// binding负责格式，密码强度等业务规则由领域服务校验
type RegisterRequest struct {
	Email           string `json:"email" binding:"required,email" example:"taras@example.com"`
	Password        string `json:"password" binding:"required,min=8,max=20" example:"password123"`
	RepeatPassword  string `json:"repeat_password" binding:"required" example:"password123"`
	FirstName       string `json:"first_name" binding:"required,max=100" example:"Taras"`
	LastName        string `json:"last_name" binding:"required,max=100" example:"Shevchenko"`
	ShippingAddress string `json:"shipping_address" binding:"max=500" example:"Kyiv"`
}

// LoginRequest HTTP登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"taras@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// RefreshTokenRequest 刷新Token请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

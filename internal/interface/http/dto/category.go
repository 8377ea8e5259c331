package dto

// CategoryRequest 创建/更新分类请求
type CategoryRequest struct {
	Name        string `json:"name" binding:"required,max=255" example:"Poetry"`
	Description string `json:"description" binding:"max=1000"`
}

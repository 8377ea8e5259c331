package handler

import (
	"github.com/gin-gonic/gin"

	appcart "github.com/xiebiao/online-bookstore/internal/application/cart"
	"github.com/xiebiao/online-bookstore/internal/interface/http/dto"
	"github.com/xiebiao/online-bookstore/internal/interface/http/middleware"
	"github.com/xiebiao/online-bookstore/pkg/response"
)

// CartHandler 购物车HTTP处理器
// 所有接口只操作当前登录用户的购物车，用户ID来自Token而不是请求参数
type CartHandler struct {
	useCase *appcart.CartUseCase
}

// NewCartHandler 创建购物车处理器
func NewCartHandler(useCase *appcart.CartUseCase) *CartHandler {
	return &CartHandler{useCase: useCase}
}

// Get 查看购物车
// @Summary      查看购物车
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=appcart.CartDTO}
// @Router       /shoppingCarts [get]
func (h *CartHandler) Get(c *gin.Context) {
	principal := middleware.MustGetPrincipal(c)

	result, err := h.useCase.Get(c.Request.Context(), principal.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// AddItem 加入购物车
// @Summary      加入购物车
// @Description  同一本书重复加入时累加数量；第一次加购时创建购物车
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AddCartItemRequest true "图书与数量"
// @Success      200 {object} response.Response{data=appcart.CartDTO}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /shoppingCarts [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	var req dto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	principal := middleware.MustGetPrincipal(c)

	result, err := h.useCase.AddItem(c.Request.Context(), appcart.AddItemRequest{
		UserID:   principal.UserID,
		BookID:   req.BookID,
		Quantity: req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// UpdateItem 修改明细数量
// @Summary      修改购物车明细数量
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                       true "购物车明细ID"
// @Param        request body dto.UpdateCartItemRequest true "数量"
// @Success      200 {object} response.Response{data=appcart.CartDTO}
// @Failure      404 {object} response.Response "明细不存在"
// @Router       /shoppingCarts/cart-items/{id} [put]
func (h *CartHandler) UpdateItem(c *gin.Context) {
	itemID, ok := bindID(c)
	if !ok {
		return
	}
	var req dto.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	principal := middleware.MustGetPrincipal(c)

	result, err := h.useCase.UpdateItem(c.Request.Context(), appcart.UpdateItemRequest{
		UserID:   principal.UserID,
		ItemID:   itemID,
		Quantity: req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// RemoveItem 删除明细
// @Summary      删除购物车明细
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "购物车明细ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "明细不存在"
// @Router       /shoppingCarts/cart-items/{id} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	itemID, ok := bindID(c)
	if !ok {
		return
	}
	principal := middleware.MustGetPrincipal(c)

	if err := h.useCase.RemoveItem(c.Request.Context(), principal.UserID, itemID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

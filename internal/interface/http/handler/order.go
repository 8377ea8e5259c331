package handler

import (
	"github.com/gin-gonic/gin"

	apporder "github.com/xiebiao/online-bookstore/internal/application/order"
	"github.com/xiebiao/online-bookstore/internal/interface/http/dto"
	"github.com/xiebiao/online-bookstore/internal/interface/http/middleware"
	"github.com/xiebiao/online-bookstore/pkg/response"
)

// OrderHandler 订单HTTP处理器
type OrderHandler struct {
	placeUseCase  *apporder.PlaceOrderUseCase
	queryUseCase  *apporder.QueryOrdersUseCase
	statusUseCase *apporder.UpdateOrderStatusUseCase
}

// NewOrderHandler 创建订单处理器
func NewOrderHandler(
	placeUseCase *apporder.PlaceOrderUseCase,
	queryUseCase *apporder.QueryOrdersUseCase,
	statusUseCase *apporder.UpdateOrderStatusUseCase,
) *OrderHandler {
	return &OrderHandler{
		placeUseCase:  placeUseCase,
		queryUseCase:  queryUseCase,
		statusUseCase: statusUseCase,
	}
}

// PlaceOrder 下单
// @Summary      下单
// @Description  把当前用户购物车中的全部明细转换为订单，单价取下单时的图书价格
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.PlaceOrderRequest true "收货地址"
// @Success      201 {object} response.Response{data=apporder.OrderDTO} "下单成功"
// @Failure      400 {object} response.Response "收货地址为空"
// @Failure      401 {object} response.Response "未登录"
// @Failure      404 {object} response.Response "购物车或图书不存在"
// @Router       /orders [post]
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req dto.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	principal := middleware.MustGetPrincipal(c)

	result, err := h.placeUseCase.Execute(c.Request.Context(), apporder.PlaceOrderRequest{
		UserID:          principal.UserID,
		ShippingAddress: req.ShippingAddress,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// History 订单历史
// @Summary      订单历史
// @Description  当前用户的订单，按下单时间倒序
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        page      query int false "页码" default(1)
// @Param        page_size query int false "每页数量" default(20)
// @Success      200 {object} response.Response{data=response.PageData{list=[]apporder.OrderDTO}}
// @Router       /orders [get]
func (h *OrderHandler) History(c *gin.Context) {
	p, ok := bindPage(c)
	if !ok {
		return
	}

	result, err := h.queryUseCase.History(c.Request.Context(), middleware.MustGetPrincipal(c), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	writePage(c, result)
}

// UpdateStatus 修改订单状态
// @Summary      修改订单状态
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                          true "订单ID"
// @Param        request body dto.UpdateOrderStatusRequest true "新状态"
// @Success      200 {object} response.Response{data=apporder.OrderDTO}
// @Failure      400 {object} response.Response "状态非法"
// @Failure      403 {object} response.Response "需要管理员权限"
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /orders/{id} [patch]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.statusUseCase.Execute(c.Request.Context(), id, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListItems 订单明细
// @Summary      订单明细
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response{data=[]apporder.OrderItemDTO}
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /orders/{id}/items [get]
func (h *OrderHandler) ListItems(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	result, err := h.queryUseCase.ListItems(c.Request.Context(), middleware.MustGetPrincipal(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetItem 单条订单明细
// @Summary      单条订单明细
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        id     path int true "订单ID"
// @Param        itemId path int true "明细ID"
// @Success      200 {object} response.Response{data=apporder.OrderItemDTO}
// @Failure      404 {object} response.Response "订单或明细不存在"
// @Router       /orders/{id}/items/{itemId} [get]
func (h *OrderHandler) GetItem(c *gin.Context) {
	var uri dto.ItemUri
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.queryUseCase.GetItem(c.Request.Context(), middleware.MustGetPrincipal(c), uri.ID, uri.ItemID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

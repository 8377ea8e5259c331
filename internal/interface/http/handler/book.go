package handler

import (
	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/online-bookstore/internal/application/book"
	"github.com/xiebiao/online-bookstore/internal/interface/http/dto"
	"github.com/xiebiao/online-bookstore/pkg/response"
)

// BookHandler 图书HTTP处理器
// 设计说明：
// 1. Handler只负责HTTP相关的事情：解析请求、调用应用层、返回响应
// 2. 读接口公开，写接口由路由上的RequireRole(ADMIN)保护
type BookHandler struct {
	manageUseCase *appbook.ManageBookUseCase
	listUseCase   *appbook.ListBooksUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(manageUseCase *appbook.ManageBookUseCase, listUseCase *appbook.ListBooksUseCase) *BookHandler {
	return &BookHandler{
		manageUseCase: manageUseCase,
		listUseCase:   listUseCase,
	}
}

// List 图书列表
// @Summary      图书列表
// @Tags         图书
// @Produce      json
// @Param        page      query int false "页码" default(1)
// @Param        page_size query int false "每页数量" default(20)
// @Success      200 {object} response.Response{data=response.PageData{list=[]appbook.BookDTO}}
// @Router       /books [get]
func (h *BookHandler) List(c *gin.Context) {
	p, ok := bindPage(c)
	if !ok {
		return
	}

	result, err := h.listUseCase.List(c.Request.Context(), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	writePage(c, result)
}

// Get 图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=appbook.BookDTO}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /books/{id} [get]
func (h *BookHandler) Get(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	result, err := h.manageUseCase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Search 图书搜索
// @Summary      图书搜索
// @Description  同一字段多个值为OR，不同字段之间为AND；不传条件时返回全部图书
// @Tags         图书
// @Produce      json
// @Param        titles    query []string false "书名（精确匹配，可多值）" collectionFormat(csv)
// @Param        authors   query []string false "作者（精确匹配，可多值）" collectionFormat(csv)
// @Param        page      query int      false "页码" default(1)
// @Param        page_size query int      false "每页数量" default(20)
// @Success      200 {object} response.Response{data=response.PageData{list=[]appbook.BookDTO}}
// @Router       /books/search [get]
func (h *BookHandler) Search(c *gin.Context) {
	var q dto.SearchBooksQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.listUseCase.Search(c.Request.Context(), appbook.SearchRequest{
		Titles:     splitValues(q.Titles),
		Authors:    splitValues(q.Authors),
		Pagination: q.ToPagination(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	writePage(c, result)
}

// ListByCategory 分类下的图书
// @Summary      分类下的图书
// @Tags         分类
// @Produce      json
// @Security     BearerAuth
// @Param        id        path  int true  "分类ID"
// @Param        page      query int false "页码" default(1)
// @Param        page_size query int false "每页数量" default(20)
// @Success      200 {object} response.Response{data=response.PageData{list=[]appbook.BookDTO}}
// @Failure      404 {object} response.Response "分类不存在"
// @Router       /categories/{id}/books [get]
func (h *BookHandler) ListByCategory(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	p, ok := bindPage(c)
	if !ok {
		return
	}

	result, err := h.listUseCase.ListByCategory(c.Request.Context(), id, p)
	if err != nil {
		response.Error(c, err)
		return
	}
	writePage(c, result)
}

// Create 创建图书
// @Summary      创建图书
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.BookRequest true "图书信息"
// @Success      201 {object} response.Response{data=appbook.BookDTO}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      403 {object} response.Response "需要管理员权限"
// @Failure      404 {object} response.Response "分类不存在"
// @Failure      409 {object} response.Response "ISBN已存在"
// @Router       /books [post]
func (h *BookHandler) Create(c *gin.Context) {
	var req dto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.manageUseCase.Create(c.Request.Context(), toBookRequest(req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Update 更新图书
// @Summary      更新图书
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int             true "图书ID"
// @Param        request body dto.BookRequest true "图书信息"
// @Success      200 {object} response.Response{data=appbook.BookDTO}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "图书不存在"
// @Failure      409 {object} response.Response "ISBN已存在"
// @Router       /books/{id} [put]
func (h *BookHandler) Update(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	var req dto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.manageUseCase.Update(c.Request.Context(), id, toBookRequest(req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Delete 删除图书（软删除）
// @Summary      删除图书
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /books/{id} [delete]
func (h *BookHandler) Delete(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	if err := h.manageUseCase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func toBookRequest(req dto.BookRequest) appbook.BookRequest {
	return appbook.BookRequest{
		Title:       req.Title,
		Author:      req.Author,
		ISBN:        req.ISBN,
		Price:       *req.Price,
		Description: req.Description,
		CoverImage:  req.CoverImage,
		CategoryIDs: req.CategoryIDs,
	}
}

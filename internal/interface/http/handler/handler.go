package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/online-bookstore/internal/application"
	"github.com/xiebiao/online-bookstore/internal/interface/http/dto"
	"github.com/xiebiao/online-bookstore/pkg/response"
)

// bindID 解析路径中的:id，失败时已写入错误响应
func bindID(c *gin.Context) (uint, bool) {
	var uri dto.IDUri
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, err)
		return 0, false
	}
	return uri.ID, true
}

// bindPage 解析分页参数
func bindPage(c *gin.Context) (application.Pagination, bool) {
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return application.Pagination{}, false
	}
	return q.ToPagination(), true
}

// writePage 分页响应
func writePage[T any](c *gin.Context, page *application.PageResult[T]) {
	response.SuccessWithPage(c, page.List, page.Total, page.Page, page.PageSize)
}

// splitValues 展开逗号分隔的多值参数：["a,b", "c"] → ["a", "b", "c"]
func splitValues(raw []string) []string {
	var out []string
	for _, r := range raw {
		for _, v := range strings.Split(r, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

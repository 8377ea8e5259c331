package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/online-bookstore/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(handler gin.HandlerFunc) (*httptest.ResponseRecorder, Response) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	handler(c)

	var resp Response
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestSuccess(t *testing.T) {
	w, resp := perform(func(c *gin.Context) {
		Success(c, gin.H{"id": 1})
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, resp.Code)
	assert.Equal(t, "success", resp.Message)
}

func TestError(t *testing.T) {
	t.Run("业务错误映射HTTP状态码", func(t *testing.T) {
		w, resp := perform(func(c *gin.Context) {
			Error(c, apperrors.ErrUserNotFound)
		})

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, apperrors.ErrCodeUserNotFound, resp.Code)
		assert.Equal(t, "用户不存在", resp.Message)
	})

	t.Run("内部错误不泄露细节", func(t *testing.T) {
		w, resp := perform(func(c *gin.Context) {
			Error(c, errors.New("dial tcp 10.0.0.1:3306: connection refused"))
		})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, apperrors.ErrCodeInternal, resp.Code)
		assert.NotContains(t, w.Body.String(), "10.0.0.1")
	})
}

func TestSuccessWithPage(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	SuccessWithPage(c, []int{1, 2, 3}, 21, 1, 10)

	var body struct {
		Data PageData `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(21), body.Data.Total)
	assert.Equal(t, 3, body.Data.TotalPages)
}

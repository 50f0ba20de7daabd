package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/educonnect/pkg/errors"
	"github.com/xiebiao/educonnect/pkg/response"
)

// BodyLimit 限制请求体大小
// Content-Length已超限的直接拒绝；其余情况读取超过n字节时返回 *http.MaxBytesError
func BodyLimit(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > n {
			response.Abort(c, apperrors.ErrRequestTooLarge)
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
	}
}

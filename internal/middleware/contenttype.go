package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/finwallet/fintech-api/pkg/web"
)

// ValidateContentType rejects body-carrying requests whose Content-Type is
// not in the allowed list.
func ValidateContentType(allowed ...string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if ctx.Request.Method == http.MethodGet || ctx.Request.Method == http.MethodDelete {
			ctx.Next()
			return
		}

		contentType := ctx.ContentType()
		for _, a := range allowed {
			if strings.EqualFold(contentType, a) {
				ctx.Next()
				return
			}
		}

		msg := fmt.Sprintf("unsupported content type %q", contentType)
		ctx.AbortWithStatusJSON(http.StatusUnsupportedMediaType,
			web.ErrorMsg(http.StatusUnsupportedMediaType, msg))
	}
}

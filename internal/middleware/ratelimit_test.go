package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newServer := func(maxRequests int, window time.Duration) *gin.Engine {
		server := gin.New()
		server.Use(RateLimiter(maxRequests, window))
		server.GET("/", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{})
		})

		return server
	}

	send := func(server *gin.Engine, ip string) int {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.RemoteAddr = ip + ":1234"

		recorder := httptest.NewRecorder()
		server.ServeHTTP(recorder, request)

		return recorder.Code
	}

	t.Run("UnderLimit", func(t *testing.T) {
		server := newServer(3, time.Minute)

		for i := 0; i < 3; i++ {
			require.Equal(t, http.StatusOK, send(server, "10.0.0.1"))
		}
	})

	t.Run("OverLimit", func(t *testing.T) {
		server := newServer(2, time.Minute)

		require.Equal(t, http.StatusOK, send(server, "10.0.0.2"))
		require.Equal(t, http.StatusOK, send(server, "10.0.0.2"))
		require.Equal(t, http.StatusTooManyRequests, send(server, "10.0.0.2"))
	})

	t.Run("PerClientIsolation", func(t *testing.T) {
		server := newServer(1, time.Minute)

		require.Equal(t, http.StatusOK, send(server, "10.0.0.3"))
		require.Equal(t, http.StatusTooManyRequests, send(server, "10.0.0.3"))
		require.Equal(t, http.StatusOK, send(server, "10.0.0.4"))
	})

	t.Run("WindowReset", func(t *testing.T) {
		server := newServer(1, 20*time.Millisecond)

		require.Equal(t, http.StatusOK, send(server, "10.0.0.5"))
		require.Equal(t, http.StatusTooManyRequests, send(server, "10.0.0.5"))

		time.Sleep(30 * time.Millisecond)

		require.Equal(t, http.StatusOK, send(server, "10.0.0.5"))
	})
}

package middleware_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-leave/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const idempTestUserID uint = 4

func newIdempotencyRouter(rdb *redis.Client, handlerCalled *bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/leaverequest/request",
		func(c *gin.Context) { c.Set("user_id", idempTestUserID) },
		middleware.Idempotency(rdb, time.Hour),
		func(c *gin.Context) {
			*handlerCalled = true
			c.JSON(http.StatusOK, gin.H{"message": "created"})
		},
	)
	return r
}

func idempRequest(key string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/leaverequest/request", nil)
	if key != "" {
		req.Header.Set("Idempotency-Key", key)
	}
	return req
}

func TestIdempotencyMiddleware(t *testing.T) {
	cacheKey := fmt.Sprintf("idemp:/leaverequest/request:%d:key-123", idempTestUserID)
	lockKey := cacheKey + ":lock"

	t.Run("a repeated key replays the cached response", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		cached := `{"message":"created"}`
		mock.ExpectGet(cacheKey).SetVal(cached)

		handlerCalled := false
		w := httptest.NewRecorder()
		newIdempotencyRouter(rdb, &handlerCalled).ServeHTTP(w, idempRequest("key-123"))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "true", w.Header().Get("Idempotent-Replay"))
		assert.Equal(t, cached, w.Body.String())
		assert.False(t, handlerCalled)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("a duplicate still in flight is a conflict", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(false)

		handlerCalled := false
		w := httptest.NewRecorder()
		newIdempotencyRouter(rdb, &handlerCalled).ServeHTTP(w, idempRequest("key-123"))

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "CONFLICT")
		assert.False(t, handlerCalled)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("a fresh success is cached and the lock released", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(true)
		mock.ExpectSet(cacheKey, []byte(`{"message":"created"}`), time.Hour).SetVal("OK")
		mock.ExpectDel(lockKey).SetVal(1)

		handlerCalled := false
		w := httptest.NewRecorder()
		newIdempotencyRouter(rdb, &handlerCalled).ServeHTTP(w, idempRequest("key-123"))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Idempotent-Replay"))
		assert.True(t, handlerCalled)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("a failed attempt releases the lock without caching", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(true)
		mock.ExpectDel(lockKey).SetVal(1)

		gin.SetMode(gin.TestMode)
		r := gin.New()
		r.POST("/leaverequest/request",
			func(c *gin.Context) { c.Set("user_id", idempTestUserID) },
			middleware.Idempotency(rdb, time.Hour),
			func(c *gin.Context) {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "rejected"})
			},
		)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, idempRequest("key-123"))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("skipped without a key or without redis", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()

		handlerCalled := false
		w := httptest.NewRecorder()
		newIdempotencyRouter(rdb, &handlerCalled).ServeHTTP(w, idempRequest(""))
		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, handlerCalled)
		assert.NoError(t, mock.ExpectationsWereMet())

		handlerCalled = false
		w = httptest.NewRecorder()
		newIdempotencyRouter(nil, &handlerCalled).ServeHTTP(w, idempRequest("key-123"))
		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, handlerCalled)
	})
}

package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go-procurement/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	HeaderIdempotencyKey = "Idempotency-Key"
	HeaderReplayed       = "Idempotent-Replayed"

	idempotencyLockTTL  = 30 * time.Second
	idempotencyCacheTTL = 24 * time.Hour
)

var errRequestInFlight = apperror.New(
	"PROCESSING",
	"A request with this Idempotency-Key is still being processed",
	http.StatusConflict,
)

// unlockScript deletes the lock only while it still holds this request's
// token, so a request that outlived the lock TTL cannot release a newer lock.
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

var newLockToken = uuid.NewString

type cachedResponse struct {
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body"`
}

type bodyRecorder struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// IdempotencyCacheKey scopes a key to the concrete request path and caller,
// so one key reused on /cost-estimates/1/line-items and /cost-estimates/2/line-items
// stays two entries.
func IdempotencyCacheKey(path string, userID int64, key string) string {
	return fmt.Sprintf("idemp:%s:%d:%s", path, userID, key)
}

// Idempotency replays the stored 2xx response for a repeated POST carrying
// the same Idempotency-Key. A duplicate arriving while the first is still
// running gets 409 PROCESSING. Redis failures fail open.
func Idempotency(rdb *redis.Client, logger ...*zap.Logger) gin.HandlerFunc {
	log := zap.L().Named("middleware.idempotency")
	if len(logger) > 0 && logger[0] != nil {
		log = logger[0].Named("middleware.idempotency")
	}

	return func(c *gin.Context) {
		idempKey := c.GetHeader(HeaderIdempotencyKey)
		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		var userID int64
		if actor, ok := ActorFromContext(c); ok {
			userID = actor.UserID
		}
		ctx := c.Request.Context()
		cacheKey := IdempotencyCacheKey(c.Request.URL.Path, userID, idempKey)
		lockKey := cacheKey + ":lock"

		val, err := rdb.Get(ctx, cacheKey).Result()
		switch {
		case err == nil:
			var cached cachedResponse
			if jsonErr := json.Unmarshal([]byte(val), &cached); jsonErr == nil {
				c.Header(HeaderReplayed, "true")
				c.Data(cached.Status, "application/json; charset=utf-8", cached.Body)
				c.Abort()
				return
			}
			log.Warn("idempotency cache entry corrupt", zap.String("key", cacheKey))
		case !errors.Is(err, redis.Nil):
			log.Error("idempotency cache lookup failed", zap.String("key", cacheKey), zap.Error(err))
			c.Next()
			return
		}

		token := newLockToken()
		acquired, err := rdb.SetNX(ctx, lockKey, token, idempotencyLockTTL).Result()
		if err != nil {
			log.Error("idempotency lock failed", zap.String("key", lockKey), zap.Error(err))
			c.Next()
			return
		}
		if !acquired {
			abortWithError(c, errRequestInFlight)
			return
		}

		rec := &bodyRecorder{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = rec

		c.Next()

		status := rec.Status()
		if status >= 200 && status < 300 && json.Valid(rec.body.Bytes()) {
			payload, _ := json.Marshal(cachedResponse{Status: status, Body: rec.body.Bytes()})
			if err := rdb.Set(ctx, cacheKey, payload, idempotencyCacheTTL).Err(); err != nil {
				log.Error("idempotency cache store failed", zap.String("key", cacheKey), zap.Error(err))
			}
		}
		if err := unlockScript.Run(ctx, rdb, []string{lockKey}, token).Err(); err != nil {
			log.Error("idempotency unlock failed", zap.String("key", lockKey), zap.Error(err))
		}
	}
}

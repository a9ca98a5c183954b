package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const responseCacheTTL = 24 * time.Hour

// CachedResponse adalah entri cache idempotency: status asli plus body,
// supaya replay mengembalikan kontrak yang sama dengan request pertama.
type CachedResponse struct {
	Status int             `json:"status"`
	Data   json.RawMessage `json:"data"`
}

// CacheResponse menyimpan respons sukses sebuah request ber-Idempotency-Key.
func CacheResponse(ctx context.Context, rdb *redis.Client, key string, status int, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}

	entry, err := json.Marshal(CachedResponse{Status: status, Data: payload})
	if err != nil {
		return err
	}

	return rdb.Set(ctx, key, entry, responseCacheTTL).Err()
}

// Idempotency menahan POST ganda yang membawa header Idempotency-Key yang sama.
// Scope per client IP karena API ini tidak punya identitas user.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")

		if rdb == nil || idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), c.ClientIP(), idempKey)
		lockKey := cacheKey + ":lock"

		// 1. Cek cache respons sebelumnya; replay dengan status aslinya
		val, err := rdb.Get(c.Request.Context(), cacheKey).Result()
		if err == nil {
			var cached CachedResponse
			if unmarshalErr := json.Unmarshal([]byte(val), &cached); unmarshalErr == nil && cached.Status != 0 {
				c.AbortWithStatusJSON(cached.Status, gin.H{"ok": true, "data": cached.Data})
				return
			}
		}

		// 2. Atomic lock (SetNX). Expiry pendek agar lock hilang sendiri jika server crash.
		isNew, _ := rdb.SetNX(c.Request.Context(), lockKey, "locked", 30*time.Second).Result()
		if !isNew {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"code":    "PROCESSING",
				"message": "Request with this key is still being processed",
			})
			return
		}

		// Key diteruskan ke handler: lock dihapus setelah selesai, respons sukses di-cache
		c.Set("idempotency_cache_key", cacheKey)
		c.Set("idempotency_lock_key", lockKey)

		c.Next()
	}
}

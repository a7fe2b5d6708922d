package middlewares

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger はリクエストごとにメソッド・パス・ステータス・所要時間を記録する
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		log.Printf("%s %s %d %v", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

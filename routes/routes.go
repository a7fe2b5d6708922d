package routes

import (
	"chatweb/controllers"
	"chatweb/middlewares"

	"github.com/gin-gonic/gin"
)

func SetupRouter(ctrl *controllers.ChatController) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.Logger())

	// CORSの設定
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// チャットメッセージ送信（ブロッキング）
	r.POST("/chat", ctrl.HandleChat)

	// チャットメッセージ送信（ストリーミング、SSE）
	r.POST("/chat/stream", ctrl.HandleChatStream)

	// 会話履歴を取得
	r.GET("/chat/history", ctrl.GetHistory)

	// 会話を初期化
	r.POST("/chat/reset", ctrl.ResetChat)

	// ロール別のメッセージ統計
	r.GET("/chat/stats", ctrl.GetStats)

	// 会話履歴のダウンロード
	r.GET("/chat/export", ctrl.ExportChat)

	// モデル情報
	r.GET("/chat/model", ctrl.GetModelInfo)

	// 温度設定の更新
	r.POST("/chat/settings", ctrl.UpdateSettings)

	return r
}

package controllers

import (
	"chatweb/models"
	"chatweb/services"
	"io"
	"net/http"
	"time"

	"log"

	"github.com/gin-gonic/gin"
)

// ChatController はHTTP層とコア（ストア・リレー）の橋渡しをする。
// 依存はmainで組み立てて注入する（テストではモッククライアントに差し替え）。
type ChatController struct {
	store     *services.ConversationStore
	relay     *services.ChatRelay
	models    *services.ModelService
	greeting  string
	modelName string
}

func NewChatController(store *services.ConversationStore, relay *services.ChatRelay, models *services.ModelService, greeting string, modelName string) *ChatController {
	return &ChatController{
		store:     store,
		relay:     relay,
		models:    models,
		greeting:  greeting,
		modelName: modelName,
	}
}

type chatRequest struct {
	// 空メッセージも許可する（リレー側で検証しない方針に合わせる）
	Message string `json:"message"`
}

// HandleChat はブロッキングモードの送信。応答が完成してからまとめて返す。
func (ctrl *ChatController) HandleChat(c *gin.Context) {
	var request chatRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		log.Printf("Error binding JSON: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	reply := ctrl.relay.Send(c.Request.Context(), request.Message)

	c.JSON(http.StatusOK, gin.H{
		"reply":     reply,
		"timestamp": services.GetCurrentTimestamp(),
	})
}

// HandleChatStream はストリーミングモードの送信。断片をSSEで逐次送る。
func (ctrl *ChatController) HandleChatStream(c *gin.Context) {
	var request chatRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		log.Printf("Error binding JSON: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	fragments := ctrl.relay.SendStream(c.Request.Context(), request.Message)

	// チャネルがクローズされた時点で履歴への追加は完了している
	c.Stream(func(w io.Writer) bool {
		fragment, ok := <-fragments
		if !ok {
			c.SSEvent("done", "")
			return false
		}
		c.SSEvent("message", fragment)
		return true
	})
}

// GetHistory は会話履歴全体を挿入順で返す
func (ctrl *ChatController) GetHistory(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"messages": ctrl.store.All()})
}

// ResetChat は会話を初期化し、挨拶メッセージを再登録する
func (ctrl *ChatController) ResetChat(c *gin.Context) {
	ctrl.store.Clear(ctrl.greeting)
	c.JSON(http.StatusOK, gin.H{"messages": ctrl.store.All()})
}

// GetStats はロール別のメッセージ数を返す（サイドバーの統計表示用）
func (ctrl *ChatController) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"user_messages":      ctrl.store.Count(models.RoleUser),
		"assistant_messages": ctrl.store.Count(models.RoleAssistant),
		"generated_at":       services.GetCurrentTimestamp(),
	})
}

// ExportChat は会話履歴をプレーンテキストでダウンロードさせる
func (ctrl *ChatController) ExportChat(c *gin.Context) {
	transcript := services.FormatTranscript(ctrl.store.All())
	filename := services.TranscriptFilename(time.Now())

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(transcript))
}

// GetModelInfo はモデル情報を返す。Ollamaに接続できない場合は設定値のみ返す
func (ctrl *ChatController) GetModelInfo(c *gin.Context) {
	info, err := ctrl.models.GetModelInfo()
	if err != nil {
		log.Printf("Error fetching model info: %v", err)
		c.JSON(http.StatusOK, gin.H{"model": ctrl.modelName})
		return
	}

	c.JSON(http.StatusOK, info)
}

type settingsRequest struct {
	Temperature *float64 `json:"temperature" binding:"required"`
}

// UpdateSettings は温度設定を更新する（0〜1の範囲外は400）
func (ctrl *ChatController) UpdateSettings(c *gin.Context) {
	var request settingsRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := ctrl.relay.SetTemperature(*request.Temperature); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"temperature": ctrl.relay.Temperature()})
}

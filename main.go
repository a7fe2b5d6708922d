package main

import (
	"chatweb/config"
	"chatweb/controllers"
	"chatweb/routes"
	"chatweb/services"
	_ "embed"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

//go:embed static/index.html
var indexHTML []byte

func main() {
	// .envがあれば読み込む（無くてもデフォルト設定で起動する）
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, using environment defaults")
	}

	gin.SetMode(gin.ReleaseMode)

	// セッション開始時に挨拶メッセージ入りでストアを生成する
	store := services.NewConversationStore(config.GetGreeting())
	llm := services.NewOllamaService(config.GetOllamaURL(), config.GetModelName())
	relay := services.NewChatRelay(store, llm, config.GetTemperature())
	modelService := services.NewModelService(config.GetOllamaURL(), config.GetModelName())

	ctrl := controllers.NewChatController(store, relay, modelService, config.GetGreeting(), config.GetModelName())

	router := routes.SetupRouter(ctrl)

	// チャット画面
	router.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
	})

	port := ":" + config.GetPort()
	log.Printf("Server starting on port %s (model: %s, ollama: %s)", port, config.GetModelName(), config.GetOllamaURL())
	if err := router.Run(port); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

package config

import (
	"os"
	"strconv"
)

const (
	DefaultOllamaURL   = "http://localhost:11434"
	DefaultModelName   = "gemma2:2b"
	DefaultTemperature = 0.7
	DefaultPort        = "8080"
	DefaultGreeting    = "Hello! 👋 How can I help you today?"
)

// GetOllamaURL は推論サーバーのベースURLを返す
func GetOllamaURL() string {
	if url := os.Getenv("OLLAMA_URL"); url != "" {
		return url
	}
	return DefaultOllamaURL
}

// GetModelName は使用するモデル名を返す
func GetModelName() string {
	if model := os.Getenv("MODEL_NAME"); model != "" {
		return model
	}
	return DefaultModelName
}

// GetTemperature は温度の初期値を返す（0〜1の範囲外・不正値はデフォルトにフォールバック）
func GetTemperature() float64 {
	raw := os.Getenv("TEMPERATURE")
	if raw == "" {
		return DefaultTemperature
	}

	temperature, err := strconv.ParseFloat(raw, 64)
	if err != nil || temperature < 0 || temperature > 1 {
		return DefaultTemperature
	}
	return temperature
}

// GetPort はHTTPサーバーの待ち受けポートを返す
func GetPort() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return DefaultPort
}

// GetGreeting はセッション開始時に表示する挨拶メッセージを返す
func GetGreeting() string {
	if greeting := os.Getenv("GREETING"); greeting != "" {
		return greeting
	}
	return DefaultGreeting
}

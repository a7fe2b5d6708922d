package services

import (
	"chatweb/models"
	"strings"
)

// FormatTranscript は会話履歴をダウンロード用のプレーンテキストに整形する。
// 1メッセージにつき「<Role>: <content>」を1行、空行区切り。
func FormatTranscript(messages []models.Message) string {
	var builder strings.Builder

	for _, msg := range messages {
		role := "Assistant"
		if msg.Role == models.RoleUser {
			role = "User"
		}
		builder.WriteString(role)
		builder.WriteString(": ")
		builder.WriteString(msg.Content)
		builder.WriteString("\n\n")
	}

	return builder.String()
}

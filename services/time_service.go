package services

import (
	"fmt"
	"time"
)

// GetCurrentTimestamp は現在のタイムスタンプをISO8601形式で返します
func GetCurrentTimestamp() string {
	return time.Now().Format(time.RFC3339)
}

// TranscriptFilename はエクスポート用のファイル名を日付入りで返します
func TranscriptFilename(now time.Time) string {
	return fmt.Sprintf("chat_history_%s.txt", now.Format("20060102"))
}

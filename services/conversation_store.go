package services

import (
	"chatweb/models"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ConversationStore はセッション中の会話履歴を保持するインメモリストア。
// 追記専用で、並び順は挿入順（＝時系列順）を保証する。
type ConversationStore struct {
	mu       sync.Mutex
	messages []models.Message
}

// NewConversationStore はストアを生成する。seedが空でなければ
// アシスタントの挨拶メッセージとして先頭に登録する。
func NewConversationStore(seed string) *ConversationStore {
	s := &ConversationStore{}
	if seed != "" {
		s.Append(models.RoleAssistant, seed)
	}
	return s
}

// Append はメッセージを末尾に追加し、保存した内容を返す。
// contentの検証は行わない（空文字列も許可）。
func (s *ConversationStore) Append(role string, content string) models.Message {
	message := models.Message{
		ID:        uuid.New().String(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, message)

	return message
}

// All は全メッセージを挿入順で返す。呼び出し側が変更できないようコピーを返す。
func (s *ConversationStore) All() []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	messages := make([]models.Message, len(s.messages))
	copy(messages, s.messages)
	return messages
}

// Clear は履歴を空にする。seedが空でなければ挨拶メッセージを再登録する。
func (s *ConversationStore) Clear(seed string) {
	s.mu.Lock()
	s.messages = nil
	s.mu.Unlock()

	if seed != "" {
		s.Append(models.RoleAssistant, seed)
	}
}

// Count は指定ロールのメッセージ数を返す（統計表示用）。
func (s *ConversationStore) Count(role string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, m := range s.messages {
		if m.Role == role {
			count++
		}
	}
	return count
}

// Len は全メッセージ数を返す。
func (s *ConversationStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

package services

import (
	"chatweb/models"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

var ErrTemperatureOutOfRange = errors.New("temperature must be between 0 and 1")

// DiagnosticMessage は推論サーバーの失敗を画面に表示できる定型文へ変換する。
// エラーはアシスタントの発話として履歴に残るため、利用者にもそのまま見える。
func DiagnosticMessage(err error) string {
	return fmt.Sprintf("An error occurred: %v. Please verify the inference service is running.", err)
}

// ChatRelay はユーザー発話1件をアシスタント応答1件に変換する中継役。
// ユーザーメッセージをストアへ追加 → 全履歴をリクエストに詰めて推論サーバーを
// 呼び出し → 応答をアシスタントメッセージとしてストアへ追加する。
// 推論サーバー側の失敗は例外として外へ出さず、定型の診断メッセージを
// アシスタント応答として履歴に残す（会話はそのまま継続できる）。
type ChatRelay struct {
	store *ConversationStore
	llm   InferenceClient

	// 進行中のsendは常に1件。前の呼び出しが完了するまで次は開始しない
	sendMu sync.Mutex

	settingsMu  sync.RWMutex
	temperature float64
}

func NewChatRelay(store *ConversationStore, llm InferenceClient, temperature float64) *ChatRelay {
	return &ChatRelay{
		store:       store,
		llm:         llm,
		temperature: temperature,
	}
}

// Temperature は現在の温度設定を返す。
func (r *ChatRelay) Temperature() float64 {
	r.settingsMu.RLock()
	defer r.settingsMu.RUnlock()
	return r.temperature
}

// SetTemperature は温度を更新する。範囲は[0,1]。
func (r *ChatRelay) SetTemperature(temperature float64) error {
	if temperature < 0 || temperature > 1 {
		return ErrTemperatureOutOfRange
	}

	r.settingsMu.Lock()
	r.temperature = temperature
	r.settingsMu.Unlock()
	return nil
}

// Send はブロッキングモード。応答（または診断メッセージ）を返す。
// userTextの検証・トリムは行わない（空文字列も推論サーバーへそのまま渡す）。
func (r *ChatRelay) Send(ctx context.Context, userText string) string {
	r.sendMu.Lock()
	defer r.sendMu.Unlock()

	// リクエストに今回の発話が含まれるよう、履歴構築の前に追加する
	r.store.Append(models.RoleUser, userText)
	history := r.store.All()

	reply, err := r.llm.Complete(ctx, history, r.Temperature())
	if err != nil {
		reply = DiagnosticMessage(err)
	}

	r.store.Append(models.RoleAssistant, reply)
	return reply
}

// SendStream はストリーミングモード。応答の断片を到着順に流すチャネルを返す。
// チャネルは1回だけ消費でき、クローズ時点でアシスタントメッセージ
// （全断片の連結）がストアへ追加済みであることを保証する。
// 途中で失敗した場合は診断メッセージを最後の断片として流し、
// それまでの断片との連結を履歴に残す。
func (r *ChatRelay) SendStream(ctx context.Context, userText string) <-chan string {
	out := make(chan string)

	go func() {
		r.sendMu.Lock()
		defer r.sendMu.Unlock()
		defer close(out)

		r.store.Append(models.RoleUser, userText)
		history := r.store.All()

		fragments := make(chan string)
		errCh := make(chan error, 1)
		go func() {
			errCh <- r.llm.Stream(ctx, history, r.Temperature(), fragments)
		}()

		// 転送と蓄積を同時に行う。受信側が切断しても蓄積は最後まで続け、
		// 履歴には必ず全文を残す
		var full strings.Builder
		receiverGone := false
		forward := func(fragment string) {
			if receiverGone {
				return
			}
			select {
			case out <- fragment:
			case <-ctx.Done():
				receiverGone = true
			}
		}

		for fragment := range fragments {
			full.WriteString(fragment)
			forward(fragment)
		}

		if err := <-errCh; err != nil {
			diagnostic := DiagnosticMessage(err)
			full.WriteString(diagnostic)
			forward(diagnostic)
		}

		r.store.Append(models.RoleAssistant, full.String())
	}()

	return out
}

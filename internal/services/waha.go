package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"agentcrm_site/internal/config"
	"agentcrm_site/internal/leadform"
)

type WahaService struct {
	baseURL string
	apiKey  string
	client  *http.Client
	pause   func(time.Duration)
}

func NewWahaService(cfg config.WahaConfig) *WahaService {
	url := cfg.BaseURL
	if url == "" {
		url = "http://waha:3000"
	}
	return &WahaService{
		baseURL: strings.TrimRight(url, "/"),
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: 10 * time.Second},
		pause:   time.Sleep,
	}
}

func (s *WahaService) makeRequest(ctx context.Context, method, endpoint string, payload interface{}) error {
	var bodyReader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal payload: %w", err)
		}
		bodyReader = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+endpoint, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}

func (s *WahaService) chatAction(ctx context.Context, endpoint, chatId string) error {
	return s.makeRequest(ctx, http.MethodPost, endpoint, map[string]string{
		"chatId":  chatId,
		"session": "default",
	})
}

func (s *WahaService) sendText(ctx context.Context, chatId, text string) error {
	return s.makeRequest(ctx, http.MethodPost, "/api/sendText", map[string]string{
		"chatId":  chatId,
		"text":    text,
		"session": "default",
	})
}

// NormalizeChatID adds the WhatsApp suffix and rewrites local Indian numbers
// (leading 0 or bare 10 digits) to the 91 country code.
func NormalizeChatID(chatId string) string {
	chatId = strings.TrimSpace(chatId)

	if strings.HasSuffix(chatId, "@g.us") {
		return chatId
	}

	chatId = strings.TrimSuffix(chatId, "@c.us")
	chatId = strings.TrimPrefix(chatId, "+")
	chatId = strings.NewReplacer(" ", "", "-", "").Replace(chatId)

	switch {
	case strings.HasPrefix(chatId, "0"):
		chatId = "91" + strings.TrimPrefix(chatId, "0")
	case len(chatId) == 10:
		chatId = "91" + chatId
	}

	return chatId + "@c.us"
}

// SendMessage marks the chat seen, shows typing briefly, then sends the text
func (s *WahaService) SendMessage(ctx context.Context, chatId, text string) error {
	chatId = NormalizeChatID(chatId)

	if err := s.chatAction(ctx, "/api/sendSeen", chatId); err != nil {
		return fmt.Errorf("failed to send seen: %w", err)
	}
	s.pause(100 * time.Millisecond)

	if err := s.chatAction(ctx, "/api/startTyping", chatId); err != nil {
		return fmt.Errorf("failed to start typing: %w", err)
	}
	s.pause(150 * time.Millisecond)

	if err := s.chatAction(ctx, "/api/stopTyping", chatId); err != nil {
		return fmt.Errorf("failed to stop typing: %w", err)
	}
	s.pause(50 * time.Millisecond)

	if err := s.sendText(ctx, chatId, text); err != nil {
		return fmt.Errorf("failed to send text: %w", err)
	}

	return nil
}

// WhatsAppDeliverer posts each inquiry to the sales team chat
type WhatsAppDeliverer struct {
	Waha   *WahaService
	ChatID string
}

func (d *WhatsAppDeliverer) Deliver(ctx context.Context, inquiry leadform.Inquiry) error {
	if d.ChatID == "" {
		return fmt.Errorf("WAHA_NOTIFY_CHAT is not set")
	}
	text := fmt.Sprintf("*%s*\nRef: %s\n\n%s", inquiry.Subject, inquiry.Reference, inquiry.Body)
	return d.Waha.SendMessage(ctx, d.ChatID, text)
}

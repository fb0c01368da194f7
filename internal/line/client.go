package line

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var (
	ErrConfigInvalid   = errors.New("line config invalid")
	ErrRequestFailed   = errors.New("line request failed")
	ErrResponseInvalid = errors.New("line response invalid")
)

// WebhookBody LINE Webhook 请求体
type WebhookBody struct {
	Destination string  `json:"destination"`
	Events      []Event `json:"events"`
}

// Event Webhook 事件
type Event struct {
	Type       string  `json:"type"`
	ReplyToken string  `json:"replyToken"`
	Source     Source  `json:"source"`
	Message    Message `json:"message"`
	Timestamp  int64   `json:"timestamp"`
}

// Source 事件来源
type Source struct {
	Type    string `json:"type"`
	UserID  string `json:"userId"`
	GroupID string `json:"groupId"`
}

// Message 消息体
type Message struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Text string `json:"text"`
}

// TextMessage 出站文本消息
type TextMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Profile LINE 用户资料
type Profile struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	PictureURL  string `json:"pictureUrl"`
}

// Client LINE Messaging API 客户端
type Client struct {
	endpoint     string
	channelToken string
	httpClient   *http.Client
}

// NewClient 创建 LINE 客户端
func NewClient(endpoint, channelToken string, timeout time.Duration) *Client {
	endpoint = strings.TrimRight(strings.TrimSpace(endpoint), "/")
	if endpoint == "" {
		endpoint = "https://api.line.me"
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		endpoint:     endpoint,
		channelToken: strings.TrimSpace(channelToken),
		httpClient:   &http.Client{Timeout: timeout},
	}
}

// Reply 使用 replyToken 回复文本消息
func (c *Client) Reply(ctx context.Context, replyToken string, texts ...string) error {
	if replyToken == "" || len(texts) == 0 {
		return ErrConfigInvalid
	}
	messages := make([]TextMessage, 0, len(texts))
	for _, text := range texts {
		messages = append(messages, TextMessage{Type: "text", Text: text})
	}
	_, err := c.postJSON(ctx, "/v2/bot/message/reply", map[string]interface{}{
		"replyToken": replyToken,
		"messages":   messages,
	})
	return err
}

// Push 主动推送文本消息
func (c *Client) Push(ctx context.Context, to string, texts ...string) error {
	if to == "" || len(texts) == 0 {
		return ErrConfigInvalid
	}
	messages := make([]TextMessage, 0, len(texts))
	for _, text := range texts {
		messages = append(messages, TextMessage{Type: "text", Text: text})
	}
	_, err := c.postJSON(ctx, "/v2/bot/message/push", map[string]interface{}{
		"to":       to,
		"messages": messages,
	})
	return err
}

// GetProfile 获取用户资料
func (c *Client) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	if userID == "" {
		return nil, ErrConfigInvalid
	}
	body, err := c.getJSON(ctx, "/v2/bot/profile/"+userID)
	if err != nil {
		return nil, err
	}
	var profile Profile
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	return &profile, nil
}

func (c *Client) postJSON(ctx context.Context, path string, params map[string]interface{}) ([]byte, error) {
	if c.channelToken == "" {
		return nil, ErrConfigInvalid
	}
	body, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, strings.NewReader(string(body)))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.channelToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: http status %d", ErrRequestFailed, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func (c *Client) getJSON(ctx context.Context, path string) ([]byte, error) {
	if c.channelToken == "" {
		return nil, ErrConfigInvalid
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.channelToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: http status %d", ErrRequestFailed, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

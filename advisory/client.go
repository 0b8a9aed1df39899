package advisory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"go-soiladvisor/config"
	"go-soiladvisor/models"
)

// maxErrorBody 错误响应体最多保留的字节数
const maxErrorBody = 4 << 10

// Client 通过 REST 接口调用生成服务
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiVersion string
	apiKey     string
	models     []string
	logger     *zap.Logger
}

// NewClient 创建 REST 客户端，未配置超时则沿用 http.Client 默认行为
func NewClient(c config.GeminiConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	version := c.APIVersion
	if version == "" {
		version = "v1"
	}
	return &Client{
		httpClient: &http.Client{Timeout: c.Timeout},
		baseURL:    strings.TrimRight(c.BaseURL, "/"),
		apiVersion: version,
		apiKey:     c.APIKey,
		models:     c.Models,
		logger:     logger.Named("gemini"),
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// Generate 实现 Generator
func (c *Client) Generate(ctx context.Context, req models.AdvisoryRequest) (string, error) {
	return c.Complete(ctx, BuildPrompt(req))
}

// Complete 依次尝试配置的模型，返回第一个 2xx 响应中的文本
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{Contents: []content{{Parts: []part{{Text: prompt}}}}})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	var payload []byte
	_, err = firstSuccess(ctx, c.logger, c.models, func(ctx context.Context, model string) (string, error) {
		data, err := c.post(ctx, model, body)
		if err != nil {
			return "", err
		}
		payload = data
		return "", nil
	})
	if err != nil {
		return "", err
	}
	return parseGenerateResponse(payload)
}

func (c *Client) endpoint(path string) string {
	return fmt.Sprintf("%s/%s/%s?key=%s", c.baseURL, c.apiVersion, path, url.QueryEscape(c.apiKey))
}

func (c *Client) post(ctx context.Context, model string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("models/"+model+":generateContent"), bytes.NewReader(body))
	if err != nil {
		return nil, &AttemptError{Model: model, Err: c.redact(err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &AttemptError{Model: model, Err: c.redact(err)}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &AttemptError{Model: model, Err: fmt.Errorf("read response: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Model: model, StatusCode: resp.StatusCode, Body: truncate(string(data), maxErrorBody)}
	}
	return data, nil
}

// parseGenerateResponse 解析成功响应：错误载荷、文本或无法识别的结构
func parseGenerateResponse(data []byte) (string, error) {
	if !gjson.ValidBytes(data) {
		return "", fmt.Errorf("decode response: %w", ErrUnexpectedResponse)
	}
	if e := gjson.GetBytes(data, "error"); e.Exists() {
		msg := e.Get("message").String()
		if msg == "" {
			msg = e.Raw
		}
		return "", &ServiceError{Message: msg}
	}
	text := gjson.GetBytes(data, "candidates.0.content.parts.0.text").String()
	if text == "" {
		return NoOverviewText, nil
	}
	return text, nil
}

// CheckKey 通过列出模型验证 API key
func (c *Client) CheckKey(ctx context.Context) (string, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("models"), nil)
	if err != nil {
		return "Network Error: " + c.redact(err).Error(), false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "Network Error: " + c.redact(err).Error(), false
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return fmt.Sprintf("Network Error: reading response (status %d): %v", resp.StatusCode, c.redact(err)), false
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "API Key Error: " + string(data), false
	}
	return "API Key is working!", true
}

// redact 去掉错误信息中 URL 里的 API key
func (c *Client) redact(err error) error {
	var ue *url.Error
	if c.apiKey == "" || !errors.As(err, &ue) {
		return err
	}
	ue.URL = strings.ReplaceAll(ue.URL, url.QueryEscape(c.apiKey), "REDACTED")
	return err
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

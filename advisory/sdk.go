package advisory

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"go-soiladvisor/config"
	"go-soiladvisor/models"
)

// SDKGenerator 通过官方 genai SDK 调用生成服务
type SDKGenerator struct {
	client *genai.Client
	models []string
	logger *zap.Logger
}

// NewSDKGenerator 创建 SDK 后端
func NewSDKGenerator(ctx context.Context, c config.GeminiConfig, logger *zap.Logger) (*SDKGenerator, error) {
	if c.APIKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	cc := &genai.ClientConfig{
		APIKey:  c.APIKey,
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			APIVersion: c.APIVersion,
		},
	}
	if c.BaseURL != "" {
		cc.HTTPOptions.BaseURL = strings.TrimRight(c.BaseURL, "/") + "/"
	}
	if c.Timeout > 0 {
		cc.HTTPClient = &http.Client{Timeout: c.Timeout}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &SDKGenerator{
		client: client,
		models: c.Models,
		logger: logger.Named("gemini-sdk"),
	}, nil
}

// Generate 实现 Generator，服务端状态错误和请求失败都会换下一个模型
func (g *SDKGenerator) Generate(ctx context.Context, req models.AdvisoryRequest) (string, error) {
	prompt := BuildPrompt(req)
	return firstSuccess(ctx, g.logger, g.models, func(ctx context.Context, model string) (string, error) {
		resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
		if err != nil {
			return "", sdkError(model, err)
		}
		return sdkText(resp), nil
	})
}

// sdkError 把 SDK 的服务端错误转为 StatusError，其余按请求失败处理
func sdkError(model string, err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code > 0 {
		body := apiErr.Message
		if body == "" {
			body = apiErr.Status
		}
		return &StatusError{Model: model, StatusCode: apiErr.Code, Body: truncate(body, maxErrorBody)}
	}
	return &AttemptError{Model: model, Err: err}
}

func sdkText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return NoOverviewText
	}
	c := resp.Candidates[0].Content
	if c == nil || len(c.Parts) == 0 || c.Parts[0] == nil || c.Parts[0].Text == "" {
		return NoOverviewText
	}
	return c.Parts[0].Text
}

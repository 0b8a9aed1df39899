package advisory

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"go-soiladvisor/config"
	"go-soiladvisor/models"
)

// Generator 根据一次请求生成建议文本
type Generator interface {
	Generate(ctx context.Context, req models.AdvisoryRequest) (string, error)
}

// attemptFunc 用指定模型请求一次
type attemptFunc func(ctx context.Context, model string) (string, error)

// firstSuccess 按顺序尝试模型，返回第一个成功的结果
// 只有状态码失败和请求失败会换下一个模型，其余错误直接返回
func firstSuccess(ctx context.Context, logger *zap.Logger, modelIDs []string, attempt attemptFunc) (string, error) {
	if len(modelIDs) == 0 {
		return "", errors.New("no models configured")
	}

	var lastErr error
	for i, model := range modelIDs {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		logger.Debug("requesting advisory", zap.String("model", model), zap.Int("attempt", i+1))

		text, err := attempt(ctx, model)
		if err == nil {
			return text, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		if !fallbackable(err) {
			return "", err
		}
		lastErr = err
		if i < len(modelIDs)-1 {
			logger.Warn("model failed, trying next", zap.String("model", model), zap.String("next", modelIDs[i+1]), zap.Error(err))
		}
	}
	logger.Error("all models failed", zap.Strings("models", modelIDs), zap.Error(lastErr))
	return "", lastErr
}

// NewGenerator 按配置的后端创建 Generator
func NewGenerator(ctx context.Context, c config.GeminiConfig, logger *zap.Logger) (Generator, error) {
	switch c.Backend {
	case config.BackendREST, "":
		return NewClient(c, logger), nil
	case config.BackendSDK:
		return NewSDKGenerator(ctx, c, logger)
	case config.BackendMock:
		return MockGenerator{}, nil
	default:
		return nil, fmt.Errorf("unknown backend %q", c.Backend)
	}
}

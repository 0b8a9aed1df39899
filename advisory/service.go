package advisory

import (
	"context"
	"time"

	"go.uber.org/zap"

	"go-soiladvisor/models"
)

// Service 生成建议并提取建议值，错误转为可展示文本，不向调用方返回 error
type Service struct {
	gen    Generator
	logger *zap.Logger
	now    func() time.Time
}

// NewService 创建 Service
func NewService(gen Generator, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{gen: gen, logger: logger, now: time.Now}
}

// Advise 执行一次建议请求，prior 为提取失败时沿用的建议值，为空时使用默认建议
func (s *Service) Advise(ctx context.Context, req models.AdvisoryRequest, prior models.SuggestedLevels) models.AdvisoryResult {
	if prior.IsZero() {
		prior = models.DefaultSuggested
	}
	req = req.WithDefaultDate(s.now())

	result := models.AdvisoryResult{
		Current:   req.Reading.Current(),
		Suggested: prior,
	}

	start := time.Now()
	text, err := s.gen.Generate(ctx, req)
	if err != nil {
		s.logger.Warn("advisory failed",
			zap.String("crop", req.Crop),
			zap.String("state", req.State),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		result.Overview = Describe(err)
		result.Failed = true
		return result
	}

	result.Overview = text
	result.Suggested, result.Extracted = ExtractOr(text, prior)
	s.logger.Info("advisory generated",
		zap.String("crop", req.Crop),
		zap.String("state", req.State),
		zap.Bool("extracted", result.Extracted),
		zap.Duration("elapsed", time.Since(start)),
	)
	return result
}

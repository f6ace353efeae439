package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"flexgen/internal/ai"
	"flexgen/internal/model/generation"
	"flexgen/internal/pkg/cache"
	"flexgen/internal/pkg/ctxutil"
	"flexgen/internal/pkg/flextools"
	"flexgen/internal/pkg/id"
	"flexgen/internal/pkg/logger"
	"flexgen/internal/pkg/metrics"
	genRepo "flexgen/internal/repository/generation"
)

// ErrStatsUnavailable 未配置 Redis
var ErrStatsUnavailable = errors.New("generation stats are not available")

// ErrAuditUnavailable 未配置 MongoDB
var ErrAuditUnavailable = errors.New("generation audit log is not available")

// auditWriteTimeout 审计和计数的写入上限，与请求的 deadline 无关
const auditWriteTimeout = 3 * time.Second

// StatsStore 生成计数存储
type StatsStore interface {
	IncrGeneration(ctx context.Context, platform, outcome string) error
	GetGenerationStats(ctx context.Context) (*cache.GenerationStats, error)
}

// EventPublisher 生成事件发布
type EventPublisher interface {
	PublishGeneration(ctx context.Context, g *generation.Generation) error
}

// FlexService 帖子生成服务
// 流水线: 校验 -> 编译提示词 -> 调用模型 -> 提取文本 -> 收尾
// 无共享可变状态，可并发使用
type FlexService struct {
	completer ai.Completer
	configErr error
	validator *flextools.Validator

	audit   genRepo.GenerationRepository
	stats   StatsStore
	events  EventPublisher
	metrics *metrics.Recorder
	tracer  trace.Tracer
}

// Option FlexService 可选依赖
type Option func(*FlexService)

// WithAudit 记录生成审计（不含生成文本）
func WithAudit(repo genRepo.GenerationRepository) Option {
	return func(s *FlexService) { s.audit = repo }
}

// WithStats 累加生成计数
func WithStats(stats StatsStore) Option {
	return func(s *FlexService) { s.stats = stats }
}

// WithEvents 发布生成事件（不含生成文本）
func WithEvents(events EventPublisher) Option {
	return func(s *FlexService) { s.events = events }
}

// WithTracer 指定 tracer，默认使用全局 TracerProvider
func WithTracer(tracer trace.Tracer) Option {
	return func(s *FlexService) { s.tracer = tracer }
}

// WithMetrics 上报 Prometheus 指标
func WithMetrics(m *metrics.Recorder) Option {
	return func(s *FlexService) { s.metrics = m }
}

// NewFlexService 创建生成服务
// configErr 非空时（通常是凭证缺失）每个请求都在做任何其他工作之前返回它
func NewFlexService(completer ai.Completer, configErr error, validator *flextools.Validator, opts ...Option) *FlexService {
	if completer == nil && configErr == nil {
		configErr = &flextools.ConfigurationError{Setting: "ai", Msg: "no completion provider configured"}
	}
	if validator == nil {
		validator = flextools.NewValidator(flextools.DefaultSliderMax)
	}

	s := &FlexService{
		completer: completer,
		configErr: configErr,
		validator: validator,
		tracer:    otel.Tracer("flexgen/internal/service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ConfigError 返回启动时发现的配置错误
func (s *FlexService) ConfigError() error {
	return s.configErr
}

// Generate 标准模式：loose payload -> GeneratedPost
func (s *FlexService) Generate(ctx context.Context, payload map[string]any) (flextools.GeneratedPost, error) {
	ctx, span := s.tracer.Start(ctx, "FlexService.Generate")
	defer span.End()

	rec := &generation.Generation{Mode: generation.ModeStandard}
	start := time.Now()
	post, err := s.generate(ctx, payload, rec)
	s.finish(ctx, rec, post, err, time.Since(start))
	return post, err
}

// Freeform 自由模式：复用同一套 Invoker/Extractor/Finalizer
func (s *FlexService) Freeform(ctx context.Context, payload map[string]any) (flextools.GeneratedPost, error) {
	ctx, span := s.tracer.Start(ctx, "FlexService.Freeform")
	defer span.End()

	rec := &generation.Generation{Mode: generation.ModeFreeform}
	start := time.Now()
	post, err := s.freeform(ctx, payload, rec)
	s.finish(ctx, rec, post, err, time.Since(start))
	return post, err
}

func (s *FlexService) generate(ctx context.Context, payload map[string]any, rec *generation.Generation) (flextools.GeneratedPost, error) {
	if s.configErr != nil {
		return flextools.GeneratedPost{}, s.configErr
	}

	req, err := s.validator.Validate(flextools.Normalize(payload))
	if err != nil {
		return flextools.GeneratedPost{}, err
	}

	rec.Platform = req.Platform.String()
	rec.Tone = req.Tone.String()
	rec.Arrogance = req.Arrogance
	rec.Buzzwords = req.Buzzwords
	rec.FakeMetrics = req.FakeMetrics
	rec.SpiceLevel = req.SpiceLevel
	rec.HasNiche = req.Niche != ""
	rec.HasTools = req.Tools != ""
	rec.HasVanity = req.MRR != "" || req.Followers != ""

	return s.complete(ctx, flextools.Compile(req), req.Platform)
}

func (s *FlexService) freeform(ctx context.Context, payload map[string]any, rec *generation.Generation) (flextools.GeneratedPost, error) {
	if s.configErr != nil {
		return flextools.GeneratedPost{}, s.configErr
	}

	req, err := s.validator.ValidateFreeform(flextools.NormalizeFreeform(payload))
	if err != nil {
		return flextools.GeneratedPost{}, err
	}

	rec.Platform = req.Platform.String()
	rec.Tone = req.Tone.String()

	prompt := flextools.CompileFreeform(req)
	return s.complete(ctx, prompt, req.Platform)
}

// complete 调用模型并收尾，两种模式共用
func (s *FlexService) complete(ctx context.Context, prompt flextools.CompiledPrompt, platform flextools.Platform) (flextools.GeneratedPost, error) {
	ctx, span := s.tracer.Start(ctx, "Completer.Complete",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("flex.platform", platform.String())))
	resp, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, flextools.ReasonOf(err).String())
	}
	span.End()
	if err != nil {
		return flextools.GeneratedPost{}, fmt.Errorf("complete %s post: %w", platform, err)
	}
	return flextools.Finalize(flextools.ExtractText(resp), platform)
}

// finish 记录日志、指标、计数与审计，任何一步失败都不影响返回结果
func (s *FlexService) finish(ctx context.Context, rec *generation.Generation, post flextools.GeneratedPost, err error, elapsed time.Duration) {
	rec.Outcome = generation.OutcomeSuccess
	if err != nil {
		rec.Outcome = flextools.ReasonOf(err).String()
		var upstreamErr *flextools.UpstreamError
		if errors.As(err, &upstreamErr) {
			rec.UpstreamStatus = upstreamErr.StatusCode
		}
	}
	rec.OutputChars = len([]rune(post.Text))
	rec.LatencyMs = elapsed.Milliseconds()
	rec.ID = id.New()
	rec.CreatedAt = time.Now()
	if requestID, ok := ctxutil.GetRequestID(ctx); ok {
		rec.RequestID = requestID
	}

	span := trace.SpanFromContext(ctx)
	span.SetAttributes(
		attribute.String("flex.mode", rec.Mode.String()),
		attribute.String("flex.platform", rec.Platform),
		attribute.String("flex.outcome", rec.Outcome),
		attribute.Int("flex.output_chars", rec.OutputChars),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, rec.Outcome)
	}

	l := logger.Ctx(ctx)
	event := l.Info()
	if err != nil {
		switch flextools.ReasonOf(err) {
		case flextools.ReasonInvalidRequest, flextools.ReasonEmptyOutput:
			event = l.Warn().Err(err)
		default:
			event = l.Error().Err(err)
		}
	}
	event.
		Str("mode", rec.Mode.String()).
		Str("platform", rec.Platform).
		Str("tone", rec.Tone).
		Str("outcome", rec.Outcome).
		Int("output_chars", rec.OutputChars).
		Dur("latency", elapsed).
		Msg("generation finished")

	if s.metrics != nil {
		s.metrics.ObserveGeneration(rec.Mode.String(), rec.Platform, rec.Outcome, elapsed)
	}

	if s.stats == nil && s.audit == nil && s.events == nil {
		return
	}
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), auditWriteTimeout)
	defer cancel()

	if s.stats != nil {
		if err := s.stats.IncrGeneration(writeCtx, rec.Platform, rec.Outcome); err != nil {
			l.Warn().Err(err).Msg("failed to increment generation stats")
		}
	}
	if s.audit != nil {
		if err := s.audit.Create(writeCtx, rec); err != nil {
			l.Warn().Err(err).Str("generation_id", rec.ID).Msg("failed to write generation audit")
		}
	}
	if s.events != nil {
		if err := s.events.PublishGeneration(writeCtx, rec); err != nil {
			l.Warn().Err(err).Str("generation_id", rec.ID).Msg("failed to publish generation event")
		}
	}
}

// Stats 读取生成计数
func (s *FlexService) Stats(ctx context.Context) (*cache.GenerationStats, error) {
	if s.stats == nil {
		return nil, ErrStatsUnavailable
	}
	return s.stats.GetGenerationStats(ctx)
}

// RecentGenerations 查询最近的审计记录
func (s *FlexService) RecentGenerations(ctx context.Context, limit int64, outcome string) ([]*generation.Generation, error) {
	if s.audit == nil {
		return nil, ErrAuditUnavailable
	}
	return s.audit.ListRecent(ctx, limit, outcome)
}

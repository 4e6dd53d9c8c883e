// Package sequencer 按 order_index 顺序为项目各小节生成内容，并把已落库的内容滚动传递给下一节。
package sequencer

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/singleflight"

	"z-doc-ai-api/internal/application/docgen"
	"z-doc-ai-api/internal/application/ledger"
	"z-doc-ai-api/internal/config"
	"z-doc-ai-api/internal/domain/entity"
	"z-doc-ai-api/internal/domain/repository"
	"z-doc-ai-api/internal/infrastructure/persistence/redis"
	apperrors "z-doc-ai-api/pkg/errors"
	"z-doc-ai-api/pkg/logger"
	"z-doc-ai-api/pkg/metrics"
)

var tracer = otel.Tracer("sequencer")

const defaultLockTTL = 10 * time.Minute

// Locker 跨进程的项目级互斥
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, error)
}

// SectionResult 单节生成结果
type SectionResult struct {
	SectionID string                `json:"section_id"`
	Title     string                `json:"title"`
	Content   string                `json:"content"`
	Fallback  bool                  `json:"fallback"`
	Reason    docgen.FallbackReason `json:"fallback_reason,omitempty"`
}

// Sequencer 小节顺序生成器，不持有跨项目状态
type Sequencer struct {
	projects  repository.ProjectRepository
	sections  repository.SectionRepository
	generator *docgen.Generator
	ledger    *ledger.Ledger
	locker    Locker

	group        singleflight.Group
	contextRunes int
	previewRunes int
	lockTTL      time.Duration
}

// NewSequencer 创建顺序生成器，locker 可以为 nil
func NewSequencer(
	projects repository.ProjectRepository,
	sections repository.SectionRepository,
	generator *docgen.Generator,
	ledger *ledger.Ledger,
	locker Locker,
	cfg *config.Config,
) *Sequencer {
	s := &Sequencer{
		projects:     projects,
		sections:     sections,
		generator:    generator,
		ledger:       ledger,
		locker:       locker,
		contextRunes: cfg.Generation.ContextMaxRunes,
		previewRunes: cfg.Generation.PreviewRunes,
		lockTTL:      cfg.Generation.LockTTL,
	}
	if s.contextRunes <= 0 {
		s.contextRunes = 500
	}
	if s.previewRunes <= 0 {
		s.previewRunes = 200
	}
	if s.lockTTL <= 0 {
		s.lockTTL = defaultLockTTL
	}
	return s
}

// Run 为项目全部小节生成内容。
// 同一项目的并发调用在进程内合并为一次执行，跨进程时后来者得到 Conflict。
func (s *Sequencer) Run(ctx context.Context, ownerID, projectID string) ([]SectionResult, error) {
	project, err := s.projects.GetByOwner(ctx, ownerID, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apperrors.ErrProjectNotFound
	}

	v, err, shared := s.group.Do(project.ID, func() (any, error) {
		return s.runLocked(ctx, project)
	})
	if shared {
		logger.Debug(ctx, "sequencer run shared with in-flight caller", "project_id", project.ID)
	}
	results, _ := v.([]SectionResult)
	return results, err
}

func (s *Sequencer) runLocked(ctx context.Context, project *entity.Project) ([]SectionResult, error) {
	if s.locker != nil {
		release, err := s.locker.Acquire(ctx, redis.BuildSequencerLockKey(project.ID), s.lockTTL)
		if err != nil {
			if errors.Is(err, redis.ErrLockHeld) {
				return nil, apperrors.ErrGenerationBusy
			}
			// 锁服务不可用时退化为仅进程内互斥
			logger.Warn(ctx, "sequencer lock unavailable, continuing without it", "error", err.Error())
		} else {
			defer func() {
				if err := release(context.WithoutCancel(ctx)); err != nil {
					logger.Warn(ctx, "failed to release sequencer lock", "error", err.Error())
				}
			}()
		}
	}
	return s.run(ctx, project)
}

func (s *Sequencer) run(ctx context.Context, project *entity.Project) (results []SectionResult, err error) {
	ctx, span := tracer.Start(ctx, "sequencer.Run")
	defer span.End()
	ctx = logger.WithContext(ctx, logger.ProjectIDKey, project.ID)

	container := project.ContainerType.String()
	defer func() {
		status := "ok"
		if err != nil {
			status = "error"
			span.RecordError(err)
		}
		metrics.SequencerRunsTotal.WithLabelValues(container, status).Inc()
	}()

	sections, err := s.sections.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("sequencer.sections", len(sections)))

	topic := project.EffectiveTopic()
	rolling := newRollingContext(s.contextRunes, s.previewRunes)
	results = make([]SectionResult, 0, len(sections))

	for _, section := range sections {
		if err := ctx.Err(); err != nil {
			logger.Warn(ctx, "sequencer cancelled", "completed", len(results), "total", len(sections))
			return results, err
		}

		res := s.generator.GenerateSection(ctx, docgen.SectionRequest{
			Topic:         topic,
			SectionTitle:  section.Title,
			ContainerType: project.ContainerType,
			PriorContext:  rolling.Snapshot(),
		})

		// 已生成的内容即使请求被取消也要落库，落库完成后才继续下一节
		mutation := ledger.Mutation{
			Kind:   entity.EventKindGeneration,
			Prompt: entity.GenerationPromptPrefix + " " + section.Title,
			Next:   res.Value,
		}
		if _, err := s.ledger.ApplyMutation(context.WithoutCancel(ctx), section, mutation); err != nil {
			return results, fmt.Errorf("persist section %s: %w", section.ID, err)
		}
		metrics.SequencerSectionsGenerated.WithLabelValues(container, strconv.FormatBool(res.Fallback)).Inc()

		results = append(results, SectionResult{
			SectionID: section.ID,
			Title:     section.Title,
			Content:   section.Content,
			Fallback:  res.Fallback,
			Reason:    res.Reason,
		})
		rolling.Append(section.Title, section.Content)
	}

	logger.Info(ctx, "sequencer finished", "sections", len(results))
	return results, nil
}

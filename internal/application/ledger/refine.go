package ledger

import (
	"context"
	"errors"
	"strings"

	"z-doc-ai-api/internal/application/docgen"
	"z-doc-ai-api/internal/domain/entity"
	"z-doc-ai-api/internal/domain/repository"
	apperrors "z-doc-ai-api/pkg/errors"
	"z-doc-ai-api/pkg/logger"
)

// RefineOutcome 精修结果
type RefineOutcome struct {
	Section  *entity.Section
	Event    *entity.RefinementEvent
	Fallback bool
	Reason   docgen.FallbackReason
}

// Service 精修、反馈与手动编辑入口（均按所有者校验）
type Service struct {
	ledger    *Ledger
	generator *docgen.Generator
	projects  repository.ProjectRepository
	sections  repository.SectionRepository
}

// NewService 创建精修服务
func NewService(ledger *Ledger, generator *docgen.Generator, projects repository.ProjectRepository, sections repository.SectionRepository) *Service {
	return &Service{ledger: ledger, generator: generator, projects: projects, sections: sections}
}

// Refine 按指令改写小节。模型失败时内容不变且不写事件。
func (s *Service) Refine(ctx context.Context, ownerID, sectionID, instruction string) (*RefineOutcome, error) {
	ctx, span := tracer.Start(ctx, "ledger.Service.Refine")
	defer span.End()

	instruction = strings.TrimSpace(instruction)
	if instruction == "" {
		return nil, apperrors.Validation("prompt is required")
	}

	section, project, err := s.loadOwned(ctx, ownerID, sectionID)
	if err != nil {
		return nil, err
	}
	ctx = logger.WithContext(ctx, logger.SectionIDKey, section.ID)

	res := s.generator.RefineSection(ctx, docgen.RefineRequest{
		CurrentContent: section.Content,
		Instruction:    instruction,
		SectionTitle:   section.Title,
		ContainerType:  project.ContainerType,
	})
	if res.Fallback || res.Value == section.Content {
		return &RefineOutcome{Section: section, Fallback: res.Fallback, Reason: res.Reason}, nil
	}

	event, err := s.ledger.ApplyMutation(ctx, section, Mutation{
		Kind:   entity.EventKindRefinement,
		Prompt: instruction,
		Next:   res.Value,
	})
	if err != nil {
		if errors.Is(err, ErrContentChanged) {
			logger.Warn(ctx, "section changed while refining, result discarded")
			return nil, err
		}
		logger.Error(ctx, "failed to persist refinement", err)
		return nil, err
	}
	return &RefineOutcome{Section: section, Event: event}, nil
}

// Feedback 记录反馈
func (s *Service) Feedback(ctx context.Context, ownerID, sectionID string, feedback entity.Feedback, comment string) (*entity.RefinementEvent, error) {
	section, _, err := s.loadOwned(ctx, ownerID, sectionID)
	if err != nil {
		return nil, err
	}
	return s.ledger.RecordFeedback(ctx, section, feedback, strings.TrimSpace(comment))
}

// Edit 手动覆盖内容；内容未变化时不产生事件
func (s *Service) Edit(ctx context.Context, ownerID, sectionID, content string) (*entity.Section, error) {
	section, _, err := s.loadOwned(ctx, ownerID, sectionID)
	if err != nil {
		return nil, err
	}
	if section.Content == content {
		return section, nil
	}
	if _, err := s.ledger.ApplyMutation(ctx, section, Mutation{Kind: entity.EventKindEdit, Next: content}); err != nil {
		return nil, err
	}
	return section, nil
}

// History 返回小节台账
func (s *Service) History(ctx context.Context, ownerID, sectionID string) ([]*entity.RefinementEvent, error) {
	section, _, err := s.loadOwned(ctx, ownerID, sectionID)
	if err != nil {
		return nil, err
	}
	return s.ledger.History(ctx, section.ID)
}

func (s *Service) loadOwned(ctx context.Context, ownerID, sectionID string) (*entity.Section, *entity.Project, error) {
	section, err := s.sections.GetByOwner(ctx, ownerID, sectionID)
	if err != nil {
		return nil, nil, err
	}
	if section == nil {
		return nil, nil, apperrors.ErrSectionNotFound
	}
	project, err := s.projects.GetByID(ctx, section.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	if project == nil {
		return nil, nil, apperrors.ErrProjectNotFound
	}
	return section, project, nil
}

// Package workspace 项目与小节的增删改查。项目创建时可以让生成器建议大纲。
package workspace

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"

	"z-doc-ai-api/internal/application/docgen"
	"z-doc-ai-api/internal/application/ledger"
	"z-doc-ai-api/internal/domain/entity"
	"z-doc-ai-api/internal/domain/repository"
	apperrors "z-doc-ai-api/pkg/errors"
	"z-doc-ai-api/pkg/logger"
)

var tracer = otel.Tracer("workspace")

const maxTitleRunes = 255

// SectionInput 新建小节参数，OrderIndex 为空时追加到末尾
type SectionInput struct {
	Title      string
	OrderIndex *int
}

// CreateProjectInput 新建项目参数
type CreateProjectInput struct {
	Title         string
	Topic         string
	ContainerType string
	Sections      []SectionInput
	// OutlineCount 未提供小节且大于 0 时由生成器建议大纲
	OutlineCount int
}

// UpdateProjectInput 项目可改字段，容器类型不可改
type UpdateProjectInput struct {
	Title *string
	Topic *string
}

// UpdateSectionInput 小节可改字段
type UpdateSectionInput struct {
	Title      *string
	OrderIndex *int
	Content    *string
}

// ProjectDetail 项目及其有序小节
type ProjectDetail struct {
	Project  *entity.Project
	Sections []*entity.Section
	// OutlineFallback 大纲为占位标题
	OutlineFallback bool
}

// Service 项目与小节服务
type Service struct {
	tx        repository.Transactor
	projects  repository.ProjectRepository
	sections  repository.SectionRepository
	generator *docgen.Generator
	refine    *ledger.Service
}

// NewService 创建服务
func NewService(
	tx repository.Transactor,
	projects repository.ProjectRepository,
	sections repository.SectionRepository,
	generator *docgen.Generator,
	refine *ledger.Service,
) *Service {
	return &Service{tx: tx, projects: projects, sections: sections, generator: generator, refine: refine}
}

// CreateProject 创建项目及初始小节
func (s *Service) CreateProject(ctx context.Context, ownerID string, in CreateProjectInput) (*ProjectDetail, error) {
	ctx, span := tracer.Start(ctx, "workspace.Service.CreateProject")
	defer span.End()

	title := strings.TrimSpace(in.Title)
	if err := validateTitle("title", title); err != nil {
		return nil, err
	}
	ct, err := entity.ParseContainerType(in.ContainerType)
	if err != nil {
		return nil, apperrors.Validation("container_type must be word or slide")
	}
	for i, sec := range in.Sections {
		if err := validateTitle("sections.title", strings.TrimSpace(sec.Title)); err != nil {
			return nil, err
		}
		if sec.OrderIndex != nil && *sec.OrderIndex < 0 {
			return nil, apperrors.Validation("sections[%d].order_index must not be negative", i)
		}
	}
	if in.OutlineCount < 0 {
		return nil, apperrors.Validation("outline_count must not be negative")
	}

	project := entity.NewProject(ownerID, title, strings.TrimSpace(in.Topic), ct)
	detail := &ProjectDetail{Project: project}

	inputs := in.Sections
	if len(inputs) == 0 && in.OutlineCount > 0 {
		// 大纲失败时得到占位标题，不阻塞项目创建
		res := s.generator.SuggestOutline(ctx, project.EffectiveTopic(), ct, in.OutlineCount)
		detail.OutlineFallback = res.Fallback
		for _, heading := range res.Value {
			inputs = append(inputs, SectionInput{Title: heading})
		}
	}

	for i, sec := range inputs {
		order := i
		if sec.OrderIndex != nil {
			order = *sec.OrderIndex
		}
		detail.Sections = append(detail.Sections, entity.NewSection(project.ID, strings.TrimSpace(sec.Title), order))
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.projects.Create(ctx, project); err != nil {
			return err
		}
		if len(detail.Sections) == 0 {
			return nil
		}
		return s.sections.CreateBatch(ctx, detail.Sections)
	})
	if err != nil {
		logger.Error(ctx, "failed to create project", err)
		return nil, err
	}

	logger.Info(ctx, "project created",
		"project_id", project.ID,
		"container", ct.String(),
		"sections", len(detail.Sections),
	)
	detail.Sections, err = s.sections.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	return detail, nil
}

// GetProject 获取项目详情
func (s *Service) GetProject(ctx context.Context, ownerID, projectID string) (*ProjectDetail, error) {
	project, err := s.ownedProject(ctx, ownerID, projectID)
	if err != nil {
		return nil, err
	}
	sections, err := s.sections.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	return &ProjectDetail{Project: project, Sections: sections}, nil
}

// ListProjects 分页列出用户项目
func (s *Service) ListProjects(ctx context.Context, ownerID string, pagination repository.Pagination) (*repository.PagedResult[*entity.Project], error) {
	return s.projects.ListByOwner(ctx, ownerID, pagination)
}

// UpdateProject 更新标题与主题
func (s *Service) UpdateProject(ctx context.Context, ownerID, projectID string, in UpdateProjectInput) (*entity.Project, error) {
	project, err := s.ownedProject(ctx, ownerID, projectID)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if err := validateTitle("title", title); err != nil {
			return nil, err
		}
		project.Title = title
	}
	if in.Topic != nil {
		project.Topic = strings.TrimSpace(*in.Topic)
	}
	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// DeleteProject 删除项目及其小节、台账
func (s *Service) DeleteProject(ctx context.Context, ownerID, projectID string) error {
	project, err := s.ownedProject(ctx, ownerID, projectID)
	if err != nil {
		return err
	}
	if err := s.projects.DeleteCascade(ctx, project.ID); err != nil {
		logger.Error(ctx, "failed to delete project", err, "project_id", project.ID)
		return err
	}
	return nil
}

// ListSections 按顺序列出小节
func (s *Service) ListSections(ctx context.Context, ownerID, projectID string) ([]*entity.Section, error) {
	project, err := s.ownedProject(ctx, ownerID, projectID)
	if err != nil {
		return nil, err
	}
	return s.sections.ListByProject(ctx, project.ID)
}

// AddSection 新增小节
func (s *Service) AddSection(ctx context.Context, ownerID, projectID string, in SectionInput) (*entity.Section, error) {
	title := strings.TrimSpace(in.Title)
	if err := validateTitle("title", title); err != nil {
		return nil, err
	}
	if in.OrderIndex != nil && *in.OrderIndex < 0 {
		return nil, apperrors.Validation("order_index must not be negative")
	}

	project, err := s.ownedProject(ctx, ownerID, projectID)
	if err != nil {
		return nil, err
	}

	var section *entity.Section
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		order := 0
		if in.OrderIndex != nil {
			order = *in.OrderIndex
		} else {
			next, err := s.sections.NextOrderIndex(ctx, project.ID)
			if err != nil {
				return err
			}
			order = next
		}
		section = entity.NewSection(project.ID, title, order)
		return s.sections.Create(ctx, section)
	})
	if err != nil {
		return nil, err
	}
	return section, nil
}

// UpdateSection 修改标题、顺序或内容。内容修改走台账，记为一次编辑。
func (s *Service) UpdateSection(ctx context.Context, ownerID, sectionID string, in UpdateSectionInput) (*entity.Section, error) {
	section, err := s.ownedSection(ctx, ownerID, sectionID)
	if err != nil {
		return nil, err
	}

	metaChanged := in.Title != nil || in.OrderIndex != nil
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if err := validateTitle("title", title); err != nil {
			return nil, err
		}
		section.Title = title
	}
	if in.OrderIndex != nil {
		if *in.OrderIndex < 0 {
			return nil, apperrors.Validation("order_index must not be negative")
		}
		section.OrderIndex = *in.OrderIndex
	}

	// 元数据与内容一起提交，内容写入失败时标题与顺序也回滚
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if metaChanged {
			if err := s.sections.UpdateMeta(ctx, section); err != nil {
				return err
			}
		}
		if in.Content != nil {
			edited, err := s.refine.Edit(ctx, ownerID, section.ID, *in.Content)
			if err != nil {
				return err
			}
			section = edited
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return section, nil
}

// DeleteSection 删除小节及其台账
func (s *Service) DeleteSection(ctx context.Context, ownerID, sectionID string) error {
	section, err := s.ownedSection(ctx, ownerID, sectionID)
	if err != nil {
		return err
	}
	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		return s.sections.Delete(ctx, section.ID)
	})
}

func (s *Service) ownedProject(ctx context.Context, ownerID, projectID string) (*entity.Project, error) {
	project, err := s.projects.GetByOwner(ctx, ownerID, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apperrors.ErrProjectNotFound
	}
	return project, nil
}

func (s *Service) ownedSection(ctx context.Context, ownerID, sectionID string) (*entity.Section, error) {
	section, err := s.sections.GetByOwner(ctx, ownerID, sectionID)
	if err != nil {
		return nil, err
	}
	if section == nil {
		return nil, apperrors.ErrSectionNotFound
	}
	return section, nil
}

func validateTitle(field, title string) error {
	if title == "" {
		return apperrors.Validation("%s is required", field)
	}
	if len([]rune(title)) > maxTitleRunes {
		return apperrors.Validation("%s must be at most %d characters", field, maxTitleRunes)
	}
	return nil
}

package export

import (
	"bytes"
	"context"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"z-doc-ai-api/internal/domain/repository"
	apperrors "z-doc-ai-api/pkg/errors"
	"z-doc-ai-api/pkg/logger"
	"z-doc-ai-api/pkg/metrics"
)

var tracer = otel.Tracer("export")

// Service 导出服务
type Service struct {
	projects repository.ProjectRepository
	sections repository.SectionRepository
	md       goldmark.Markdown
}

// NewService 创建导出服务
func NewService(projects repository.ProjectRepository, sections repository.SectionRepository) *Service {
	return &Service{
		projects: projects,
		sections: sections,
		md:       goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Export 读取最新内容并渲染，每次调用都重新读取
func (s *Service) Export(ctx context.Context, ownerID, projectID string) (*Artifact, error) {
	ctx, span := tracer.Start(ctx, "export.Service.Export")
	defer span.End()

	doc, err := s.load(ctx, ownerID, projectID)
	if err != nil {
		return nil, err
	}
	container := doc.ContainerType.String()
	span.SetAttributes(
		attribute.String("export.container", container),
		attribute.Int("export.sections", len(doc.Sections)),
	)

	start := time.Now()
	artifact, err := Render(*doc)
	metrics.ExportDuration.WithLabelValues(container).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ExportTotal.WithLabelValues(container, "error").Inc()
		span.RecordError(err)
		logger.Error(ctx, "failed to render document", err, "container", container)
		return nil, apperrors.ErrExportFailed.WithError(err)
	}
	metrics.ExportTotal.WithLabelValues(container, "ok").Inc()
	metrics.ExportSize.WithLabelValues(container).Observe(float64(len(artifact.Data)))

	logger.Info(ctx, "document exported",
		"container", container,
		"sections", len(doc.Sections),
		"bytes", len(artifact.Data),
	)
	return artifact, nil
}

// Preview 渲染 HTML 预览
func (s *Service) Preview(ctx context.Context, ownerID, projectID string) (string, error) {
	ctx, span := tracer.Start(ctx, "export.Service.Preview")
	defer span.End()

	doc, err := s.load(ctx, ownerID, projectID)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := s.md.Convert([]byte(Markdown(*doc)), &buf); err != nil {
		return "", apperrors.ErrExportFailed.WithError(err)
	}
	return buf.String(), nil
}

func (s *Service) load(ctx context.Context, ownerID, projectID string) (*AssembledDocument, error) {
	project, err := s.projects.GetByOwner(ctx, ownerID, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apperrors.ErrProjectNotFound
	}
	ctx = logger.WithContext(ctx, logger.ProjectIDKey, project.ID)

	sections, err := s.sections.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	doc := Assemble(project, sections)
	return &doc, nil
}

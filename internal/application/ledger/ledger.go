// Package ledger 维护小节内容变更与反馈的只追加台账。
package ledger

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"

	"z-doc-ai-api/internal/domain/entity"
	"z-doc-ai-api/internal/domain/repository"
	apperrors "z-doc-ai-api/pkg/errors"
	"z-doc-ai-api/pkg/metrics"
)

var tracer = otel.Tracer("ledger")

// Ledger 台账服务
type Ledger struct {
	tx       repository.Transactor
	sections repository.SectionRepository
	events   repository.RefinementEventRepository
}

// NewLedger 创建台账服务
func NewLedger(tx repository.Transactor, sections repository.SectionRepository, events repository.RefinementEventRepository) *Ledger {
	return &Ledger{tx: tx, sections: sections, events: events}
}

// ErrContentChanged 变更基于的内容已被其他写入覆盖
var ErrContentChanged = apperrors.New(apperrors.CodeConflict, "section content changed concurrently, reload and retry")

// Mutation 一次内容变更
type Mutation struct {
	Kind   entity.EventKind
	Prompt string
	Next   string
}

// rebases 精修与手动编辑都基于读取时的内容，落库前需确认未被改动
func (m Mutation) rebases() bool {
	return m.Kind != entity.EventKindGeneration
}

// RecordMutation 追加一条内容变更事件
func (l *Ledger) RecordMutation(ctx context.Context, sectionID string, kind entity.EventKind, prompt, previous, next string) (*entity.RefinementEvent, error) {
	ctx, span := tracer.Start(ctx, "ledger.RecordMutation")
	defer span.End()

	if !kind.IsMutation() {
		return nil, apperrors.Validation("unsupported mutation kind %q", kind)
	}
	event := entity.NewMutationEvent(sectionID, kind, prompt, previous, next)
	if err := l.events.Append(ctx, event); err != nil {
		span.RecordError(err)
		return nil, err
	}
	metrics.LedgerEventsTotal.WithLabelValues(string(event.Kind())).Inc()
	return event, nil
}

// RecordFeedback 追加反馈事件，前后内容均为小节当前内容
func (l *Ledger) RecordFeedback(ctx context.Context, section *entity.Section, feedback entity.Feedback, comment string) (*entity.RefinementEvent, error) {
	ctx, span := tracer.Start(ctx, "ledger.RecordFeedback")
	defer span.End()

	event := entity.NewFeedbackEvent(section.ID, section.Content, feedback, comment)
	if err := l.events.Append(ctx, event); err != nil {
		span.RecordError(err)
		return nil, err
	}
	metrics.LedgerEventsTotal.WithLabelValues(string(entity.EventKindFeedback)).Inc()
	return event, nil
}

// ApplyMutation 在同一事务内覆盖小节内容并追加变更事件。
// 行在事务内加锁读取，previous_content 取读到的内容。精修与编辑要求库中内容
// 仍等于 section.Content，否则返回 ErrContentChanged 且不写入。
// 成功后 section 参数会被更新为写入后的状态。
func (l *Ledger) ApplyMutation(ctx context.Context, section *entity.Section, m Mutation) (*entity.RefinementEvent, error) {
	ctx, span := tracer.Start(ctx, "ledger.ApplyMutation")
	defer span.End()

	if !m.Kind.IsMutation() {
		return nil, apperrors.Validation("unsupported mutation kind %q", m.Kind)
	}

	var event *entity.RefinementEvent
	err := l.tx.WithTransaction(ctx, func(ctx context.Context) error {
		current, err := l.sections.GetForUpdate(ctx, section.ID)
		if err != nil {
			return err
		}
		if current == nil {
			return apperrors.ErrSectionNotFound
		}
		if m.rebases() && current.Content != section.Content {
			return ErrContentChanged
		}
		if err := l.sections.UpdateContent(ctx, section.ID, m.Next); err != nil {
			return err
		}
		event = entity.NewMutationEvent(section.ID, m.Kind, m.Prompt, current.Content, m.Next)
		return l.events.Append(ctx, event)
	})
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("apply mutation on section %s: %w", section.ID, err)
	}

	section.Content = m.Next
	metrics.LedgerEventsTotal.WithLabelValues(string(event.Kind())).Inc()
	return event, nil
}

// History 按创建顺序返回小节全部事件
func (l *Ledger) History(ctx context.Context, sectionID string) ([]*entity.RefinementEvent, error) {
	ctx, span := tracer.Start(ctx, "ledger.History")
	defer span.End()

	return l.events.ListBySection(ctx, sectionID)
}

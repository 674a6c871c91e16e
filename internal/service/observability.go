package service

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// UseCaseEvent captures lightweight execution telemetry for a service use case.
type UseCaseEvent struct {
	Name       string
	EstimateID string
	Duration   time.Duration
	Success    bool
	Err        error
	Fields     map[string]any
	StartedAt  time.Time
	// Version is the store version after the use case, 0 when not applicable.
	Version uint64
}

// UseCaseObserver receives use-case execution events.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// NoopUseCaseObserver ignores all events.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type logUseCaseObserver struct {
	logger *slog.Logger
}

// NewLogUseCaseObserver writes service use-case events to the provided writer.
func NewLogUseCaseObserver(w io.Writer) UseCaseObserver {
	if w == nil {
		return NoopUseCaseObserver{}
	}
	return &logUseCaseObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *logUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	attrs := make([]any, 0, 12+len(event.Fields)*2)
	attrs = append(attrs,
		"use_case", event.Name,
		"duration_ms", event.Duration.Milliseconds(),
		"success", event.Success,
	)
	if event.EstimateID != "" {
		attrs = append(attrs, "estimate_id", event.EstimateID)
	}
	if event.Version > 0 {
		attrs = append(attrs, "version", event.Version)
	}
	for k, v := range event.Fields {
		attrs = append(attrs, k, v)
	}
	if event.Err != nil {
		attrs = append(attrs, "error", event.Err.Error())
		o.logger.ErrorContext(ctx, "service_use_case", attrs...)
		return
	}
	o.logger.InfoContext(ctx, "service_use_case", attrs...)
}

func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopUseCaseObserver{}
}

// useCaseSpan times one use case; finish reports it to the observer.
type useCaseSpan struct {
	observer   UseCaseObserver
	name       string
	estimateID string
	startedAt  time.Time
	fields     map[string]any
}

func startUseCase(observer UseCaseObserver, name, estimateID string, fields map[string]any) *useCaseSpan {
	if fields == nil {
		fields = make(map[string]any)
	}
	return &useCaseSpan{
		observer:   observer,
		name:       name,
		estimateID: estimateID,
		startedAt:  time.Now().UTC(),
		fields:     fields,
	}
}

func (s *useCaseSpan) finish(ctx context.Context, version uint64, err error) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:       s.name,
		EstimateID: s.estimateID,
		StartedAt:  s.startedAt,
		Duration:   time.Since(s.startedAt),
		Success:    err == nil,
		Err:        err,
		Fields:     s.fields,
		Version:    version,
	})
}

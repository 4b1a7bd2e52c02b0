package app

import (
	"context"

	"github.com/ludo-technologies/scorediff/domain"
	"github.com/ludo-technologies/scorediff/service"
)

// EvaluateUseCase orchestrates a batch evaluation over many score pairs.
type EvaluateUseCase struct {
	service   domain.DiffService
	formatter domain.DiffFormatter
}

// NewEvaluateUseCase creates a new evaluate use case
func NewEvaluateUseCase(svc domain.DiffService, formatter domain.DiffFormatter) *EvaluateUseCase {
	return &EvaluateUseCase{service: svc, formatter: formatter}
}

// Execute performs the complete batch evaluation workflow
func (uc *EvaluateUseCase) Execute(ctx context.Context, req *domain.EvaluateRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	response, err := uc.service.Evaluate(ctx, req)
	if err != nil {
		return domain.NewComparisonError("batch evaluation failed", err)
	}

	writer, done, err := resolveWriter(req.OutputWriter, req.OutputPath)
	if err != nil {
		return err
	}
	defer done()

	if err := uc.formatter.FormatEvaluateResponse(response, req.OutputFormat, writer); err != nil {
		return domain.NewOutputError("failed to write output", err)
	}
	return nil
}

// EvaluateUseCaseBuilder helps build EvaluateUseCase with dependencies
type EvaluateUseCaseBuilder struct {
	service   domain.DiffService
	formatter domain.DiffFormatter
}

// NewEvaluateUseCaseBuilder creates a new builder for EvaluateUseCase
func NewEvaluateUseCaseBuilder() *EvaluateUseCaseBuilder {
	return &EvaluateUseCaseBuilder{}
}

func (b *EvaluateUseCaseBuilder) WithService(svc domain.DiffService) *EvaluateUseCaseBuilder {
	b.service = svc
	return b
}

func (b *EvaluateUseCaseBuilder) WithFormatter(formatter domain.DiffFormatter) *EvaluateUseCaseBuilder {
	b.formatter = formatter
	return b
}

// Build assembles the use case, filling unset dependencies with defaults
func (b *EvaluateUseCaseBuilder) Build() *EvaluateUseCase {
	svc := b.service
	if svc == nil {
		svc = service.NewDiffService()
	}
	formatter := b.formatter
	if formatter == nil {
		formatter = service.NewDiffFormatter()
	}
	return NewEvaluateUseCase(svc, formatter)
}

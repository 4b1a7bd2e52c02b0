package app

import (
	"context"
	"io"
	"os"

	"github.com/ludo-technologies/scorediff/domain"
	"github.com/ludo-technologies/scorediff/service"
)

// DiffUseCase orchestrates a single score comparison: load, compare, and
// write the formatted result.
type DiffUseCase struct {
	service   domain.DiffService
	formatter domain.DiffFormatter
}

// NewDiffUseCase creates a new diff use case
func NewDiffUseCase(svc domain.DiffService, formatter domain.DiffFormatter) *DiffUseCase {
	return &DiffUseCase{service: svc, formatter: formatter}
}

// Execute performs the complete comparison workflow
func (uc *DiffUseCase) Execute(ctx context.Context, req *domain.DiffRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	response, err := uc.service.Diff(ctx, req)
	if err != nil {
		return domain.NewComparisonError("score comparison failed", err)
	}

	writer, done, err := resolveWriter(req.OutputWriter, req.OutputPath)
	if err != nil {
		return err
	}
	defer done()

	if err := uc.formatter.FormatDiffResponse(response, req.OutputFormat, writer); err != nil {
		return domain.NewOutputError("failed to write output", err)
	}
	return nil
}

// DiffUseCaseBuilder helps build DiffUseCase with dependencies
type DiffUseCaseBuilder struct {
	service   domain.DiffService
	formatter domain.DiffFormatter
}

// NewDiffUseCaseBuilder creates a new builder for DiffUseCase
func NewDiffUseCaseBuilder() *DiffUseCaseBuilder {
	return &DiffUseCaseBuilder{}
}

func (b *DiffUseCaseBuilder) WithService(svc domain.DiffService) *DiffUseCaseBuilder {
	b.service = svc
	return b
}

func (b *DiffUseCaseBuilder) WithFormatter(formatter domain.DiffFormatter) *DiffUseCaseBuilder {
	b.formatter = formatter
	return b
}

// Build assembles the use case, filling unset dependencies with defaults
func (b *DiffUseCaseBuilder) Build() *DiffUseCase {
	svc := b.service
	if svc == nil {
		svc = service.NewDiffService()
	}
	formatter := b.formatter
	if formatter == nil {
		formatter = service.NewDiffFormatter()
	}
	return NewDiffUseCase(svc, formatter)
}

// resolveWriter picks the output destination: an explicit writer, a file
// path, or stdout.
func resolveWriter(writer io.Writer, path string) (io.Writer, func(), error) {
	if writer != nil {
		return writer, func() {}, nil
	}
	if path != "" {
		file, err := os.Create(path)
		if err != nil {
			return nil, nil, domain.NewOutputError("failed to create output file "+path, err)
		}
		return file, func() { _ = file.Close() }, nil
	}
	return os.Stdout, func() {}, nil
}

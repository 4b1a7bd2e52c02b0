package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/scorediff/domain"
)

type stubDiffService struct {
	diffResponse     *domain.DiffResponse
	evaluateResponse *domain.EvaluateResponse
	err              error

	gotDiffReq     *domain.DiffRequest
	gotEvaluateReq *domain.EvaluateRequest
}

func (s *stubDiffService) Diff(ctx context.Context, req *domain.DiffRequest) (*domain.DiffResponse, error) {
	s.gotDiffReq = req
	return s.diffResponse, s.err
}

func (s *stubDiffService) Evaluate(ctx context.Context, req *domain.EvaluateRequest) (*domain.EvaluateResponse, error) {
	s.gotEvaluateReq = req
	return s.evaluateResponse, s.err
}

type stubFormatter struct {
	lastFormat domain.OutputFormat
	err        error
}

func (f *stubFormatter) FormatDiffResponse(response *domain.DiffResponse, format domain.OutputFormat, writer io.Writer) error {
	f.lastFormat = format
	if f.err != nil {
		return f.err
	}
	_, err := writer.Write([]byte("diff output\n"))
	return err
}

func (f *stubFormatter) FormatEvaluateResponse(response *domain.EvaluateResponse, format domain.OutputFormat, writer io.Writer) error {
	f.lastFormat = format
	if f.err != nil {
		return f.err
	}
	_, err := writer.Write([]byte("evaluate output\n"))
	return err
}

func validDiffRequest(buf *bytes.Buffer) *domain.DiffRequest {
	return &domain.DiffRequest{
		OriginalPath: "a.musicxml",
		TargetPath:   "b.musicxml",
		Detail:       domain.DetailAllObjects,
		OutputFormat: domain.OutputFormatText,
		OutputWriter: buf,
	}
}

func TestDiffUseCaseExecute(t *testing.T) {
	svc := &stubDiffService{diffResponse: &domain.DiffResponse{Result: &domain.DiffResult{}, Success: true}}
	formatter := &stubFormatter{}
	uc := NewDiffUseCaseBuilder().WithService(svc).WithFormatter(formatter).Build()

	var buf bytes.Buffer
	req := validDiffRequest(&buf)
	require.NoError(t, uc.Execute(context.Background(), req))

	assert.Same(t, req, svc.gotDiffReq)
	assert.Equal(t, domain.OutputFormatText, formatter.lastFormat)
	assert.Equal(t, "diff output\n", buf.String())
}

func TestDiffUseCaseValidatesBeforeCalling(t *testing.T) {
	svc := &stubDiffService{}
	uc := NewDiffUseCaseBuilder().WithService(svc).WithFormatter(&stubFormatter{}).Build()

	err := uc.Execute(context.Background(), &domain.DiffRequest{})
	assert.Error(t, err)
	assert.Nil(t, svc.gotDiffReq)
}

func TestDiffUseCaseWrapsServiceError(t *testing.T) {
	svc := &stubDiffService{err: errors.New("boom")}
	uc := NewDiffUseCaseBuilder().WithService(svc).WithFormatter(&stubFormatter{}).Build()

	var buf bytes.Buffer
	err := uc.Execute(context.Background(), validDiffRequest(&buf))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestEvaluateUseCaseExecute(t *testing.T) {
	svc := &stubDiffService{evaluateResponse: &domain.EvaluateResponse{Success: true}}
	formatter := &stubFormatter{}
	uc := NewEvaluateUseCaseBuilder().WithService(svc).WithFormatter(formatter).Build()

	var buf bytes.Buffer
	req := &domain.EvaluateRequest{
		OriginalPatterns: []string{"gt/*.musicxml"},
		TargetPatterns:   []string{"omr/*.musicxml"},
		Detail:           domain.DetailAllObjects,
		OutputFormat:     domain.OutputFormatJSON,
		OutputWriter:     &buf,
	}
	require.NoError(t, uc.Execute(context.Background(), req))

	assert.Same(t, req, svc.gotEvaluateReq)
	assert.Equal(t, domain.OutputFormatJSON, formatter.lastFormat)
	assert.Equal(t, "evaluate output\n", buf.String())
}

func TestEvaluateUseCaseValidates(t *testing.T) {
	uc := NewEvaluateUseCaseBuilder().WithService(&stubDiffService{}).WithFormatter(&stubFormatter{}).Build()
	err := uc.Execute(context.Background(), &domain.EvaluateRequest{})
	assert.Error(t, err)
}

func TestUseCaseFormatterErrorSurfaces(t *testing.T) {
	svc := &stubDiffService{diffResponse: &domain.DiffResponse{Result: &domain.DiffResult{}, Success: true}}
	uc := NewDiffUseCaseBuilder().WithService(svc).WithFormatter(&stubFormatter{err: errors.New("bad writer")}).Build()

	var buf bytes.Buffer
	err := uc.Execute(context.Background(), validDiffRequest(&buf))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad writer")
}

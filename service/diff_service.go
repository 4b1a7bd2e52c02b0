package service

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/ludo-technologies/scorediff/domain"
	"github.com/ludo-technologies/scorediff/internal/analyzer"
	"github.com/ludo-technologies/scorediff/internal/parser"
	"github.com/ludo-technologies/scorediff/internal/score"
)

// DiffServiceImpl implements the domain.DiffService interface
type DiffServiceImpl struct {
	fileReader *FileReaderImpl
	progress   domain.ProgressReporter
}

// NewDiffService creates a new diff service implementation
func NewDiffService() *DiffServiceImpl {
	return &DiffServiceImpl{
		fileReader: NewFileReader(),
		progress:   NewProgressManager(),
	}
}

// SetProgressReporter overrides the progress reporter, mainly for tests
func (s *DiffServiceImpl) SetProgressReporter(p domain.ProgressReporter) {
	s.progress = p
}

// Diff compares two score files and produces the edit script and cost
func (s *DiffServiceImpl) Diff(ctx context.Context, req *domain.DiffRequest) (*domain.DiffResponse, error) {
	start := time.Now()

	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	result, err := s.comparePair(ctx, req.OriginalPath, req.TargetPath, req.Detail)
	if err != nil {
		return nil, err
	}

	return &domain.DiffResponse{
		Result:   result,
		Request:  req,
		Duration: time.Since(start).Milliseconds(),
		Success:  true,
	}, nil
}

// Evaluate runs a batch comparison over many score pairs
func (s *DiffServiceImpl) Evaluate(ctx context.Context, req *domain.EvaluateRequest) (*domain.EvaluateResponse, error) {
	start := time.Now()

	if err := req.Validate(); err != nil {
		return nil, err
	}

	originals, err := s.fileReader.CollectScoreFiles(req.OriginalPatterns)
	if err != nil {
		return nil, err
	}
	targets, err := s.fileReader.CollectScoreFiles(req.TargetPatterns)
	if err != nil {
		return nil, err
	}
	if len(originals) == 0 {
		return nil, domain.NewInvalidInputError("no score files matched the original patterns", nil)
	}
	if len(originals) != len(targets) {
		return nil, domain.NewInvalidInputError(
			fmt.Sprintf("pattern mismatch: %d original files vs %d target files", len(originals), len(targets)), nil)
	}

	s.progress.Start(len(originals))
	defer s.progress.Finish()

	pairs := make([]domain.PairResult, 0, len(originals))
	for i := range originals {
		select {
		case <-ctx.Done():
			return nil, domain.NewComparisonError("evaluation cancelled", ctx.Err())
		default:
		}

		pairCtx := ctx
		if req.Timeout > 0 {
			var cancel context.CancelFunc
			pairCtx, cancel = context.WithTimeout(ctx, req.Timeout)
			result := s.evaluateOne(pairCtx, originals[i], targets[i], req.Detail)
			cancel()
			pairs = append(pairs, result)
		} else {
			pairs = append(pairs, s.evaluateOne(pairCtx, originals[i], targets[i], req.Detail))
		}
		s.progress.Step()
	}

	sortPairResults(pairs, req.SortBy)

	response := &domain.EvaluateResponse{
		Pairs:    pairs,
		Duration: time.Since(start).Milliseconds(),
		Success:  true,
	}
	compared := 0
	for _, p := range pairs {
		if p.Error == "" {
			response.MeanOMRNED += p.OMRNED
			response.MeanSECR += p.SECR
			compared++
		}
	}
	if compared > 0 {
		response.MeanOMRNED /= float64(compared)
		response.MeanSECR /= float64(compared)
	}
	return response, nil
}

func (s *DiffServiceImpl) evaluateOne(ctx context.Context, originalPath, targetPath string, detail domain.DetailLevel) domain.PairResult {
	pair := domain.PairResult{
		OriginalPath: originalPath,
		TargetPath:   targetPath,
	}

	result, err := s.comparePair(ctx, originalPath, targetPath, detail)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: comparison of %s failed: %v\n", originalPath, err)
		pair.Error = err.Error()
		return pair
	}

	pair.Cost = result.Cost
	pair.CombinedSize = result.OriginalSize + result.TargetSize
	pair.OMRNED = result.OMRNED()
	pair.SECR = result.SECR()
	pair.Incomplete = result.Incomplete
	return pair
}

// comparePair loads, builds, and compares one pair of score files. When the
// context deadline passes before the comparison finishes, the result is the
// worst-case cost marked incomplete, not an error.
func (s *DiffServiceImpl) comparePair(ctx context.Context, originalPath, targetPath string, detail domain.DetailLevel) (*domain.DiffResult, error) {
	original, err := s.loadScore(originalPath, detail)
	if err != nil {
		return nil, err
	}
	target, err := s.loadScore(targetPath, detail)
	if err != nil {
		return nil, err
	}

	type outcome struct {
		ops  []domain.Operation
		cost int
	}
	done := make(chan outcome, 1)
	go func() {
		comparison := analyzer.NewComparison()
		ops, cost := comparison.CompareScores(original, target)
		done <- outcome{ops: ops, cost: cost}
	}()

	result := &domain.DiffResult{
		OriginalSize: original.NotationSize(),
		TargetSize:   target.NotationSize(),
	}

	select {
	case <-ctx.Done():
		result.Cost = result.OriginalSize + result.TargetSize
		result.Incomplete = true
		return result, nil
	case out := <-done:
		result.Operations = out.ops
		result.Cost = out.cost
		for _, op := range out.ops {
			if op.Op == domain.OpSyntaxError {
				result.SyntaxErrorsFixed += op.Cost
			}
		}
		return result, nil
	}
}

func (s *DiffServiceImpl) loadScore(path string, detail domain.DetailLevel) (*score.Score, error) {
	native, err := parser.NewMusicXMLParser().ParseFile(path)
	if err != nil {
		return nil, err
	}
	built, err := score.NewBuilder(detail).Build(native)
	if err != nil {
		return nil, domain.NewComparisonError("failed to build score tree for "+path, err)
	}
	return built, nil
}

func sortPairResults(pairs []domain.PairResult, criteria domain.SortCriteria) {
	switch criteria {
	case domain.SortByCost:
		sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].Cost > pairs[j].Cost })
	case domain.SortBySimilarity:
		sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].SECR < pairs[j].SECR })
	default:
		sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].OriginalPath < pairs[j].OriginalPath })
	}
}

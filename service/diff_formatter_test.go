package service

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ludo-technologies/scorediff/domain"
)

func sampleDiffResponse() *domain.DiffResponse {
	return &domain.DiffResponse{
		Result: &domain.DiffResult{
			Cost:         3,
			OriginalSize: 10,
			TargetSize:   11,
			Operations: []domain.Operation{
				{Op: domain.OpPitchNameEdit, Cost: 1},
				{Op: domain.OpDotIns, Cost: 2},
			},
		},
		Request: &domain.DiffRequest{
			OriginalPath: "gt.musicxml",
			TargetPath:   "omr.musicxml",
			Detail:       domain.DetailAllObjects,
			ShowOps:      true,
		},
		Duration: 12,
		Success:  true,
	}
}

func TestFormatDiffAsText(t *testing.T) {
	var buf bytes.Buffer
	err := NewDiffFormatter().FormatDiffResponse(sampleDiffResponse(), domain.OutputFormatText, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Score Comparison")
	assert.Contains(t, out, "Cost:                3")
	assert.Contains(t, out, "gt.musicxml")
	assert.Contains(t, out, "pitchnameedit")
}

func TestFormatDiffTextHidesOpsByDefault(t *testing.T) {
	resp := sampleDiffResponse()
	resp.Request.ShowOps = false

	var buf bytes.Buffer
	require.NoError(t, NewDiffFormatter().FormatDiffResponse(resp, domain.OutputFormatText, &buf))
	assert.NotContains(t, buf.String(), "OPERATIONS")
}

type textSubject string

func (s textSubject) Signature() string { return string(s) }
func (s textSubject) NotationSize() int { return 1 }
func (s textSubject) String() string    { return string(s) }

func TestFormatDiffTextTruncatesOnRuneBoundary(t *testing.T) {
	resp := sampleDiffResponse()
	resp.Result.Operations = []domain.Operation{
		{Op: domain.OpLyricTextEdit, Cost: 1, Target: textSubject(strings.Repeat("küß", 60))},
	}

	var buf bytes.Buffer
	require.NoError(t, NewDiffFormatter().FormatDiffResponse(resp, domain.OutputFormatText, &buf))

	out := buf.String()
	assert.True(t, utf8.ValidString(out))
	assert.Contains(t, out, "...")
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, len([]rune(line)), 80)
	}
}

func TestFormatDiffAsJSON(t *testing.T) {
	var buf bytes.Buffer
	err := NewDiffFormatter().FormatDiffResponse(sampleDiffResponse(), domain.OutputFormatJSON, &buf)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	result := decoded["result"].(map[string]interface{})
	assert.Equal(t, float64(3), result["cost"])
}

func TestFormatDiffAsYAML(t *testing.T) {
	var buf bytes.Buffer
	err := NewDiffFormatter().FormatDiffResponse(sampleDiffResponse(), domain.OutputFormatYAML, &buf)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 3, decoded["cost"])
	assert.Equal(t, "gt.musicxml", decoded["original"])
}

func TestFormatDiffAsCSV(t *testing.T) {
	var buf bytes.Buffer
	err := NewDiffFormatter().FormatDiffResponse(sampleDiffResponse(), domain.OutputFormatCSV, &buf)
	require.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "cost", records[0][2])
	assert.Equal(t, "3", records[1][2])
}

func TestFormatDiffUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := NewDiffFormatter().FormatDiffResponse(sampleDiffResponse(), "html", &buf)
	assert.Error(t, err)
}

func TestFormatEvaluateResponse(t *testing.T) {
	resp := &domain.EvaluateResponse{
		Pairs: []domain.PairResult{
			{OriginalPath: "a.musicxml", TargetPath: "b.musicxml", Cost: 2, CombinedSize: 20, OMRNED: 0.1, SECR: 0.9},
			{OriginalPath: "c.musicxml", TargetPath: "d.musicxml", Error: "parse failed"},
		},
		MeanOMRNED: 0.1,
		MeanSECR:   0.9,
		Success:    true,
	}

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewDiffFormatter().FormatEvaluateResponse(resp, domain.OutputFormatText, &buf))
		assert.Contains(t, buf.String(), "Batch Evaluation")
		assert.Contains(t, buf.String(), "error: parse failed")
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewDiffFormatter().FormatEvaluateResponse(resp, domain.OutputFormatCSV, &buf))
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		assert.Len(t, lines, 3)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewDiffFormatter().FormatEvaluateResponse(resp, domain.OutputFormatYAML, &buf))

		var decoded domain.EvaluateResponse
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
		assert.InDelta(t, 0.9, decoded.MeanSECR, 1e-9)
	})
}

func TestOutputFormatResolver(t *testing.T) {
	r := NewOutputFormatResolver()

	format, ext, err := r.Determine(false, false, false)
	require.NoError(t, err)
	assert.Equal(t, domain.OutputFormatText, format)
	assert.Empty(t, ext)

	format, ext, err = r.Determine(true, false, false)
	require.NoError(t, err)
	assert.Equal(t, domain.OutputFormatJSON, format)
	assert.Equal(t, "json", ext)

	_, _, err = r.Determine(true, true, false)
	assert.Error(t, err)
}

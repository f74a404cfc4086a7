package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const surveyCSV = `Anxiety,Stress,a1,a2,b1,b2
3,2,1,2,1,1
3,3,2,1,1,2
5,4,2,3,2,2
6,5,3,3,2,3
7,6,3,4,3,3
7,7,4,3,4,3
9,8,4,5,4,4
9,9,5,4,4,5
10,9,5,5,5,4
9,10,5,4,5,5
`

func writeSurvey(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "survey.csv")
	require.NoError(t, os.WriteFile(path, []byte(surveyCSV), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestColumnsCommand(t *testing.T) {
	out, _, err := run(t, "columns", "-f", writeSurvey(t), "--json")
	require.NoError(t, err)

	var body map[string][]string
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.Equal(t, []string{"Anxiety", "Stress", "a1", "a2", "b1", "b2"}, body["columns"])
}

func TestProfileCommand(t *testing.T) {
	out, _, err := run(t, "profile", "-f", writeSurvey(t))
	require.NoError(t, err)
	assert.Contains(t, out, "column")
	assert.Regexp(t, `Anxiety\s+numeric\s+10\s+0\s+0\s+0`, out)
}

func TestDescribeCommand(t *testing.T) {
	out, _, err := run(t, "describe", "Anxiety", "-f", writeSurvey(t))
	require.NoError(t, err)
	assert.Contains(t, out, "n = 10")
	assert.Contains(t, out, "min = 3.0000")
}

func TestNormalityCommand(t *testing.T) {
	out, _, err := run(t, "normality", "Stress", "-f", writeSurvey(t))
	require.NoError(t, err)
	assert.Contains(t, out, "Shapiro-Wilk (n < 50)")
}

func TestCorrelateCommand(t *testing.T) {
	out, _, err := run(t, "correlate", "Anxiety", "Stress", "-f", writeSurvey(t), "--json")
	require.NoError(t, err)

	var body struct {
		Correlation struct {
			N           int     `json:"n"`
			Coefficient float64 `json:"coefficient"`
		} `json:"correlation"`
		Hypothesis struct {
			Alpha float64 `json:"alpha"`
		} `json:"hypothesis"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.Equal(t, 10, body.Correlation.N)
	assert.Greater(t, body.Correlation.Coefficient, 0.8)
	assert.Equal(t, 0.05, body.Hypothesis.Alpha)
}

func TestCorrelateCommandErrors(t *testing.T) {
	path := writeSurvey(t)

	_, _, err := run(t, "correlate", "Anxiety", "Nope", "-f", path)
	assert.Error(t, err)

	_, _, err = run(t, "correlate", "Anxiety", "Stress", "-f", path, "--alpha", "1.5")
	assert.Error(t, err)

	_, _, err = run(t, "correlate", "Anxiety", "Stress", "-f", path, "--sidedness", "both")
	assert.Error(t, err)

	_, _, err = run(t, "correlate", "Anxiety", "Stress", "-f", "")
	assert.Error(t, err)
}

func TestDimensionsCommand(t *testing.T) {
	out, stderr, err := run(t, "dimensions", "Anxiety", "Stress", "-f", writeSurvey(t),
		"--dims1", "Somatic:a1;Cognitive:a2,a9", "--dims2", "Total:b1,b2", "--json")
	require.NoError(t, err)
	assert.Contains(t, stderr, `"a9"`)

	var results []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)
	assert.Equal(t, "Somatic", results[0]["dimension1"])
	assert.Equal(t, "Cognitive", results[1]["dimension1"])
}

func TestReportCommand(t *testing.T) {
	out, _, err := run(t, "report", "Anxiety", "Stress", "-f", writeSurvey(t),
		"--unit", "students", "--place", "Lima", "--dims1", "Somatic:a1;Cognitive:a2", "--dims2", "Work:b1;Home:b2")
	require.NoError(t, err)
	assert.Contains(t, out, "What is the relationship between Anxiety and Stress in students of Lima?")
	assert.Contains(t, out, "Dimensions:")
}

func TestExportCommand(t *testing.T) {
	path := writeSurvey(t)
	target := filepath.Join(t.TempDir(), "copy.xlsx")

	out, _, err := run(t, "export", target, "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 10 rows")

	out, _, err = run(t, "describe", "b2", "-f", target, "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"n": 10`)
}

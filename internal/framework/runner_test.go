package framework_test

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gustavo-bravo11/CPSC571-Carmichael-Storage/internal/analyzers/analyze"
	"github.com/gustavo-bravo11/CPSC571-Carmichael-Storage/internal/analyzers/divisibility"
	"github.com/gustavo-bravo11/CPSC571-Carmichael-Storage/internal/analyzers/histogram"
	"github.com/gustavo-bravo11/CPSC571-Carmichael-Storage/internal/framework"
	"github.com/gustavo-bravo11/CPSC571-Carmichael-Storage/internal/textio"
)

const testTable = "561 3 11 17\n1105 5 13 17\n1729 7 13 19\n"

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunner_SinglePassFeedsAllAnalyzers(t *testing.T) {
	t.Parallel()

	hist := histogram.NewAnalyzer()
	div := divisibility.NewAnalyzer()
	require.NoError(t, div.Configure(map[string]any{divisibility.ConfigDivisor: "5"}))

	runner := framework.NewRunner(
		[]analyze.RecordAnalyzer{hist, div},
		framework.Options{Logger: quietLogger()},
	)

	results, stats, err := runner.Run(textio.NewSource(strings.NewReader(testTable)))

	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Records)
	assert.Equal(t, int64(0), stats.Skipped)

	histReport := results[hist]
	require.NotNil(t, histReport)
	assert.Equal(t, uint64(3), histReport["records"])

	divReport := results[div]
	require.NotNil(t, divReport)
	assert.Equal(t, uint64(1), divReport["matches"]) // only 1105 is divisible by 5.
}

func TestRunner_MalformedLineFailsFast(t *testing.T) {
	t.Parallel()

	runner := framework.NewRunner(
		[]analyze.RecordAnalyzer{histogram.NewAnalyzer()},
		framework.Options{Logger: quietLogger()},
	)

	_, _, err := runner.Run(textio.NewSource(strings.NewReader("561 3\nnot-a-number\n")))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestRunner_SkipMalformed(t *testing.T) {
	t.Parallel()

	hist := histogram.NewAnalyzer()
	runner := framework.NewRunner(
		[]analyze.RecordAnalyzer{hist},
		framework.Options{SkipMalformed: true, Logger: quietLogger()},
	)

	results, stats, err := runner.Run(textio.NewSource(strings.NewReader("561 3 11 17\nbogus line\n1105 5 13 17\n")))

	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Records)
	assert.Equal(t, int64(1), stats.Skipped)
	assert.Equal(t, uint64(2), results[hist]["records"])
}

func TestRunner_SkipMalformedMatchesCleanInput(t *testing.T) {
	t.Parallel()

	run := func(input string, skip bool) []histogram.Row {
		hist := histogram.NewAnalyzer()
		runner := framework.NewRunner(
			[]analyze.RecordAnalyzer{hist},
			framework.Options{SkipMalformed: skip, Logger: quietLogger()},
		)

		results, _, err := runner.Run(textio.NewSource(strings.NewReader(input)))
		require.NoError(t, err)

		rows, ok := results[hist]["rows"].([]histogram.Row)
		require.True(t, ok)

		return rows
	}

	dirty := "561 3 11 17\noops\n10585 5 29 73\n"
	clean := "561 3 11 17\n10585 5 29 73\n"

	assert.Equal(t, run(clean, false), run(dirty, true))
}

func TestRunner_EmptyInput(t *testing.T) {
	t.Parallel()

	hist := histogram.NewAnalyzer()
	runner := framework.NewRunner(
		[]analyze.RecordAnalyzer{hist},
		framework.Options{Logger: quietLogger()},
	)

	results, stats, err := runner.Run(textio.NewSource(strings.NewReader("")))

	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.Records)

	rows, ok := results[hist]["rows"].([]histogram.Row)
	require.True(t, ok)
	require.Len(t, rows, 1) // the unconditional final row.
	assert.True(t, rows[0].Final)
}

func TestConfigureAll_CollectsErrors(t *testing.T) {
	t.Parallel()

	div := divisibility.NewAnalyzer()
	hist := histogram.NewAnalyzer()

	err := framework.ConfigureAll(
		[]analyze.RecordAnalyzer{hist, div},
		map[string]any{divisibility.ConfigDivisor: "nope"},
	)

	require.ErrorIs(t, err, divisibility.ErrInvalidDivisor)
}

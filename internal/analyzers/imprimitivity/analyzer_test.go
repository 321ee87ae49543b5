package imprimitivity_test

import (
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gustavo-bravo11/CPSC571-Carmichael-Storage/internal/analyzers/analyze"
	"github.com/gustavo-bravo11/CPSC571-Carmichael-Storage/internal/analyzers/imprimitivity"
	"github.com/gustavo-bravo11/CPSC571-Carmichael-Storage/internal/record"
)

type lineSink struct {
	lines []string
}

func (s *lineSink) WriteLine(line string) error {
	s.lines = append(s.lines, line)

	return nil
}

func feed(t *testing.T, a *imprimitivity.Analyzer, lines ...string) {
	t.Helper()

	for i, line := range lines {
		rec, err := record.ParseLine(line)
		require.NoError(t, err)

		require.NoError(t, a.Consume(&analyze.Context{Record: rec, Raw: line, Index: i + 1}))
	}
}

func divisors(values ...int64) []*big.Int {
	out := make([]*big.Int, len(values))
	for i, v := range values {
		out[i] = big.NewInt(v)
	}

	return out
}

func TestImprimitive_NotFlagged(t *testing.T) {
	t.Parallel()

	// 561 = 3·11·17: gcd(2,10,16) = 2, lcm(2,10,16) = 80, 4 <= 80.
	assert.False(t, imprimitivity.Imprimitive(divisors(3, 11, 17)))
}

func TestImprimitive_Flagged(t *testing.T) {
	t.Parallel()

	// gcd(6,12) = 6, lcm(6,12) = 12, 36 > 12.
	assert.True(t, imprimitivity.Imprimitive(divisors(7, 13)))
}

func TestImprimitive_UnitDivisors(t *testing.T) {
	t.Parallel()

	// divisor 1 makes every d-1 term zero: gcd = lcm = 0, 0 <= 0.
	assert.False(t, imprimitivity.Imprimitive(divisors(1, 1)))

	// a zero lcm stays zero once folded; a nonzero gcd then flags since
	// gcd² > 0, regardless of term order.
	assert.True(t, imprimitivity.Imprimitive(divisors(1, 1, 7)))
	assert.True(t, imprimitivity.Imprimitive(divisors(7, 1, 1)))
}

func TestAnalyzer_UnitDivisorRecord(t *testing.T) {
	t.Parallel()

	a := imprimitivity.NewAnalyzer()
	require.NoError(t, a.Initialize())

	feed(t, a, "5 1 1")

	report, err := a.Finalize()
	require.NoError(t, err)

	assert.Equal(t, uint64(1), report["tested"])
	assert.Equal(t, uint64(0), report["flagged"])
}

func TestAnalyzer_StreamsFlaggedLines(t *testing.T) {
	t.Parallel()

	a := imprimitivity.NewAnalyzer()
	require.NoError(t, a.Initialize())

	sink := &lineSink{}
	a.SetSink(sink)

	feed(t, a,
		"561 3 11 17",
		"91 7 13",
		"8911", // no divisors recorded: skipped.
	)

	report, err := a.Finalize()
	require.NoError(t, err)

	assert.Equal(t, []string{"91 7 13"}, sink.lines)
	assert.Equal(t, uint64(3), report["records"])
	assert.Equal(t, uint64(2), report["tested"])
	assert.Equal(t, uint64(1), report["flagged"])
	assert.Equal(t, uint64(1), report["skipped"])
}

func TestAnalyzer_SingleDivisorSkipped(t *testing.T) {
	t.Parallel()

	a := imprimitivity.NewAnalyzer()
	require.NoError(t, a.Initialize())

	feed(t, a, "49 7")

	report, err := a.Finalize()
	require.NoError(t, err)

	assert.Equal(t, uint64(1), report["skipped"])
	assert.Equal(t, uint64(0), report["tested"])
}

func TestAnalyzer_SerializeSummary(t *testing.T) {
	t.Parallel()

	a := imprimitivity.NewAnalyzer()
	require.NoError(t, a.Initialize())

	feed(t, a, "91 7 13")

	report, err := a.Finalize()
	require.NoError(t, err)

	var buf strings.Builder

	require.NoError(t, a.Serialize(report, analyze.FormatLaTeX, &buf))
	assert.Contains(t, buf.String(), "1 flagged of 1 tested")
}

func TestAnalyzer_SerializePlotWritesNothing(t *testing.T) {
	t.Parallel()

	a := imprimitivity.NewAnalyzer()
	require.NoError(t, a.Initialize())

	feed(t, a, "91 7 13")

	report, err := a.Finalize()
	require.NoError(t, err)

	var buf strings.Builder

	require.NoError(t, a.Serialize(report, analyze.FormatPlot, &buf))
	assert.Empty(t, buf.String())
}

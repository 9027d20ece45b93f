package report

import (
	"strings"
	"testing"

	"groupstat/adapters/stats/engine"
	"groupstat/domain/grouped"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult(t *testing.T) *grouped.StatsResult {
	t.Helper()
	result, err := engine.NewGroupedStatsEngine().Compute([]grouped.IntervalRow{
		grouped.NewIntervalRow(0, 10, 5),
		grouped.NewIntervalRow(10, 20, 8),
		grouped.NewIntervalRow(20, 30, 3),
	})
	require.NoError(t, err)
	return result
}

func TestText(t *testing.T) {
	out := Text(sampleResult(t))

	assert.Contains(t, out, "     Lower |      Upper |       Freq")
	assert.Contains(t, out, "     10.00 |      20.00 |       8.00")
	assert.Contains(t, out, "Total N: 16")
	assert.Contains(t, out, "Mean (Average):     13.7500")
	assert.Contains(t, out, "Variance:           48.4375")
	assert.Contains(t, out, "Standard Deviation: 6.9597")
}

func TestMarkdown(t *testing.T) {
	md := Markdown("Weekly load", sampleResult(t))

	assert.True(t, strings.HasPrefix(md, "# Weekly load\n"))
	assert.Contains(t, md, "| Median | 13.7500 |")
	assert.Contains(t, md, "| 0-10 | 5 | 5.00 | 25.00 | 5 | 76.56 | 382.81 |")
	assert.Contains(t, md, "| 20-30 | 3 | 25.00 | 75.00 | 16 |")
}

func TestHTML(t *testing.T) {
	page := string(HTML("Weekly load", sampleResult(t)))

	assert.Contains(t, page, "<title>Weekly load</title>")
	assert.Contains(t, page, "<table>")
	assert.Contains(t, page, "<td>Mode</td>")
}

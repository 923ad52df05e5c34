package render

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kharcha/internal/core"
	"kharcha/internal/stats"
)

var testNow = time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC)

func series(t *testing.T) []stats.SeriesPoint {
	t.Helper()
	d, err := core.ParseDate("2024-01-15")
	require.NoError(t, err)
	records := []core.Expense{
		{ID: "a", Title: "x", Amount: core.Money{Cents: 120000}, Category: "Food", Date: d},
	}
	return stats.MonthlySeries(records, testNow)
}

func TestBarChartRenderProgress(t *testing.T) {
	chart := BarChart{Geom: DefaultGeometry(), Series: series(t)}

	var zero, half, full bytes.Buffer
	require.NoError(t, chart.Render(&zero, 0))
	require.NoError(t, chart.Render(&half, 0.5))
	require.NoError(t, chart.Render(&full, 1))

	for _, buf := range []*bytes.Buffer{&zero, &half, &full} {
		s := buf.String()
		assert.True(t, strings.HasPrefix(s, "<svg"), "SVG document")
		assert.True(t, strings.HasSuffix(s, "</svg>"))
		assert.Equal(t, 12, strings.Count(s, "<rect"), "one bar per month")
	}
	assert.NotEqual(t, half.String(), full.String(), "bars grow with progress")
}

func TestBarChartAllZeroSeries(t *testing.T) {
	chart := BarChart{Geom: DefaultGeometry(), Series: stats.MonthlySeries(nil, testNow)}
	var buf bytes.Buffer
	require.NoError(t, chart.Render(&buf, 1))
	// Floor-of-one scaling keeps every bar at zero height without NaN.
	assert.NotContains(t, buf.String(), "NaN")
}

func TestAreaChart(t *testing.T) {
	d, _ := core.ParseDate("2024-01-18")
	weekly := stats.WeeklySeries([]core.Expense{
		{ID: "a", Title: "x", Amount: core.Money{Cents: 4200}, Category: "Food", Date: d},
	}, testNow)

	var buf bytes.Buffer
	require.NoError(t, AreaChart{Geom: DefaultGeometry(), Series: weekly}.Render(&buf))
	s := buf.String()
	assert.Contains(t, s, `fill="url(#area)"`)
	assert.Equal(t, 7, strings.Count(s, "<text"), "one label per day")
}

func TestPieChartWedges(t *testing.T) {
	shares := []stats.CategoryShare{
		{Name: "Food", Amount: core.Money{Cents: 5000}, Percent: 83.3},
		{Name: "Transport", Amount: core.Money{Cents: 1000}, Percent: 16.7},
	}
	var buf bytes.Buffer
	require.NoError(t, PieChart{Shares: shares}.Render(&buf))
	assert.Equal(t, 2, strings.Count(buf.String(), "<path"))
}

func TestPieChartSingleCategoryFullCircle(t *testing.T) {
	shares := []stats.CategoryShare{{Name: "Food", Amount: core.Money{Cents: 5000}, Percent: 100}}
	var buf bytes.Buffer
	require.NoError(t, PieChart{Shares: shares}.Render(&buf))
	assert.Contains(t, buf.String(), "<circle")
}

func TestAnimatorRunsToCompletion(t *testing.T) {
	anim := &Animator{Frames: 5, Interval: time.Millisecond}

	var mu sync.Mutex
	var got []float64
	anim.Start(func(p float64) {
		mu.Lock()
		got = append(got, p)
		mu.Unlock()
	})

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 5
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1.0, got[len(got)-1])
}

func TestAnimatorSupersededGenerationStops(t *testing.T) {
	anim := &Animator{Frames: 50, Interval: time.Millisecond}

	var mu sync.Mutex
	firstFrames := 0
	secondDone := false

	anim.Start(func(p float64) {
		mu.Lock()
		firstFrames++
		mu.Unlock()
	})
	anim.Start(func(p float64) {
		if p == 1.0 {
			mu.Lock()
			secondDone = true
			mu.Unlock()
		}
	})

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return secondDone
	}, 2*time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Less(t, firstFrames, 50, "superseded animation stopped early")
}

func TestPipelineInvalidateAndCaches(t *testing.T) {
	p := NewPipeline(func() time.Time { return testNow })
	d, _ := core.ParseDate("2024-01-15")
	p.Invalidate([]core.Expense{
		{ID: "a", Title: "Coffee", Amount: core.Money{Cents: 5000}, Category: "Food", Date: d},
	})

	bar := p.BarSVG()
	assert.True(t, strings.HasPrefix(string(bar), "<svg"))

	pie1 := p.PieSVG()
	pie2 := p.PieSVG()
	assert.Equal(t, pie1, pie2, "pie is cached, not redrawn per request")

	week := p.WeekSVG()
	assert.Contains(t, string(week), "</svg>")

	require.Len(t, p.Shares(), 1)
	assert.Equal(t, "Food", p.Shares()[0].Name)
}

func TestPipelineResizeChangesAdvertisedSize(t *testing.T) {
	p := NewPipeline(func() time.Time { return testNow })
	p.Invalidate(nil)
	p.Resize(Geometry{Width: 320, Height: 110, Scale: 2})

	require.Eventually(t, func() bool {
		return strings.Contains(string(p.BarSVG()), `width="640"`)
	}, time.Second, 10*time.Millisecond)
}

func TestColorCycles(t *testing.T) {
	assert.Equal(t, Color(0), Color(PaletteSize()))
}

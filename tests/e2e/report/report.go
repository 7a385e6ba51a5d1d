// Package report aggregates scenario outcomes across a run and renders the
// HTML report written next to the other run artifacts.
package report

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Result is the outcome of one scenario after all retry attempts.
type Result struct {
	Name       string
	Passed     bool
	Attempts   int
	Duration   time.Duration
	Error      string
	Screenshot string
	Trace      string
}

// Collector accumulates results thread-safely; scenarios run in parallel.
type Collector struct {
	mu      sync.Mutex
	results []Result
	started time.Time
}

var defaultCollector = &Collector{started: time.Now()}

// Default returns the run-wide collector.
func Default() *Collector {
	return defaultCollector
}

// Record adds a scenario result to the run-wide collector.
func Record(r Result) {
	defaultCollector.Add(r)
}

// Add stores one result.
func (c *Collector) Add(r Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results = append(c.results, r)
}

// Summary returns total, passed and failed scenario counts.
func (c *Collector) Summary() (total, passed, failed int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, r := range c.results {
		if r.Passed {
			passed++
		} else {
			failed++
		}
	}
	return len(c.results), passed, failed
}

type reportData struct {
	Time          string
	Duration      float64
	Total         int
	Passed        int
	Failed        int
	PassedPercent float64
	FailedPercent float64
	Scenarios     []scenarioRow
}

type scenarioRow struct {
	Name        string
	StatusClass string
	Status      string
	Attempts    int
	Duration    float64
	Error       string
	Screenshot  string
	Trace       string
}

// WriteHTML renders the report to path, creating parent directories.
func (c *Collector) WriteHTML(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating report dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	defer f.Close()
	return c.render(f)
}

func (c *Collector) render(w io.Writer) error {
	c.mu.Lock()
	results := make([]Result, len(c.results))
	copy(results, c.results)
	started := c.started
	c.mu.Unlock()

	data := reportData{
		Time:     time.Now().Format("2006-01-02 15:04:05"),
		Duration: time.Since(started).Seconds(),
		Total:    len(results),
	}
	for _, r := range results {
		row := scenarioRow{
			Name:       r.Name,
			Attempts:   r.Attempts,
			Duration:   r.Duration.Seconds(),
			Error:      r.Error,
			Screenshot: r.Screenshot,
			Trace:      r.Trace,
		}
		if r.Passed {
			data.Passed++
			row.StatusClass = "passed"
			row.Status = "PASS"
		} else {
			data.Failed++
			row.StatusClass = "failed"
			row.Status = "FAIL"
		}
		data.Scenarios = append(data.Scenarios, row)
	}
	if data.Total > 0 {
		data.PassedPercent = float64(data.Passed) / float64(data.Total) * 100
		data.FailedPercent = float64(data.Failed) / float64(data.Total) * 100
	}

	tmpl, err := template.New("report").Parse(htmlTemplate)
	if err != nil {
		return fmt.Errorf("parsing report template: %w", err)
	}
	return tmpl.Execute(w, data)
}

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>CoastPass /map E2E Report</title>
<style>
body { font-family: -apple-system, "Segoe UI", sans-serif; margin: 2rem; color: #1f2933; }
h1 { font-size: 1.4rem; }
.summary { display: flex; gap: 1.5rem; margin: 1rem 0; }
.summary div { padding: .5rem 1rem; border-radius: 6px; background: #f5f7fa; }
.bar { height: 10px; border-radius: 5px; overflow: hidden; display: flex; margin-bottom: 1.5rem; }
.bar .p { background: #2f9e44; }
.bar .f { background: #e03131; }
table { border-collapse: collapse; width: 100%; }
th, td { text-align: left; padding: .5rem .75rem; border-bottom: 1px solid #e4e7eb; }
tr.passed td.status { color: #2f9e44; font-weight: 600; }
tr.failed td.status { color: #e03131; font-weight: 600; }
td.error { color: #862e2e; font-size: .85rem; }
a { color: #1c7ed6; }
</style>
</head>
<body>
<h1>CoastPass /map E2E Report</h1>
<p>{{.Time}} &middot; {{printf "%.1f" .Duration}}s</p>
<div class="summary">
<div>Total: {{.Total}}</div>
<div>Passed: {{.Passed}}</div>
<div>Failed: {{.Failed}}</div>
</div>
<div class="bar">
<div class="p" style="width: {{printf "%.1f" .PassedPercent}}%"></div>
<div class="f" style="width: {{printf "%.1f" .FailedPercent}}%"></div>
</div>
<table>
<tr><th>Scenario</th><th>Status</th><th>Attempts</th><th>Duration</th><th>Details</th></tr>
{{range .Scenarios}}
<tr class="{{.StatusClass}}">
<td>{{.Name}}</td>
<td class="status">{{.Status}}</td>
<td>{{.Attempts}}</td>
<td>{{printf "%.1f" .Duration}}s</td>
<td class="error">{{.Error}}
{{if .Screenshot}}<br><a href="{{.Screenshot}}">screenshot</a>{{end}}
{{if .Trace}}<br><a href="{{.Trace}}">trace</a>{{end}}</td>
</tr>
{{end}}
</table>
</body>
</html>
`

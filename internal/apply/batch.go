package apply

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/easy-apply/internal/types"
)

var jobViewPattern = regexp.MustCompile(`/jobs/view/(?:[^/]*-)?(\d+)`)

// JobIDFromURL extracts the posting id from a job URL, falling back to the URL itself
func JobIDFromURL(raw string) string {
	if m := jobViewPattern.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	if u, err := url.Parse(raw); err == nil {
		if id := u.Query().Get("currentJobId"); id != "" {
			return id
		}
	}
	return raw
}

// NewJob builds a job from its URL
func NewJob(rawURL string) Job {
	return Job{ID: JobIDFromURL(rawURL), URL: rawURL}
}

// ParseJobs reads one job URL per line. Blank lines and lines starting with #
// are ignored.
func ParseJobs(r io.Reader) ([]Job, error) {
	var jobs []Job
	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if u, err := url.Parse(text); err != nil || u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("line %d: invalid job URL %q", line, text)
		}
		jobs = append(jobs, NewJob(text))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read jobs: %w", err)
	}
	return jobs, nil
}

// LoadJobs reads a jobs file
func LoadJobs(path string) ([]Job, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open jobs file: %w", err)
	}
	defer f.Close()
	return ParseJobs(f)
}

// RunBatch runs jobs one after another on the engine's page. A job's outcome
// never stops the batch; a cancelled context does.
func (e *Engine) RunBatch(ctx context.Context, jobs []Job) []types.JobResult {
	results := make([]types.JobResult, 0, len(jobs))
	for i, job := range jobs {
		if ctx.Err() != nil {
			e.logger.Warn("batch interrupted", zap.Int("remaining", len(jobs)-i), zap.Error(ctx.Err()))
			break
		}
		results = append(results, e.Run(ctx, job))
	}
	return results
}

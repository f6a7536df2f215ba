package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/layoutgen/internal/extract"
	"github.com/ziadkadry99/layoutgen/internal/history"
	"github.com/ziadkadry99/layoutgen/internal/orchestrator"
)

const defaultListLimit = 20

// handleGenerateLayout submits a job and optionally waits for its outcome.
func (s *Server) handleGenerateLayout(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	theme, err := request.RequireString("theme")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: theme"), nil
	}
	contentType, err := request.RequireString("content_type")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: content_type"), nil
	}

	job, err := s.jobs.Submit(ctx, orchestrator.Request{
		Theme:       theme,
		ContentType: contentType,
		Style:       request.GetString("style", ""),
		WebSearch:   request.GetBool("web_search", false),
		Language:    request.GetString("language", ""),
	})
	if err != nil {
		var vErr *orchestrator.ValidationError
		if errors.As(err, &vErr) {
			return mcp.NewToolResultError(vErr.Error()), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("submitting job: %v", err)), nil
	}

	if !request.GetBool("wait", false) {
		return mcp.NewToolResultText(fmt.Sprintf(
			"Job %d submitted and pending. Use get_job with id %d to fetch the result.",
			job.ID, job.ID,
		)), nil
	}

	done, err := s.jobs.Await(ctx, job.ID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("waiting for job %d: %v", job.ID, err)), nil
	}
	return mcp.NewToolResultText(formatJob(done, true)), nil
}

// handleListJobs lists jobs newest first.
func (s *Server) handleListJobs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status := history.Status(request.GetString("status", ""))
	switch status {
	case "", history.StatusPending, history.StatusCompleted, history.StatusFailed:
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown status %q", status)), nil
	}

	limit := request.GetInt("limit", defaultListLimit)
	if limit <= 0 {
		limit = defaultListLimit
	}

	var jobs []history.Job
	for _, j := range s.store.All() {
		if status != "" && j.Status() != status {
			continue
		}
		jobs = append(jobs, j)
		if len(jobs) == limit {
			break
		}
	}

	if len(jobs) == 0 {
		return mcp.NewToolResultText("No jobs found. Use generate_layout to create one."), nil
	}
	return mcp.NewToolResultText(formatJobList(jobs)), nil
}

// handleGetJob returns one job, with its document unless include_html is false.
func (s *Server) handleGetJob(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := int64(request.GetInt("id", 0))
	if id == 0 {
		return mcp.NewToolResultError("missing required parameter: id"), nil
	}

	job, ok := s.store.Get(id)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("job %d not found", id)), nil
	}
	return mcp.NewToolResultText(formatJob(job, request.GetBool("include_html", true))), nil
}

// formatJob renders a job for agent consumption.
func formatJob(job history.Job, includeHTML bool) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Job %d\n", job.ID))
	sb.WriteString(fmt.Sprintf("Status: %s\n", job.Status()))
	sb.WriteString(fmt.Sprintf("Theme: %s\n", job.Theme))

	switch o := job.Outcome.(type) {
	case history.Completed:
		sb.WriteString(fmt.Sprintf("Caption: %s\n", o.Text))
		sb.WriteString(fmt.Sprintf("File name: %s\n", extract.FileName(o.HTML)))
		if includeHTML {
			sb.WriteString("\n")
			sb.WriteString(o.HTML)
			sb.WriteString("\n")
		}
	case history.Failed:
		sb.WriteString(fmt.Sprintf("Error: %s\n", o.Message))
	}
	return sb.String()
}

func formatJobList(jobs []history.Job) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d job(s):\n", len(jobs)))
	for _, j := range jobs {
		sb.WriteString(fmt.Sprintf("\n- %d [%s] %s", j.ID, j.Status(), j.Theme))
		if f, ok := j.Failed(); ok {
			sb.WriteString(fmt.Sprintf(" (error: %s)", f.Message))
		}
	}
	sb.WriteString("\n")
	return sb.String()
}

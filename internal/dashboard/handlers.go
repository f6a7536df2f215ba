package dashboard

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/layoutgen/internal/extract"
	"github.com/ziadkadry99/layoutgen/internal/history"
	"github.com/ziadkadry99/layoutgen/internal/i18n"
	"github.com/ziadkadry99/layoutgen/internal/orchestrator"
	"github.com/ziadkadry99/layoutgen/internal/preview"
)

// submitRequest is the JSON body for POST /api/jobs.
type submitRequest struct {
	Theme       string `json:"theme"`
	ContentType string `json:"content_type"`
	Style       string `json:"style"`
	WebSearch   bool   `json:"web_search"`
	Language    string `json:"language"`
}

type languageBody struct {
	Language string `json:"language"`
}

func (d *Dashboard) handleListJobs(w http.ResponseWriter, r *http.Request) {
	status := history.Status(r.URL.Query().Get("status"))
	switch status {
	case "", history.StatusPending, history.StatusCompleted, history.StatusFailed:
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown status %q", status))
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	jobs := []history.Job{}
	for _, j := range d.store.All() {
		if status != "" && j.Status() != status {
			continue
		}
		jobs = append(jobs, j)
		if limit > 0 && len(jobs) == limit {
			break
		}
	}
	writeJSON(w, http.StatusOK, jobs)
}

func (d *Dashboard) handleSubmitJob(w http.ResponseWriter, r *http.Request) {
	var body submitRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	job, err := d.jobs.Submit(r.Context(), orchestrator.Request{
		Theme:       body.Theme,
		ContentType: body.ContentType,
		Style:       body.Style,
		WebSearch:   body.WebSearch,
		Language:    body.Language,
	})
	var vErr *orchestrator.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeError(w, http.StatusBadRequest, vErr.Error())
		return
	case err != nil:
		d.logger.Error("submitting job", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusAccepted, job)
}

func (d *Dashboard) handleGetJob(w http.ResponseWriter, r *http.Request) {
	job, ok := d.lookupJob(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (d *Dashboard) handleDocument(w http.ResponseWriter, r *http.Request) {
	job, ok := d.lookupJob(w, r)
	if !ok {
		return
	}
	c, completed := job.Completed()
	if !completed {
		writeError(w, http.StatusConflict, fmt.Sprintf("job %d is %s", job.ID, job.Status()))
		return
	}

	disposition := mime.FormatMediaType("attachment", map[string]string{
		"filename": extract.FileName(c.HTML),
	})
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", disposition)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(c.HTML))
}

func (d *Dashboard) handlePreview(w http.ResponseWriter, r *http.Request) {
	job, ok := d.lookupJob(w, r)
	if !ok {
		return
	}
	c, completed := job.Completed()
	if !completed {
		writeError(w, http.StatusConflict, fmt.Sprintf("job %d is %s", job.ID, job.Status()))
		return
	}

	lang := i18n.Default
	if d.prefs != nil {
		lang, _ = d.prefs.Language(r.Context())
	}

	var buf bytes.Buffer
	err := preview.Render(&buf, preview.Page{
		Title:       job.Theme,
		Caption:     c.Text,
		Document:    c.HTML,
		Zoom:        preview.ParseZoom(r.URL.Query().Get("zoom")),
		Language:    lang,
		DownloadURL: fmt.Sprintf("/api/jobs/%d/document", job.ID),
	})
	if err != nil {
		d.logger.Error("rendering preview", "job_id", job.ID, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (d *Dashboard) handleGetLanguage(w http.ResponseWriter, r *http.Request) {
	if d.prefs == nil {
		writeJSON(w, http.StatusOK, languageBody{Language: string(i18n.Default)})
		return
	}
	lang, err := d.prefs.Language(r.Context())
	if err != nil {
		d.logger.Warn("reading language preference", "error", err)
	}
	writeJSON(w, http.StatusOK, languageBody{Language: string(lang)})
}

func (d *Dashboard) handleSetLanguage(w http.ResponseWriter, r *http.Request) {
	var body languageBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	lang, err := i18n.Parse(body.Language)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if d.prefs == nil {
		writeError(w, http.StatusInternalServerError, "language preference store not configured")
		return
	}
	if err := d.prefs.SetLanguage(r.Context(), lang); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, languageBody{Language: string(lang)})
}

func (d *Dashboard) handleTemplates(w http.ResponseWriter, r *http.Request) {
	names := []string{}
	if d.templates != nil {
		available, err := d.templates.Available()
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		names = append(names, available...)
	}
	writeJSON(w, http.StatusOK, map[string][]string{"templates": names})
}

// lookupJob resolves the {id} URL parameter, writing 400 or 404 on failure.
func (d *Dashboard) lookupJob(w http.ResponseWriter, r *http.Request) (history.Job, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "job id must be an integer")
		return history.Job{}, false
	}
	job, ok := d.store.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("job %d not found", id))
		return history.Job{}, false
	}
	return job, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

package web

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/csvadmin/csvadmin/internal/charset"
	"github.com/csvadmin/csvadmin/internal/core"
	"github.com/csvadmin/csvadmin/internal/csvio"
	"github.com/csvadmin/csvadmin/internal/logging"
)

// handleImport runs one synchronous validated import: resolve the
// payload's encoding, map rows, validate and persist each one, and
// respond with the Import Report. Per-row failures land in the report;
// only encoding failures and malformed requests abort the call.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	schema, ok := s.entityFromRequest(w, r)
	if !ok {
		return
	}

	maxSize := s.cfg.Import.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		s.respondError(w, r, fmt.Errorf("file too large or invalid form: %w", err), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, r, fmt.Errorf("no file provided"), http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.respondError(w, r, fmt.Errorf("read upload: %w", err), http.StatusInternalServerError)
		return
	}

	candidates := schema.Encodings
	if raw := r.FormValue("encodings"); raw != "" {
		candidates = splitList(raw)
	}

	encName, text, err := charset.Resolve(data, candidates)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	rows, err := csvio.NewRowReader(text)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	if err := core.ValidateHeaders(rows.Header(), schema); err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	logger := logging.WithFields(r.Context(),
		"entity", schema.Entity,
		"file", header.Filename,
		"encoding", encName,
	)
	logger.Info("import started")

	report, err := s.importer.Run(r.Context(), rows, schema)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	logger.Info("import finished",
		"total", report.Total(),
		"saved", report.SavedCount(),
		"rejected", report.RejectedCount(),
		"duration", report.Duration,
	)

	writeJSON(w, reportResponse(report))
}

// reportResponse flattens the derived counts into the JSON payload the
// admin UI renders.
func reportResponse(report core.Report) map[string]any {
	return map[string]any{
		"entity":        report.Entity,
		"total":         report.Total(),
		"saved":         report.SavedCount(),
		"rejected":      report.RejectedCount(),
		"saved_rows":    report.Saved,
		"rejected_rows": report.Rejected,
		"truncated":     report.Truncated(),
		"duration_ms":   report.Duration.Milliseconds(),
	}
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

package web

import (
	"encoding/csv"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/csvadmin/csvadmin/internal/core"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// entityInfo is the JSON shape for one registered entity type.
type entityInfo struct {
	Entity    string   `json:"entity"`
	Label     string   `json:"label"`
	Fields    []string `json:"fields"`
	UniqueKey []string `json:"unique_key,omitempty"`
}

// handleListEntities returns the registered entity types with their
// declared field order.
func (s *Server) handleListEntities(w http.ResponseWriter, r *http.Request) {
	schemas := s.registry.All()
	infos := make([]entityInfo, len(schemas))
	for i, schema := range schemas {
		infos[i] = entityInfo{
			Entity:    schema.Entity,
			Label:     schema.Label,
			Fields:    schema.FieldNames(),
			UniqueKey: schema.UniqueKey,
		}
	}
	writeJSON(w, infos)
}

// handleDownloadTemplate returns a header-only CSV for an entity.
func (s *Server) handleDownloadTemplate(w http.ResponseWriter, r *http.Request) {
	schema, ok := s.entityFromRequest(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s_template.csv"`, schema.Entity))

	csvWriter := csv.NewWriter(w)
	csvWriter.Write(schema.FieldNames())
	csvWriter.Flush()
}

// entityFromRequest resolves the {entity} URL parameter to a schema,
// writing the error response itself when the lookup fails.
func (s *Server) entityFromRequest(w http.ResponseWriter, r *http.Request) (*core.Schema, bool) {
	key := chi.URLParam(r, "entity")
	if key == "" {
		s.respondError(w, r, fmt.Errorf("unknown entity: missing key"), http.StatusBadRequest)
		return nil, false
	}
	schema, ok := s.registry.Get(key)
	if !ok {
		s.respondError(w, r, fmt.Errorf("unknown entity: %s", key), http.StatusNotFound)
		return nil, false
	}
	return schema, true
}

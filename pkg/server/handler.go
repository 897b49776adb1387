package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/vango-dev/sitekit/internal/errors"
	"github.com/vango-dev/sitekit/pkg/features/validate"
	"github.com/vango-dev/sitekit/pkg/page"
)

// FieldJSON is one field state in a response.
type FieldJSON struct {
	Form    string `json:"form,omitempty"`
	Name    string `json:"name"`
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
	Rule    string `json:"rule,omitempty"`
}

// ValidateResponse is the body of POST /forms/{index}/validate.
type ValidateResponse struct {
	Valid  bool        `json:"valid"`
	Fields []FieldJSON `json:"fields"`
}

type errorResponse struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"error"`
}

func fieldJSON(r validate.FieldResult) FieldJSON {
	f := FieldJSON{
		Form:    r.Form,
		Name:    r.Field,
		Valid:   r.State.Valid,
		Message: r.State.Message,
	}
	if !r.State.Valid {
		f.Rule = r.State.Kind.String()
	}
	return f
}

func pageFields(p *page.Page) []FieldJSON {
	fields := []FieldJSON{}
	for _, b := range p.Forms {
		for _, r := range b.Fields() {
			fields = append(fields, fieldJSON(r))
		}
	}
	return fields
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	p, err := s.newPage(nil)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(p.Doc.HTML()))
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, errors.New("E402").WithDetailf("invalid form index %q", chi.URLParam(r, "index")))
		return
	}
	if err := r.ParseForm(); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	p, err := s.newPage(s.observers(r.Context()))
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	binding, err := p.Form(index)
	if err != nil {
		s.writeError(w, http.StatusNotFound, err)
		return
	}

	page.Fill(binding.Form(), func(name string) (string, bool) {
		v, ok := r.PostForm[name]
		if !ok || len(v) == 0 {
			return "", false
		}
		return v[0], true
	})
	valid := binding.Validate(nil)

	resp := ValidateResponse{Valid: valid, Fields: []FieldJSON{}}
	for _, fr := range binding.Fields() {
		resp.Fields = append(resp.Fields, fieldJSON(fr))
	}
	s.logger.Debug("form validated", "form", index, "valid", valid)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.sessions.Count(),
	})
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, errorResponse{Code: errors.Code(err), Message: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

package serverhttp

import (
	"encoding/json"
	"errors"
	"net/http"

	"presyohan/pricelist/internal/container"
	"presyohan/pricelist/internal/importerror"
	"presyohan/pricelist/internal/logging"
	"presyohan/pricelist/internal/models"
	"presyohan/pricelist/internal/session"
)

type handlers struct {
	container *container.Container
	logger    logging.Logger
}

// importRequest is the shared body for all three import endpoints.
type importRequest struct {
	StoreID string `json:"store_id"`
	Text    string `json:"text"`
}

type parseResponse struct {
	Categories []models.ParsedCategory `json:"categories"`
	ItemCount  int                     `json:"item_count"`
	ErrorCount int                     `json:"error_count"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// parse runs normalize/tokenize/classify and returns the classified
// preview.
func (h *handlers) parse(w http.ResponseWriter, r *http.Request) {
	req, sess, ok := h.begin(w, r)
	if !ok {
		return
	}
	categories, err := sess.Parse(r.Context(), req.Text)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, buildParseResponse(categories))
}

// dryRun parses and computes the create/update preview without writing
// anything.
func (h *handlers) dryRun(w http.ResponseWriter, r *http.Request) {
	req, sess, ok := h.begin(w, r)
	if !ok {
		return
	}
	if _, err := sess.Parse(r.Context(), req.Text); err != nil {
		h.writeError(w, err)
		return
	}
	preview, err := sess.DryRun(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, preview)
}

// apply runs the full pipeline and applies the diff.
func (h *handlers) apply(w http.ResponseWriter, r *http.Request) {
	req, sess, ok := h.begin(w, r)
	if !ok {
		return
	}
	if _, err := sess.Parse(r.Context(), req.Text); err != nil {
		h.writeError(w, err)
		return
	}
	if _, err := sess.DryRun(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}
	result, err := sess.Apply(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// begin decodes the request body and opens a fresh session for it.
func (h *handlers) begin(w http.ResponseWriter, r *http.Request) (importRequest, *session.Session, bool) {
	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return req, nil, false
	}
	return req, h.container.NewSession(req.StoreID), true
}

func (h *handlers) writeError(w http.ResponseWriter, err error) {
	var missing *importerror.MissingStoreError
	var snapshot *importerror.SnapshotError
	var state *importerror.SessionStateError

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &missing):
		status = http.StatusBadRequest
	case errors.As(err, &snapshot):
		status = http.StatusBadGateway
	case errors.As(err, &state):
		status = http.StatusConflict
	}

	h.logger.WithError(err).Warn("Import request failed")
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func buildParseResponse(categories []models.ParsedCategory) parseResponse {
	resp := parseResponse{Categories: categories}
	for _, cat := range categories {
		for _, item := range cat.Items {
			resp.ItemCount++
			if item.Status.IsError() {
				resp.ErrorCount++
			}
		}
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/GilTarablus/TidyImport/internal/engine"
	"github.com/GilTarablus/TidyImport/internal/fileio"
	"github.com/GilTarablus/TidyImport/internal/logging"
	"github.com/GilTarablus/TidyImport/internal/session"
)

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// handleCreateSession accepts a multipart upload, parses it, and opens an
// import session seeded with mapping suggestions and structural detections.
//
// Form fields:
//   - file: the CSV or XLSX upload (required)
//   - customFields: comma-separated custom field names (optional)
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Import.MaxFileSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, r, http.StatusRequestEntityTooLarge, "file exceeds the maximum upload size")
			return
		}
		writeError(w, r, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	table, err := fileio.Parse(header.Filename, file, s.cfg.Import.MaxRows)
	if err != nil {
		switch {
		case errors.Is(err, fileio.ErrUnsupportedFormat):
			writeError(w, r, http.StatusUnsupportedMediaType, err.Error())
		case errors.Is(err, fileio.ErrTooManyRows):
			writeError(w, r, http.StatusRequestEntityTooLarge, err.Error())
		default:
			writeError(w, r, http.StatusBadRequest, fmt.Sprintf("parse %s: %v", header.Filename, err))
		}
		return
	}

	var customFields []string
	for _, f := range strings.Split(r.FormValue("customFields"), ",") {
		if f = strings.TrimSpace(f); f != "" {
			customFields = append(customFields, f)
		}
	}

	sess := session.New(header.Filename, table.Headers, table.Rows, customFields)
	s.store.Put(sess)

	logging.FromContext(r.Context()).Info("session created",
		"session_id", sess.ID,
		"file", header.Filename,
		"rows", len(table.Rows),
		"columns", len(table.Headers),
	)
	writeJSON(w, r, http.StatusCreated, sess.Snapshot())
}

// getSession resolves the sessionID URL parameter. On failure it writes the
// 404 itself and returns false.
func (s *Server) getSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id := chi.URLParam(r, "sessionID")
	sess, err := s.store.Get(id)
	if err != nil {
		writeError(w, r, http.StatusNotFound, "session not found")
		return nil, false
	}
	return sess, true
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.getSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, sess.Snapshot())
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	s.store.Delete(id)
	w.WriteHeader(http.StatusNoContent)
}

// decodeJSON decodes the request body into v. An empty body is not an
// error; endpoints with all-optional parameters accept bare POSTs.
func decodeJSON(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == io.EOF {
		return nil
	}
	return err
}

// writeSessionError maps session-layer errors to HTTP statuses.
func writeSessionError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, session.ErrNotProcessed), errors.Is(err, session.ErrNoMapping):
		writeError(w, r, http.StatusConflict, err.Error())
	default:
		writeError(w, r, http.StatusBadRequest, err.Error())
	}
}

func (s *Server) handleSetMapping(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.getSession(w, r)
	if !ok {
		return
	}

	var req struct {
		Mapping []engine.HeaderMapping `json:"mapping"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.Mapping) == 0 {
		writeError(w, r, http.StatusBadRequest, "mapping must not be empty")
		return
	}

	sess.SetMapping(req.Mapping)
	writeJSON(w, r, http.StatusOK, sess.Snapshot())
}

func (s *Server) handleSplitName(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.getSession(w, r)
	if !ok {
		return
	}

	var req struct {
		Column string `json:"column"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := sess.SplitNameColumn(req.Column); err != nil {
		writeSessionError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, sess.Snapshot())
}

func (s *Server) handleConsolidateAddress(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.getSession(w, r)
	if !ok {
		return
	}

	var req struct {
		Separator string `json:"separator"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := sess.ConsolidateAddress(req.Separator); err != nil {
		writeSessionError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, sess.Snapshot())
}

func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.getSession(w, r)
	if !ok {
		return
	}

	if err := sess.Process(); err != nil {
		writeSessionError(w, r, err)
		return
	}

	snap := sess.Snapshot()
	logging.FromContext(r.Context()).Info("session processed",
		"session_id", snap.ID,
		"rows", snap.Stats.TotalRows,
		"cells_modified", snap.Stats.TotalCellsModified,
	)
	writeJSON(w, r, http.StatusOK, snap)
}

// issueReport is the diagnostics view over a processed session.
type issueReport struct {
	Stats       engine.CleaningStats    `json:"stats"`
	Validations []engine.RowValidation  `json:"validations"`
	Duplicates  []engine.DuplicateGroup `json:"duplicates"`
}

func (s *Server) handleIssues(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.getSession(w, r)
	if !ok {
		return
	}

	snap := sess.Snapshot()
	if !snap.Processed {
		writeSessionError(w, r, session.ErrNotProcessed)
		return
	}
	writeJSON(w, r, http.StatusOK, issueReport{
		Stats:       snap.Stats,
		Validations: snap.Validations,
		Duplicates:  snap.Duplicates,
	})
}

func (s *Server) handleRemoveRows(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.getSession(w, r)
	if !ok {
		return
	}

	var req struct {
		Indices []int `json:"indices"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.Indices) == 0 {
		writeError(w, r, http.StatusBadRequest, "indices must not be empty")
		return
	}

	if err := sess.RemoveRows(req.Indices); err != nil {
		writeSessionError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, sess.Snapshot())
}

func (s *Server) handleUpdateCell(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.getSession(w, r)
	if !ok {
		return
	}

	var req struct {
		RowIndex int    `json:"rowIndex"`
		Column   string `json:"column"`
		Value    string `json:"value"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := sess.UpdateCell(req.RowIndex, req.Column, req.Value); err != nil {
		writeSessionError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, sess.Snapshot())
}

func (s *Server) handleFillField(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.getSession(w, r)
	if !ok {
		return
	}

	var req struct {
		Field   string `json:"field"`
		Value   string `json:"value"`
		Indices []int  `json:"indices"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid JSON body")
		return
	}

	field, ok := parseStandardField(req.Field)
	if !ok {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("unknown field %q", req.Field))
		return
	}

	if err := sess.FillField(field, req.Value, req.Indices); err != nil {
		writeSessionError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, sess.Snapshot())
}

// parseStandardField resolves a field name to its StandardField,
// case-insensitively.
func parseStandardField(name string) (engine.StandardField, bool) {
	for _, f := range engine.StandardFields {
		if strings.EqualFold(f.Header(), name) {
			return f, true
		}
	}
	return 0, false
}

func (s *Server) handleBirthdayFormat(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.getSession(w, r)
	if !ok {
		return
	}

	var req struct {
		Format string `json:"format"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid JSON body")
		return
	}

	format := engine.BirthdayFormat(req.Format)
	switch format {
	case engine.BirthdayFormatMDY, engine.BirthdayFormatDMY, engine.BirthdayFormatYMD:
	default:
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("unknown birthday format %q", req.Format))
		return
	}

	if err := sess.ReformatBirthdays(format); err != nil {
		writeSessionError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, sess.Snapshot())
}

// handleExport streams the cleaned working set as CSV (default) or XLSX,
// selected by the format query parameter.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.getSession(w, r)
	if !ok {
		return
	}

	headers, rows, err := sess.Export()
	if err != nil {
		writeSessionError(w, r, err)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}

	base := strings.TrimSuffix(sess.FileName, filepath.Ext(sess.FileName))
	if base == "" {
		base = "export"
	}

	logger := logging.FromContext(r.Context())
	switch format {
	case "csv":
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", base+"_cleaned.csv"))
		err = fileio.WriteCSV(w, headers, rows)
	case "xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", base+"_cleaned.xlsx"))
		err = fileio.WriteXLSX(w, headers, rows)
	default:
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("unknown export format %q", format))
		return
	}
	if err != nil {
		// Headers are sent; the broken download is all the client gets.
		logger.Error("export write failed", "session_id", sess.ID, "format", format, "error", err)
		return
	}

	logger.Info("session exported", "session_id", sess.ID, "format", format, "rows", len(rows))
}

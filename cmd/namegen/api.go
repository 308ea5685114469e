package main

import (
	"bytes"
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strconv"

	"github.com/CTAG07/namegen/pkg/store"
	"github.com/CTAG07/namegen/pkg/templating"
	"github.com/CTAG07/namegen/pkg/textgen"
)

// defaultAPIAttempts bounds generation for requests when the configuration
// leaves generators unbounded, so an impossible filter cannot hold a request
// open forever.
const defaultAPIAttempts = 10_000

// API holds the dependencies for the HTTP handlers.
type API struct {
	st     *store.Store
	tm     *templating.TemplateManager
	config *Config
	logger *slog.Logger
}

// NewAPI creates a new instance of the API.
func NewAPI(st *store.Store, tm *templating.TemplateManager, config *Config, logger *slog.Logger) *API {
	return &API{
		st:     st,
		tm:     tm,
		config: config,
		logger: logger,
	}
}

// RegisterRoutes sets up the routing for all /api endpoints.
func (a *API) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/health", a.handleHealth)
	mux.HandleFunc("GET /api/models", a.handleListModels)
	mux.HandleFunc("POST /api/models/import", a.handleImport)
	mux.HandleFunc("DELETE /api/models/{name}", a.handleRemoveModel)
	mux.HandleFunc("POST /api/models/{name}/train", a.handleTrain)
	mux.HandleFunc("GET /api/models/{name}/generate", a.handleGenerate)
	mux.HandleFunc("GET /api/models/{name}/export", a.handleExport)
	mux.HandleFunc("GET /api/templates", a.handleListTemplates)
	mux.HandleFunc("GET /api/templates/{name}/render", a.handleRender)
}

// VersionInfo defines the structure for build/version information.
type VersionInfo struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
}

// GenerateResponse is returned by the generate and render endpoints.
type GenerateResponse struct {
	Results []string `json:"results"`
}

func (a *API) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondWithJSON(w, http.StatusOK, VersionInfo{
		Status:    "ok",
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
	})
}

func (a *API) handleListModels(w http.ResponseWriter, r *http.Request) {
	infos, err := a.st.List(r.Context())
	if err != nil {
		a.logger.Error("Failed to list models", "error", err)
		respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve models: %v", err))
		return
	}
	if infos == nil {
		infos = []store.Info{}
	}
	respondWithJSON(w, http.StatusOK, infos)
}

func (a *API) handleRemoveModel(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if err := a.st.Remove(r.Context(), name); err != nil {
		a.fail(w, "Failed to remove model", name, err)
		return
	}
	a.refresh()
	w.WriteHeader(http.StatusNoContent)
}

// handleTrain trains a model on the request body, one word per line. Engine
// settings come from the query string.
func (a *API) handleTrain(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	opts, err := parseTrainOptions(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	body := http.MaxBytesReader(w, r.Body, a.config.Server.MaxBodyBytes)
	info, err := trainModel(r.Context(), a.st, name, body, opts)
	if err != nil {
		a.fail(w, "Failed to train model", name, err)
		return
	}
	a.refresh()
	respondWithJSON(w, http.StatusCreated, info)
}

func (a *API) handleGenerate(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	opts, err := a.parseGenerateOptions(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	names, err := generateNames(r.Context(), a.st, name, opts)
	if err != nil {
		a.fail(w, "Failed to generate names", name, err)
		return
	}
	respondWithJSON(w, http.StatusOK, GenerateResponse{Results: names})
}

// handleExport writes the model as a JSON attachment. The model is encoded
// before anything is sent, so a failure still yields a proper error response.
func (a *API) handleExport(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	var buf bytes.Buffer
	if err := a.st.Export(r.Context(), name, &buf); err != nil {
		a.fail(w, "Failed to export model", name, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".json"))
	_, _ = buf.WriteTo(w)
}

func (a *API) handleImport(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, a.config.Server.MaxBodyBytes)
	info, err := a.st.Import(r.Context(), body)
	if err != nil {
		a.logger.Error("Failed to import model", "error", err)
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("Import failed: %v", err))
		return
	}
	a.refresh()
	respondWithJSON(w, http.StatusCreated, info)
}

func (a *API) handleListTemplates(w http.ResponseWriter, _ *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string][]string{
		"templates":  a.tm.GetTemplateNames(),
		"generators": a.tm.GetGeneratorNames(),
	})
}

func (a *API) handleRender(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if !slices.Contains(a.tm.GetTemplateNames(), name) {
		respondWithError(w, http.StatusNotFound, "Template not found")
		return
	}
	count, err := a.parseCount(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	results := make([]string, 0, count)
	var buf bytes.Buffer
	for i := 0; i < count; i++ {
		buf.Reset()
		if err = a.tm.Execute(&buf, name, nil); err != nil {
			a.fail(w, "Failed to render template", name, err)
			return
		}
		results = append(results, buf.String())
	}
	respondWithJSON(w, http.StatusOK, GenerateResponse{Results: results})
}

// refresh reloads templates and stored models after a change to the store.
func (a *API) refresh() {
	if err := a.tm.Refresh(); err != nil {
		a.logger.Error("Failed to refresh templates", "error", err)
	}
}

// fail logs err and responds with the status that matches it.
func (a *API) fail(w http.ResponseWriter, msg, name string, err error) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		a.logger.Error(msg, "name", name, "error", err)
	} else {
		a.logger.Debug(msg, "name", name, "error", err)
	}
	respondWithError(w, code, fmt.Sprintf("%s: %v", msg, err))
}

func statusFor(err error) int {
	var maxBytes *http.MaxBytesError
	switch {
	case errors.Is(err, store.ErrModelNotFound):
		return http.StatusNotFound
	case errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, textgen.ErrAttemptsExhausted):
		return http.StatusUnprocessableEntity
	case errors.Is(err, textgen.ErrUnreachableStart),
		errors.Is(err, errInvalidArgument),
		errors.Is(err, errUnknownEngine),
		errors.Is(err, errUnknownVowels),
		errors.Is(err, errEngineMismatch):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func parseTrainOptions(r *http.Request) (TrainOptions, error) {
	q := r.URL.Query()
	opts := TrainOptions{
		Engine: q.Get("engine"),
		Vowels: q.Get("vowels"),
	}
	var err error
	if opts.Order, err = intParam(q.Get("order"), 0); err != nil {
		return opts, err
	}
	if v := q.Get("prior"); v != "" {
		prior, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, fmt.Errorf("invalid prior %q", v)
		}
		opts.Prior = &prior
	}
	if opts.CasePreserving, err = boolParam(q.Get("case_preserving")); err != nil {
		return opts, err
	}
	if opts.Weighted, err = boolParam(q.Get("weighted")); err != nil {
		return opts, err
	}
	if opts.Blend, err = boolParam(q.Get("blend")); err != nil {
		return opts, err
	}
	return opts, nil
}

func (a *API) parseCount(r *http.Request) (int, error) {
	count, err := intParam(r.URL.Query().Get("n"), 1)
	if err != nil {
		return 0, err
	}
	if count < 1 || count > a.config.Server.MaxCount {
		return 0, fmt.Errorf("n must be between 1 and %d", a.config.Server.MaxCount)
	}
	return count, nil
}

func (a *API) parseGenerateOptions(r *http.Request) (GenerateOptions, error) {
	q := r.URL.Query()
	opts := GenerateOptions{
		Second:      q.Get("second"),
		Separator:   cmp.Or(q.Get("separator"), a.config.Templates.Separator),
		MaxAttempts: cmp.Or(a.config.Templates.MaxAttempts, defaultAPIAttempts),
		Filter: textgen.Filter{
			StartsWith: q.Get("start"),
			EndsWith:   q.Get("end"),
		},
	}

	var err error
	if opts.Count, err = a.parseCount(r); err != nil {
		return opts, err
	}
	if opts.Filter.MinLength, err = intParam(q.Get("min"), 0); err != nil {
		return opts, err
	}
	if opts.Filter.MaxLength, err = intParam(q.Get("max"), 0); err != nil {
		return opts, err
	}
	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return opts, fmt.Errorf("invalid seed %q", v)
		}
		opts.Seed = &seed
	}
	return opts, nil
}

func intParam(v string, def int) (int, error) {
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", v)
	}
	return n, nil
}

func boolParam(v string) (bool, error) {
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid boolean %q", v)
	}
	return b, nil
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			slog.Error("Failed to encode JSON response", "error", err)
		}
	}
}

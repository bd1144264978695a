package httpapi

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/transync"
)

type translationResponse struct {
	Locale string `json:"locale"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

type batchRequest struct {
	Keys []string `json:"keys"`
}

type batchResponse struct {
	Locale       string            `json:"locale"`
	Translations map[string]string `json:"translations"`
}

type updateRequest struct {
	Value string `json:"value"`
}

type modeRequest struct {
	Mode string `json:"mode"`
}

type modeResponse struct {
	Mode transync.Mode `json:"mode"`
}

type localeResponse struct {
	Locale    string   `json:"locale"`
	Supported []string `json:"supported"`
}

// locale resolves the {locale} URL parameter or writes a 404.
func (h *handler) locale(w http.ResponseWriter, r *http.Request) (string, bool) {
	raw := chi.URLParam(r, "locale")
	locale, ok := h.svc.Supported(raw)
	if !ok {
		writeError(w, r, http.StatusNotFound, fmt.Errorf("%w: %q", transync.ErrUnsupportedLocale, raw))
		return "", false
	}
	return locale, true
}

func (h *handler) translate(w http.ResponseWriter, r *http.Request) {
	locale, ok := h.locale(w, r)
	if !ok {
		return
	}
	key := chi.URLParam(r, "key")

	q := r.URL.Query()
	fallback := q.Get("fallback")
	q.Del("fallback")

	var placeholders transync.M
	if len(q) > 0 {
		placeholders = make(transync.M, len(q))
		for name := range q {
			placeholders[name] = q.Get(name)
		}
	}

	writeJSON(w, http.StatusOK, translationResponse{
		Locale: locale,
		Key:    key,
		Value:  h.svc.T(r.Context(), key, locale, fallback, placeholders),
	})
}

func (h *handler) batch(w http.ResponseWriter, r *http.Request) {
	locale, ok := h.locale(w, r)
	if !ok {
		return
	}

	var req batchRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusOK, batchResponse{
		Locale:       locale,
		Translations: h.svc.TBatch(r.Context(), req.Keys, locale),
	})
}

func (h *handler) updateCached(w http.ResponseWriter, r *http.Request) {
	locale, ok := h.locale(w, r)
	if !ok {
		return
	}
	key := chi.URLParam(r, "key")

	var req updateRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	if !h.svc.UpdateCached(key, locale, req.Value) {
		writeError(w, r, http.StatusConflict, ErrNotLoaded)
		return
	}
	writeJSON(w, http.StatusOK, translationResponse{Locale: locale, Key: key, Value: req.Value})
}

func (h *handler) refresh(w http.ResponseWriter, r *http.Request) {
	err := h.svc.Refresh(r.Context(), r.URL.Query()["locale"]...)
	if err != nil {
		h.log.WarnContext(r.Context(), "refresh failed", slog.Any("error", err))
	}

	switch {
	case errors.Is(err, transync.ErrUnsupportedLocale):
		writeError(w, r, http.StatusNotFound, err)
	case err != nil:
		writeError(w, r, http.StatusInternalServerError, err)
	default:
		writeJSON(w, http.StatusOK, h.svc.CacheInfo())
	}
}

func (h *handler) setMode(w http.ResponseWriter, r *http.Request) {
	var req modeRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	mode, err := transync.ParseMode(req.Mode)
	if err == nil {
		err = h.svc.SetMode(r.Context(), mode)
	}
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, modeResponse{Mode: mode})
}

func (h *handler) mode(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, modeResponse{Mode: h.svc.Mode()})
}

func (h *handler) cacheInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.CacheInfo())
}

func (h *handler) negotiate(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, localeResponse{
		Locale:    h.match(r.Header.Get("Accept-Language")),
		Supported: h.svc.Locales(),
	})
}

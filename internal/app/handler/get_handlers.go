package handler

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/atinyakov/go-webpages/internal/app/service"
)

type GetHandler struct {
	service service.WebpageServiceIface
	logger  *zap.Logger
}

func NewGet(s service.WebpageServiceIface, l *zap.Logger) *GetHandler {
	return &GetHandler{
		service: s,
		logger:  l,
	}
}

// List writes every webpage.
func (h *GetHandler) List(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	list, err := h.service.List(ctx)
	if err != nil {
		writeFailure(res, h.logger, err)
		return
	}
	writeJSON(res, http.StatusOK, list)
}

// ByID writes the webpage named by the id path parameter.
func (h *GetHandler) ByID(res http.ResponseWriter, req *http.Request) {
	id, err := idParam(req)
	if err != nil {
		writeFailure(res, h.logger, err)
		return
	}

	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	w, err := h.service.Get(ctx, id)
	if err != nil {
		writeFailure(res, h.logger, err)
		return
	}
	writeJSON(res, http.StatusOK, w)
}

// Inspect fetches the page given by the url query parameter.
func (h *GetHandler) Inspect(res http.ResponseWriter, req *http.Request) {
	raw := req.URL.Query().Get("url")
	h.logger.Info("inspecting page", zap.String("url", raw))

	info, err := h.service.Inspect(req.Context(), raw)
	if err != nil {
		writeFailure(res, h.logger, err)
		return
	}
	writeJSON(res, http.StatusOK, info)
}

func (h *GetHandler) PingDB(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()
	if err := h.service.PingContext(ctx); err != nil {
		http.Error(res, err.Error(), http.StatusInternalServerError)
		return
	}

	res.WriteHeader(http.StatusOK)
}

func (h *GetHandler) Stats(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	stats, err := h.service.Stats(ctx)
	if err != nil {
		writeFailure(res, h.logger, err)
		return
	}
	writeJSON(res, http.StatusOK, stats)
}

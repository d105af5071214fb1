package handler

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/atinyakov/go-webpages/internal/app/service"
	"github.com/atinyakov/go-webpages/internal/middleware"
	"github.com/atinyakov/go-webpages/internal/models"
)

// PostHandler creates and updates webpages.
type PostHandler struct {
	service service.WebpageServiceIface
	logger  *zap.Logger
}

func NewPost(s service.WebpageServiceIface, l *zap.Logger) *PostHandler {
	return &PostHandler{
		service: s,
		logger:  l,
	}
}

// Create stores a new webpage and answers 201 with the stored record.
func (h *PostHandler) Create(res http.ResponseWriter, req *http.Request) {
	var request models.WebpageRequest
	if err := decodeJSONBody(res, req, &request); err != nil {
		writeFailure(res, h.logger, err)
		return
	}

	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	w, err := h.service.Create(ctx, request.Webpage(0))
	if err != nil {
		writeFailure(res, h.logger, err)
		return
	}

	h.logger.Info("webpage created",
		zap.Int64("id", w.ID),
		zap.String("user", middleware.UserID(req.Context())),
	)
	res.Header().Set("Location", "/api/webpages/"+formatID(w.ID))
	writeJSON(res, http.StatusCreated, w)
}

// Update merges the body into the webpage named by the id path parameter.
func (h *PostHandler) Update(res http.ResponseWriter, req *http.Request) {
	id, err := idParam(req)
	if err != nil {
		writeFailure(res, h.logger, err)
		return
	}

	var request models.WebpageRequest
	if err := decodeJSONBody(res, req, &request); err != nil {
		writeFailure(res, h.logger, err)
		return
	}

	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	w, err := h.service.Update(ctx, id, request.Webpage(id))
	if err != nil {
		writeFailure(res, h.logger, err)
		return
	}
	writeJSON(res, http.StatusOK, w)
}

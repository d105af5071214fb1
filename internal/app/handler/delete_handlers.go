package handler

import (
	"context"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/atinyakov/go-webpages/internal/app/service"
)

type DeleteHandler struct {
	service service.WebpageServiceIface
	logger  *zap.Logger
}

func NewDelete(s service.WebpageServiceIface, l *zap.Logger) *DeleteHandler {
	return &DeleteHandler{
		service: s,
		logger:  l,
	}
}

// ByID deletes one webpage and answers 204.
func (h *DeleteHandler) ByID(res http.ResponseWriter, req *http.Request) {
	id, err := idParam(req)
	if err != nil {
		writeFailure(res, h.logger, err)
		return
	}

	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	if err := h.service.Delete(ctx, id); err != nil {
		writeFailure(res, h.logger, err)
		return
	}
	res.WriteHeader(http.StatusNoContent)
}

// DeleteBatch queues a JSON array of ids for deletion and answers 202.
func (h *DeleteHandler) DeleteBatch(res http.ResponseWriter, req *http.Request) {
	var ids []int64
	if err := decodeJSONBody(res, req, &ids); err != nil {
		writeFailure(res, h.logger, err)
		return
	}
	if len(ids) == 0 {
		writeError(res, http.StatusBadRequest, "Request body must list at least one id")
		return
	}

	// The request context ends with the response.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(req.Context()), requestTimeout)
	go func() {
		defer cancel()
		h.service.DeleteBatch(ctx, ids)
	}()

	res.WriteHeader(http.StatusAccepted)
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/atinyakov/go-webpages/internal/models"
	"github.com/atinyakov/go-webpages/internal/notify"
	"github.com/atinyakov/go-webpages/internal/table"
)

// Dashboard is the list screen driven by the dashboard endpoints.
type Dashboard interface {
	Table() *table.Engine[models.Webpage]
	View() models.TableView
	Save(w models.Webpage)
	Refresh()
	Delete(ctx context.Context, id int64) (bool, error)
	Activity() []models.ActivityEntry
}

// Notifications lists and dismisses notifications.
type Notifications interface {
	List() []notify.Notification
	Remove(id string)
}

type DashboardHandler struct {
	view          Dashboard
	notifications Notifications
	logger        *zap.Logger
}

func NewDashboard(v Dashboard, n Notifications, l *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		view:          v,
		notifications: n,
		logger:        l,
	}
}

// Table applies the q, sort, size and page query parameters, in that order,
// and writes the resulting table view. sort is "column" or "column:desc";
// "none" clears it.
func (h *DashboardHandler) Table(res http.ResponseWriter, req *http.Request) {
	query := req.URL.Query()
	engine := h.view.Table()

	if query.Has("q") {
		if term := query.Get("q"); term != engine.SearchTerm() {
			engine.Search(term)
		}
		engine.FlushSearch()
	}

	if query.Has("sort") {
		if err := applySort(engine, query.Get("sort")); err != nil {
			writeFailure(res, h.logger, err)
			return
		}
	}

	if query.Has("size") {
		size, err := strconv.Atoi(query.Get("size"))
		if err != nil || size < 1 {
			writeError(res, http.StatusBadRequest, "size must be a positive integer")
			return
		}
		if size != engine.View().PageSize {
			engine.ChangePageSize(size)
		}
	}

	if query.Has("page") {
		page, err := strconv.Atoi(query.Get("page"))
		if err != nil {
			writeError(res, http.StatusBadRequest, "page must be an integer")
			return
		}
		if page != engine.CurrentPage() {
			engine.GoToPage(page)
		}
	}

	writeJSON(res, http.StatusOK, h.view.View())
}

func applySort(engine *table.Engine[models.Webpage], raw string) error {
	key, dir, _ := strings.Cut(raw, ":")
	target := table.Direction(strings.ToLower(dir))

	if key == "none" || key == "" {
		key = engine.View().Sort.Column
		target = table.None
		if key == "" {
			return nil
		}
	} else if target == table.None {
		target = table.Asc
	}
	if target != table.Asc && target != table.Desc && target != table.None {
		return &malformedRequest{status: http.StatusBadRequest, msg: "sort direction must be asc or desc"}
	}

	if !engine.SetSort(key, target) {
		return &malformedRequest{status: http.StatusBadRequest, msg: "column " + strconv.Quote(key) + " cannot be sorted"}
	}
	return nil
}

// Save dispatches the body as an add or edit intent.
func (h *DashboardHandler) Save(res http.ResponseWriter, req *http.Request) {
	var request struct {
		ID int64 `json:"id,omitempty"`
		models.WebpageRequest
	}
	if err := decodeJSONBody(res, req, &request); err != nil {
		writeFailure(res, h.logger, err)
		return
	}

	h.view.Save(request.Webpage(request.ID))
	res.WriteHeader(http.StatusAccepted)
}

func (h *DashboardHandler) Refresh(res http.ResponseWriter, req *http.Request) {
	h.view.Refresh()
	res.WriteHeader(http.StatusAccepted)
}

// Delete asks for confirmation and dispatches the delete intent. A declined
// confirmation answers 200 with deleted=false.
func (h *DashboardHandler) Delete(res http.ResponseWriter, req *http.Request) {
	id, err := idParam(req)
	if err != nil {
		writeFailure(res, h.logger, err)
		return
	}

	ok, err := h.view.Delete(req.Context(), id)
	if err != nil {
		h.logger.Warn("delete confirmation failed", zap.Int64("id", id), zap.Error(err))
		writeError(res, http.StatusServiceUnavailable, "Confirmation unavailable")
		return
	}
	if !ok {
		writeJSON(res, http.StatusOK, map[string]bool{"deleted": false})
		return
	}
	writeJSON(res, http.StatusAccepted, map[string]bool{"deleted": true})
}

func (h *DashboardHandler) Activity(res http.ResponseWriter, req *http.Request) {
	writeJSON(res, http.StatusOK, h.view.Activity())
}

func (h *DashboardHandler) Notifications(res http.ResponseWriter, req *http.Request) {
	list := h.notifications.List()
	if list == nil {
		list = []notify.Notification{}
	}
	writeJSON(res, http.StatusOK, list)
}

func (h *DashboardHandler) DismissNotification(res http.ResponseWriter, req *http.Request) {
	h.notifications.Remove(chi.URLParam(req, "id"))
	res.WriteHeader(http.StatusNoContent)
}

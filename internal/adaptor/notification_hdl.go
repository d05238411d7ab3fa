package adaptor

import (
	"net/http"
	"strings"

	"moviepulse/internal/dto/response"
	"moviepulse/internal/usecase"
	"moviepulse/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type NotificationHandler struct {
	manager *usecase.NotificationManager
	log     *zap.Logger
}

func NewNotificationHandler(manager *usecase.NotificationManager, log *zap.Logger) *NotificationHandler {
	return &NotificationHandler{
		manager: manager,
		log:     log.With(zap.String("handler", "notification")),
	}
}

// List handles GET /surface/notifications
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	items, unread := h.manager.Snapshot()
	resp := response.NewNotificationListResponse(h.manager.State().String(), unread, items)
	utils.ResponseSuccess(w, "success", resp)
}

// MarkRead handles PUT /surface/notifications/{id}/read. A failed remote
// ack is not surfaced as an error; the response carries the unchanged state
// and the badge simply stays where it was.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "invalid notification id", nil)
		return
	}

	if err := h.manager.MarkRead(r.Context(), id); err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.ResponseNotFound(w, "notification not found")
			return
		}
		h.log.Warn("Mark read failed", zap.Int64("notification_id", id), zap.Error(err))
	}

	items, unread := h.manager.Snapshot()
	resp := response.NewNotificationListResponse(h.manager.State().String(), unread, items)
	utils.ResponseSuccess(w, "success", resp)
}

// Open handles POST /surface/notifications/{id}/open
func (h *NotificationHandler) Open(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "invalid notification id", nil)
		return
	}

	route, err := h.manager.Open(r.Context(), id)
	if err != nil {
		utils.ResponseNotFound(w, "notification not found")
		return
	}

	utils.ResponseSuccess(w, "success", response.OpenNotificationResponse{
		ID:     id,
		Route:  route,
		Unread: h.manager.Unread(),
	})
}

package profile

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/frahmantamala/kpi-portal/internal"
	"github.com/frahmantamala/kpi-portal/internal/transport"
	"github.com/frahmantamala/kpi-portal/internal/user"
)

const (
	imageField     = "image"
	userIDField    = "userId"
	msgBadUserID   = "شناسه کاربر نامعتبر است"
	msgImageNeeded = "فایل تصویر ارسال نشده است"
	msgTooLarge    = "حجم فایل بیش از حد مجاز است"
)

type ServiceAPI interface {
	Update(ctx context.Context, principal *internal.User, dto UpdateProfileDTO) (*user.User, error)
	ChangePassword(ctx context.Context, principal *internal.User, dto ChangePasswordDTO) error
	UploadImage(ctx context.Context, principal *internal.User, userID int64, filename string, r io.Reader) (*user.User, error)
	DeleteImage(ctx context.Context, principal *internal.User, userID int64) (*user.User, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI

	// maxUploadBytes caps the whole multipart body.
	maxUploadBytes int64
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI, maxImageBytes int64) *Handler {
	return &Handler{
		BaseHandler:    baseHandler,
		Service:        service,
		maxUploadBytes: maxImageBytes + 64<<10,
	}
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.CurrentUser(w, r)
	if !ok {
		return
	}
	var dto UpdateProfileDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	u, err := h.Service.Update(r.Context(), principal, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, map[string]interface{}{"user": u})
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.CurrentUser(w, r)
	if !ok {
		return
	}
	var dto ChangePasswordDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	if err := h.Service.ChangePassword(r.Context(), principal, dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, nil)
}

// UploadImage handles POST /api/profile/upload-image with a multipart "image"
// field and an optional "userId" field.
func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.CurrentUser(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.HandleServiceError(w, internal.NewValidationFieldError(imageField, msgTooLarge, internal.ErrCodeInvalidFile))
			return
		}
		h.HandleServiceError(w, internal.NewValidationFieldError(imageField, msgImageNeeded, internal.ErrCodeInvalidFile))
		return
	}
	file, header, err := r.FormFile(imageField)
	if err != nil {
		h.HandleServiceError(w, internal.NewValidationFieldError(imageField, msgImageNeeded, internal.ErrCodeInvalidFile))
		return
	}
	defer file.Close()

	userID, err := targetUserID(r)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	u, err := h.Service.UploadImage(r.Context(), principal, userID, header.Filename, file)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, map[string]interface{}{"user": u})
}

func (h *Handler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.CurrentUser(w, r)
	if !ok {
		return
	}
	userID, err := targetUserID(r)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	u, err := h.Service.DeleteImage(r.Context(), principal, userID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, map[string]interface{}{"user": u})
}

// targetUserID reads the optional userId form or query value. Absent means
// zero, which the service treats as the caller.
func targetUserID(r *http.Request) (int64, error) {
	raw := strings.TrimSpace(r.FormValue(userIDField))
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, internal.NewValidationFieldError(userIDField, msgBadUserID, internal.ErrCodeValidationFailed)
	}
	return id, nil
}

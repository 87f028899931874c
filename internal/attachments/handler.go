package attachments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"healthoffice-backend/internal/applications"
	"healthoffice-backend/internal/shared/server/middleware"
	"healthoffice-backend/internal/shared/server/respond"
)

// Handler wires attachment upload and download routes.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterPortalRoutes attaches attachment routes to the portal group.
func (h *Handler) RegisterPortalRoutes(rg *gin.RouterGroup) {
	rg.POST("/applications/:id/attachments", h.upload)
	rg.GET("/applications/:id/attachments", h.listForPortal)
	rg.GET("/attachments/:id/content", h.downloadForPortal)
}

// RegisterAdminRoutes attaches read-only attachment routes to the admin group.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/applications/:id/attachments", h.listForAdmin)
	rg.GET("/attachments/:id/content", h.downloadForAdmin)
}

// ownsApplication reports whether the portal caller's facility owns the
// application, mapping lookup failures onto not-found.
func (h *Handler) ownsApplication(c *gin.Context, applicationID string) bool {
	app, err := h.Svc.Applications.GetByID(c.Request.Context(), applicationID)
	if err != nil {
		respond.Error(c, http.StatusNotFound, "not_found", "application not found", nil)
		return false
	}
	if app.FacilityID != middleware.FacilityIDFromContext(c) {
		respond.Error(c, http.StatusNotFound, "not_found", "application not found", nil)
		return false
	}
	return true
}

func (h *Handler) upload(c *gin.Context) {
	applicationID := c.Param("id")
	if !h.ownsApplication(c, applicationID) {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "multipart field 'file' is required", nil)
		return
	}
	src, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "could not read uploaded file", nil)
		return
	}
	defer src.Close()

	a, err := h.Svc.Upload(c.Request.Context(), applicationID, middleware.ActorIDFromContext(c), fileHeader.Filename, src)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "file name is required", nil)
		case errors.Is(err, applications.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "application not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to store attachment", nil)
		}
		return
	}
	respond.JSON(c, http.StatusCreated, toResponse(a))
}

func (h *Handler) listForPortal(c *gin.Context) {
	applicationID := c.Param("id")
	if !h.ownsApplication(c, applicationID) {
		return
	}
	h.list(c, applicationID)
}

func (h *Handler) listForAdmin(c *gin.Context) {
	h.list(c, c.Param("id"))
}

func (h *Handler) list(c *gin.Context, applicationID string) {
	all, err := h.Svc.ListByApplication(c.Request.Context(), applicationID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list attachments", nil)
		return
	}
	items := make([]AttachmentResponse, 0, len(all))
	for _, a := range all {
		items = append(items, toResponse(a))
	}
	respond.OK(c, items)
}

func (h *Handler) downloadForPortal(c *gin.Context) {
	a, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "attachment not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch attachment", nil)
		return
	}
	if !h.ownsApplication(c, a.ApplicationID) {
		return
	}
	h.stream(c, a.ID)
}

func (h *Handler) downloadForAdmin(c *gin.Context) {
	h.stream(c, c.Param("id"))
}

func (h *Handler) stream(c *gin.Context, id string) {
	a, rc, err := h.Svc.OpenContent(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "attachment not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to open attachment", nil)
		return
	}
	defer rc.Close()

	c.Header("Content-Disposition", `attachment; filename="`+a.FileName+`"`)
	c.Header("Content-Length", strconv.FormatInt(a.SizeBytes, 10))
	c.DataFromReader(http.StatusOK, a.SizeBytes, a.MimeType, rc, nil)
}

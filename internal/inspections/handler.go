package inspections

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"healthoffice-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the inspection workflow.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches inspection routes to the admin group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/inspections", h.schedule)
	rg.GET("/inspections", h.list)
	rg.GET("/inspections/:id", h.get)
	rg.PUT("/inspections/:id/complete", h.complete)
	rg.GET("/applications/:id/active-inspection", h.activeForApplication)
	rg.GET("/inspectors", h.inspectors)

	rg.POST("/inspection-templates", h.createTemplate)
	rg.GET("/inspection-templates", h.listTemplates)
	rg.GET("/inspection-templates/:id", h.getTemplate)
	rg.DELETE("/inspection-templates/:id", h.deleteTemplate)
}

type scheduleRequest struct {
	ApplicationID string    `json:"applicationId"`
	InspectorID   string    `json:"inspectorId"`
	ScheduledDate time.Time `json:"scheduledDate"`
}

func (h *Handler) schedule(c *gin.Context) {
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.ApplicationID == "" || req.InspectorID == "" || req.ScheduledDate.IsZero() {
		respond.Error(c, http.StatusBadRequest, "validation_error", "applicationId, inspectorId and scheduledDate are required", nil)
		return
	}

	record, err := h.Svc.Schedule(c.Request.Context(), req.ApplicationID, req.InspectorID, req.ScheduledDate)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "application or inspector not found", nil)
		case errors.Is(err, ErrInvalidState):
			respond.Error(c, http.StatusConflict, "invalid_state", "application not ready for inspection scheduling", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to schedule inspection", nil)
		}
		return
	}
	respond.JSON(c, http.StatusCreated, toResponse(record))
}

func (h *Handler) list(c *gin.Context) {
	limit := queryInt(c, "limit", 20)
	offset := queryInt(c, "offset", 0)

	var (
		records []Record
		total   int
		err     error
	)
	switch {
	case c.Query("inspectorId") != "":
		records, total, err = h.Svc.ListByInspector(c.Request.Context(), c.Query("inspectorId"), limit, offset)
	case c.Query("status") != "":
		records, total, err = h.Svc.ListByStatus(c.Request.Context(), c.Query("status"), limit, offset)
	default:
		respond.Error(c, http.StatusBadRequest, "validation_error", "either inspectorId or status query parameter is required", nil)
		return
	}
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list inspections", nil)
		return
	}
	items := make([]InspectionResponse, 0, len(records))
	for _, r := range records {
		items = append(items, toResponse(r))
	}
	respond.OK(c, respond.Page{Items: items, Limit: limit, Offset: offset, Total: total})
}

func (h *Handler) get(c *gin.Context) {
	record, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "inspection not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch inspection", nil)
		return
	}
	respond.OK(c, toResponse(record))
}

type completeScoreLine struct {
	ID    string   `json:"id"`
	Score *float64 `json:"score"`
}

type completeRequest struct {
	OverallScore *float64            `json:"overallScore"`
	Notes        string              `json:"notes"`
	Items        []completeScoreLine `json:"items"`
}

func (h *Handler) complete(c *gin.Context) {
	var req completeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	in := CompleteInput{OverallScore: req.OverallScore, Notes: req.Notes}
	for _, line := range req.Items {
		in.Lines = append(in.Lines, ScoreLine{ScoreID: line.ID, Score: line.Score})
	}

	record, err := h.Svc.Complete(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "inspection not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to complete inspection", nil)
		return
	}
	respond.OK(c, toResponse(record))
}

func (h *Handler) activeForApplication(c *gin.Context) {
	record, err := h.Svc.ActiveForApplication(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "no active inspection for this application", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch inspection", nil)
		return
	}
	respond.OK(c, toResponse(record))
}

func (h *Handler) inspectors(c *gin.Context) {
	all, err := h.Svc.Inspectors(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list inspectors", nil)
		return
	}
	items := make([]InspectorResponse, 0, len(all))
	for _, a := range all {
		items = append(items, toInspectorResponse(a))
	}
	respond.OK(c, items)
}

type templateItemRequest struct {
	CriterionCode string  `json:"criterionCode"`
	Description   string  `json:"description"`
	MaxScore      float64 `json:"maxScore"`
}

type templateRequest struct {
	Name         string                `json:"name"`
	FacilityType string                `json:"facilityType"`
	Items        []templateItemRequest `json:"items"`
}

func (h *Handler) createTemplate(c *gin.Context) {
	var req templateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	items := make([]TemplateItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, TemplateItemInput{
			CriterionCode: it.CriterionCode,
			Description:   it.Description,
			MaxScore:      it.MaxScore,
		})
	}

	template, err := h.Svc.CreateTemplate(c.Request.Context(), req.Name, req.FacilityType, items)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "name, facilityType and at least one valid item are required", nil)
		case errors.Is(err, ErrDuplicate):
			respond.Error(c, http.StatusConflict, "conflict", "a template already exists for this facility type", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create template", nil)
		}
		return
	}
	respond.JSON(c, http.StatusCreated, toTemplateResponse(template))
}

func (h *Handler) listTemplates(c *gin.Context) {
	all, err := h.Svc.ListTemplates(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list templates", nil)
		return
	}
	items := make([]TemplateResponse, 0, len(all))
	for _, t := range all {
		items = append(items, toTemplateResponse(t))
	}
	respond.OK(c, items)
}

func (h *Handler) getTemplate(c *gin.Context) {
	template, err := h.Svc.GetTemplate(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrTemplateNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "template not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch template", nil)
		return
	}
	respond.OK(c, toTemplateResponse(template))
}

func (h *Handler) deleteTemplate(c *gin.Context) {
	if err := h.Svc.DeleteTemplate(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, ErrTemplateNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "template not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete template", nil)
		return
	}
	c.Status(http.StatusNoContent)
}

func queryInt(c *gin.Context, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return val
}

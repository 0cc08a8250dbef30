package rest

import (
	"strconv"

	"tasksearch/delivery/rest/dto"
	"tasksearch/delivery/rest/response"
	"tasksearch/domain"
	"tasksearch/search"
	"tasksearch/syncer"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler handles HTTP requests
type Handler struct {
	searchService *search.Service
	syncService   *syncer.Service
	logger        *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(searchService *search.Service, syncService *syncer.Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		searchService: searchService,
		syncService:   syncService,
		logger:        logger,
	}
}

// AdvancedSearch handles POST /api/search/advanced
func (h *Handler) AdvancedSearch(c *gin.Context) {
	var req dto.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithMessage(c, 400, "invalid_request", err.Error())
		return
	}

	criteria, err := req.ToCriteria()
	if err != nil {
		response.Error(c, err)
		return
	}

	tasks, total, err := h.searchService.Search(c.Request.Context(), criteria)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.NewPageResponse(tasks, criteria.Page, criteria.Size, total))
}

// SimpleSearch handles POST /api/search/simple
func (h *Handler) SimpleSearch(c *gin.Context) {
	var req dto.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithMessage(c, 400, "invalid_request", err.Error())
		return
	}

	criteria, err := req.ToCriteria()
	if err != nil {
		response.Error(c, err)
		return
	}

	tasks, err := h.searchService.SearchAll(c.Request.Context(), criteria)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, tasks)
}

// SyncUser handles POST /api/search/sync/:userId. Unlike the search path,
// upstream failures here are surfaced to the caller.
func (h *Handler) SyncUser(c *gin.Context) {
	userID, ok := h.userIDParam(c)
	if !ok {
		return
	}

	if err := h.syncService.SyncUser(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.SyncResponse{
		Message: "sync completed",
		UserID:  userID,
	})
}

// GetUserTasks handles GET /api/search/user/:userId
func (h *Handler) GetUserTasks(c *gin.Context) {
	userID, ok := h.userIDParam(c)
	if !ok {
		return
	}

	tasks, err := h.searchService.FindByUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, tasks)
}

// GetUserTasksPaged handles GET /api/search/user/:userId/page
func (h *Handler) GetUserTasksPaged(c *gin.Context) {
	userID, ok := h.userIDParam(c)
	if !ok {
		return
	}

	page, err := intQuery(c, "page", 0)
	if err != nil {
		response.ErrorWithMessage(c, 400, "invalid_request", err.Error())
		return
	}
	size, err := intQuery(c, "size", domain.DefaultPageSize)
	if err != nil {
		response.ErrorWithMessage(c, 400, "invalid_request", err.Error())
		return
	}

	tasks, total, err := h.searchService.FindByUserPaged(c.Request.Context(), userID, page, size)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.NewPageResponse(tasks, page, size, total))
}

// SearchByKeyword handles GET /api/search/user/:userId/keyword
func (h *Handler) SearchByKeyword(c *gin.Context) {
	userID, ok := h.userIDParam(c)
	if !ok {
		return
	}

	keyword := c.Query("keyword")
	if keyword == "" {
		response.ErrorWithMessage(c, 400, "invalid_request", "keyword is required")
		return
	}

	tasks, err := h.searchService.FindByKeyword(c.Request.Context(), userID, keyword)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, tasks)
}

// FilterByStatus handles GET /api/search/user/:userId/status
func (h *Handler) FilterByStatus(c *gin.Context) {
	userID, ok := h.userIDParam(c)
	if !ok {
		return
	}

	status := c.Query("status")
	if status == "" {
		response.ErrorWithMessage(c, 400, "invalid_request", "status is required")
		return
	}

	tasks, err := h.searchService.FindByStatus(c.Request.Context(), userID, status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, tasks)
}

// FilterByPriority handles GET /api/search/user/:userId/priority
func (h *Handler) FilterByPriority(c *gin.Context) {
	userID, ok := h.userIDParam(c)
	if !ok {
		return
	}

	priority := c.Query("priority")
	if priority == "" {
		response.ErrorWithMessage(c, 400, "invalid_request", "priority is required")
		return
	}

	tasks, err := h.searchService.FindByPriority(c.Request.Context(), userID, priority)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, tasks)
}

// GetTaskByID handles GET /api/search/user/:userId/task/:taskId
func (h *Handler) GetTaskByID(c *gin.Context) {
	userID, ok := h.userIDParam(c)
	if !ok {
		return
	}

	taskID, err := strconv.ParseInt(c.Param("taskId"), 10, 64)
	if err != nil {
		response.ErrorWithMessage(c, 400, "invalid_request", "taskId must be an integer")
		return
	}

	task, err := h.searchService.FindByID(c.Request.Context(), userID, taskID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, task)
}

// userIDParam parses the :userId path parameter; on failure it writes the
// error response and returns false
func (h *Handler) userIDParam(c *gin.Context) (int64, bool) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil || userID <= 0 {
		response.ErrorWithMessage(c, 400, "invalid_request", "userId must be a positive integer")
		return 0, false
	}
	return userID, true
}

func intQuery(c *gin.Context, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

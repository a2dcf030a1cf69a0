package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nexoventlabs/business-tracker/internal/business"
	"github.com/nexoventlabs/business-tracker/internal/business/service"
	"github.com/nexoventlabs/business-tracker/pkg/apperr"
	"github.com/nexoventlabs/business-tracker/pkg/logger"
	"github.com/nexoventlabs/business-tracker/pkg/metrics"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"

	msgNotFound = "Business not found"
)

// RegisterBusinessRoutes mounts the record CRUD endpoints on rg (normally the /api group).
func RegisterBusinessRoutes(rg *gin.RouterGroup, svc service.Service) {
	h := &handler{svc: svc}
	rg.GET("/businesses", h.list)
	rg.POST("/businesses", h.create)
	rg.PUT("/businesses/:business_id", h.update)
	rg.DELETE("/businesses/:business_id", h.delete)
}

type handler struct {
	svc service.Service
}

func (h *handler) list(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		fail(c, "list", "Error fetching businesses", err)
		return
	}
	if list == nil {
		list = []business.Record{}
	}
	observe("list", nil)
	c.JSON(http.StatusOK, gin.H{"status": StatusSuccess, "data": list})
}

func (h *handler) create(c *gin.Context) {
	rec, err := business.DecodeRecord(c.Request.Body)
	if err != nil {
		fail(c, "create", "Error creating business", err)
		return
	}
	id, err := h.svc.Create(c.Request.Context(), rec)
	if err != nil {
		fail(c, "create", "Error creating business", err)
		return
	}
	observe("create", nil)
	c.JSON(http.StatusCreated, gin.H{
		"status":  StatusSuccess,
		"message": "Business created successfully",
		"id":      id,
	})
}

func (h *handler) update(c *gin.Context) {
	id, err := business.ParseID(c.Param("business_id"))
	if err != nil {
		fail(c, "update", "Error updating business", err)
		return
	}
	fields, err := business.DecodeRecord(c.Request.Body)
	if err != nil {
		fail(c, "update", "Error updating business", err)
		return
	}
	if err := h.svc.Update(c.Request.Context(), id, fields); err != nil {
		fail(c, "update", "Error updating business", err)
		return
	}
	observe("update", nil)
	c.JSON(http.StatusOK, gin.H{"status": StatusSuccess, "message": "Business updated successfully"})
}

func (h *handler) delete(c *gin.Context) {
	id, err := business.ParseID(c.Param("business_id"))
	if err != nil {
		fail(c, "delete", "Error deleting business", err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		fail(c, "delete", "Error deleting business", err)
		return
	}
	observe("delete", nil)
	c.JSON(http.StatusOK, gin.H{"status": StatusSuccess, "message": "Business deleted successfully"})
}

// fail writes the error envelope for err. Not-found carries only the fixed
// message; every other kind also reports the fault text under "error".
func fail(c *gin.Context, op, message string, err error) {
	observe(op, err)
	_ = c.Error(err)

	if errors.Is(err, apperr.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"status": StatusError, "message": msgNotFound})
		return
	}
	status := apperr.Status(err)
	if status >= http.StatusInternalServerError {
		logger.Errorf("%s business failed: %v", op, err)
	}
	c.JSON(status, gin.H{"status": StatusError, "message": message, "error": err.Error()})
}

func observe(op string, err error) {
	outcome := StatusSuccess
	if err != nil {
		outcome = string(apperr.KindOf(err))
	}
	metrics.BusinessOperations.WithLabelValues(op, outcome).Inc()
}

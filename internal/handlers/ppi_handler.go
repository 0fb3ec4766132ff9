package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/GeisyGP/sistema-ppi/internal/services"
)

type PPIHandler struct{ svc services.PPIService }

func NewPPIHandler(svc services.PPIService) *PPIHandler { return &PPIHandler{svc: svc} }

type ppiReq struct {
	Name        string `json:"name" binding:"required"`
	Workload    int    `json:"workload" binding:"required"`
	ClassPeriod int    `json:"class_period" binding:"required"`
}

func (h *PPIHandler) Create(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var req ppiReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ppi, err := h.svc.Create(p, req.Name, req.Workload, req.ClassPeriod)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ppi": ppi})
}

func (h *PPIHandler) List(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	ppis, err := h.svc.List(p)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ppis": ppis})
}

func (h *PPIHandler) Get(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	ppi, err := h.svc.Get(p, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ppi": ppi})
}

func (h *PPIHandler) Update(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req ppiReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ppi, err := h.svc.Update(p, id, req.Name, req.Workload, req.ClassPeriod)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ppi": ppi})
}

func (h *PPIHandler) Delete(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.svc.Delete(p, id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

type ppiSubjectReq struct {
	SubjectID     string `json:"subject_id" binding:"required"`
	Workload      int    `json:"workload" binding:"required"`
	IsCoordinator bool   `json:"is_coordinator"`
}

func (h *PPIHandler) AddSubject(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	ppiID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req ppiSubjectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	subjectID, err := uuid.Parse(req.SubjectID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid subject id"})
		return
	}
	if err := h.svc.AddSubject(p, ppiID, subjectID, req.Workload, req.IsCoordinator); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"added": true})
}

func (h *PPIHandler) RemoveSubject(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	ppiID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	subjectID, err := uuid.Parse(c.Param("subjectId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid subject id"})
		return
	}
	if err := h.svc.RemoveSubject(p, ppiID, subjectID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": true})
}

func (h *PPIHandler) ListSubjects(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	ppiID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	subjects, err := h.svc.ListSubjects(p, ppiID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"subjects": subjects})
}

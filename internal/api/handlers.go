// Package api exposes the note engine over a small REST surface. Handlers
// translate HTTP requests into store mutations, query pipeline runs, and
// export calls; coded errors map to HTTP status.
package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noteblue/noteblue/internal/errs"
	"github.com/noteblue/noteblue/internal/export"
	"github.com/noteblue/noteblue/internal/obs"
	"github.com/noteblue/noteblue/internal/query"
	"github.com/noteblue/noteblue/internal/store"
)

// Handler serves the HTTP API over a store and an export service.
type Handler struct {
	store    *store.Store
	exporter *export.Service
	log      *slog.Logger
}

// New creates a Handler.
func New(st *store.Store, exporter *export.Service) *Handler {
	return &Handler{
		store:    st,
		exporter: exporter,
		log:      obs.Pkg("api"),
	}
}

// Router builds the gin engine with all routes registered.
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")
	{
		api.GET("/notes", h.listNotes)
		api.POST("/notes", h.createNote)
		api.GET("/notes/:id", h.getNote)
		api.PATCH("/notes/:id", h.updateNote)
		api.DELETE("/notes/:id", h.deleteNote)
		api.POST("/notes/:id/export", h.exportNote)

		api.GET("/categories", h.listCategories)
		api.POST("/categories", h.addCategory)
		api.DELETE("/categories/:name", h.deleteCategory)
	}

	return r
}

// listNotes runs the query pipeline over the current collection.
// Query params: term, category, sort (newest|oldest|alphabetical).
func (h *Handler) listNotes(c *gin.Context) {
	state := query.State{
		Term:     c.Query("term"),
		Category: c.Query("category"),
		Sort:     query.ParseSort(c.Query("sort")),
	}
	notes := query.Run(h.store.Notes(), state)
	c.JSON(http.StatusOK, gin.H{"notes": notes, "total": len(notes)})
}

func (h *Handler) createNote(c *gin.Context) {
	var draft store.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	note := h.store.CreateNote(draft)
	c.JSON(http.StatusCreated, note)
}

func (h *Handler) getNote(c *gin.Context) {
	note, ok := h.store.GetNote(c.Param("id"))
	if !ok {
		h.writeError(c, errs.New(errs.NotFound, "note not found"))
		return
	}
	c.JSON(http.StatusOK, note)
}

func (h *Handler) updateNote(c *gin.Context) {
	var patch store.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	note, ok := h.store.UpdateNote(c.Param("id"), patch)
	if !ok {
		// The engine treats unknown ids as a silent no-op; HTTP callers
		// still get 404 so they can tell nothing was written.
		h.writeError(c, errs.New(errs.NotFound, "note not found"))
		return
	}
	c.JSON(http.StatusOK, note)
}

func (h *Handler) deleteNote(c *gin.Context) {
	h.store.DeleteNote(c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (h *Handler) exportNote(c *gin.Context) {
	note, ok := h.store.GetNote(c.Param("id"))
	if !ok {
		h.writeError(c, errs.New(errs.NotFound, "note not found"))
		return
	}
	outcome, err := h.exporter.Export(c.Request.Context(), note)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"outcome": outcome.String()})
}

func (h *Handler) listCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.store.Categories()})
}

func (h *Handler) addCategory(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if err := h.store.AddCategory(req.Name); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"categories": h.store.Categories()})
}

func (h *Handler) deleteCategory(c *gin.Context) {
	h.store.DeleteCategory(c.Param("name"))
	c.Status(http.StatusNoContent)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	code := errs.CodeOf(err)
	status := errs.HTTPStatus(code)
	if status >= http.StatusInternalServerError {
		h.log.Error("request failed", "path", c.FullPath(), "error", err)
	}
	c.JSON(status, gin.H{"error": errs.MessageOf(err), "code": string(code)})
}

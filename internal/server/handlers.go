package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tatianab/edge-trail/internal/engine"
	"github.com/tatianab/edge-trail/internal/models"
)

type createSessionRequest struct {
	Name string `json:"name" binding:"required"`
	Role string `json:"role" binding:"required"`
}

type indexRequest struct {
	Index *int `json:"index" binding:"required"`
}

func (s *Server) createSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ctrl := s.eng.NewController()
	if err := ctrl.Start(c.Request.Context(), req.Name, models.Role(req.Role)); err != nil {
		s.handleError(c, err)
		return
	}

	e := &entry{
		ctrl:   ctrl,
		log:    s.log.With(zap.String("session_id", ctrl.ID())),
		render: s.md.response,
	}
	e.touch()
	s.sessions.Store(ctrl.ID(), e)

	c.JSON(http.StatusCreated, s.md.response(ctrl.Snapshot(), nil))
}

func (s *Server) getSession(c *gin.Context) {
	s.withEntry(c, func(e *entry) {
		c.JSON(http.StatusOK, e.render(e.ctrl.Snapshot(), nil))
	})
}

func (s *Server) choose(c *gin.Context) {
	var req indexRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	s.withEntry(c, func(e *entry) {
		out, timers := e.ctrl.Choose(c.Request.Context(), *req.Index)
		e.schedule(timers)
		e.broadcastLocked(&out)
		c.JSON(http.StatusOK, e.render(e.ctrl.Snapshot(), &out))
	})
}

func (s *Server) answer(c *gin.Context) {
	var req indexRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	s.withEntry(c, func(e *entry) {
		e.schedule(e.ctrl.Answer(c.Request.Context(), *req.Index))
		e.broadcastLocked(nil)
		c.JSON(http.StatusOK, e.render(e.ctrl.Snapshot(), nil))
	})
}

func (s *Server) restart(c *gin.Context) {
	s.withEntry(c, func(e *entry) {
		if err := e.ctrl.Restart(c.Request.Context()); err != nil {
			s.handleError(c, err)
			return
		}
		e.broadcastLocked(nil)
		c.JSON(http.StatusOK, e.render(e.ctrl.Snapshot(), nil))
	})
}

func (s *Server) deleteSession(c *gin.Context) {
	id := c.Param("id")
	v, ok := s.sessions.LoadAndDelete(id)
	if !ok {
		s.handleError(c, ErrSessionNotFound)
		return
	}
	e := v.(*entry)
	e.mu.Lock()
	e.closeLocked()
	e.mu.Unlock()
	c.Status(http.StatusNoContent)
}

// withEntry runs fn with the session locked and its access time bumped.
func (s *Server) withEntry(c *gin.Context, fn func(*entry)) {
	e, err := s.lookup(c.Param("id"))
	if err != nil {
		s.handleError(c, err)
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		s.handleError(c, ErrSessionNotFound)
		return
	}
	e.touch()
	fn(e)
}

func (s *Server) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, engine.ErrInvalidName), errors.Is(err, engine.ErrUnknownRole):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, engine.ErrNotStarted):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

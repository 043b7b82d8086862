// Package server exposes trail sessions over HTTP and WebSocket.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"

	"github.com/tatianab/edge-trail/internal/engine"
)

// ErrSessionNotFound is returned for unknown or evicted session ids.
var ErrSessionNotFound = errors.New("session not found")

// Options tune the HTTP frontend.
type Options struct {
	SessionTTL  time.Duration
	CORSOrigins []string
	// Prometheus mounts request metrics and /metrics on the default registry.
	// It can only be enabled once per process.
	Prometheus bool
}

// Server owns every live session.
type Server struct {
	eng      *engine.Engine
	log      *zap.Logger
	opts     Options
	sessions sync.Map // map[string]*entry
	md       *renderer
}

// New creates a server over eng.
func New(eng *engine.Engine, log *zap.Logger, opts Options) *Server {
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 30 * time.Minute
	}
	return &Server{
		eng:  eng,
		log:  log.With(zap.String("component", "server")),
		opts: opts,
		md:   newRenderer(),
	}
}

// Router builds the gin engine with middleware and routes.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(ZapLogger(s.log))
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(s.opts.CORSOrigins) == 0 || (len(s.opts.CORSOrigins) == 1 && s.opts.CORSOrigins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = s.opts.CORSOrigins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	health := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/health", health)
	router.HEAD("/health", health)

	api := router.Group("/api/sessions")
	api.POST("", s.createSession)
	api.GET("/:id", s.getSession)
	api.POST("/:id/choices", s.choose)
	api.POST("/:id/call", s.answer)
	api.POST("/:id/restart", s.restart)
	api.DELETE("/:id", s.deleteSession)
	api.GET("/:id/ws", s.serveWS)

	if s.opts.Prometheus {
		p := ginprometheus.NewPrometheus("gin")
		p.Use(router)
	}
	return router
}

// minEvictionInterval bounds how often the eviction loop wakes up.
const minEvictionInterval = time.Second

// StartEviction drops idle sessions in the background until ctx is done.
func (s *Server) StartEviction(ctx context.Context) {
	interval := max(s.opts.SessionTTL/2, minEvictionInterval)
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				s.evict(now)
			}
		}
	}()
}

func (s *Server) evict(now time.Time) int {
	evicted := 0
	s.sessions.Range(func(key, value any) bool {
		e := value.(*entry)
		if !e.mu.TryLock() {
			return true // busy, so not idle
		}
		idle := now.Sub(e.lastAccess) > s.opts.SessionTTL
		if idle {
			e.closeLocked()
			s.sessions.Delete(key)
			evicted++
		}
		e.mu.Unlock()
		if idle {
			s.log.Info("Evicted idle session", zap.String("session_id", key.(string)))
		}
		return true
	})
	return evicted
}

func (s *Server) lookup(id string) (*entry, error) {
	v, ok := s.sessions.Load(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return v.(*entry), nil
}

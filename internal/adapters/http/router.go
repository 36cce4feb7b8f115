package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/dkeye/CodeRelay/internal/adapters/compile"
	"github.com/dkeye/CodeRelay/internal/adapters/signal"
	"github.com/dkeye/CodeRelay/internal/app/orch"
	"github.com/dkeye/CodeRelay/internal/config"
	"github.com/dkeye/CodeRelay/internal/domain"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Executor runs code on the remote execution service.
type Executor interface {
	Execute(ctx context.Context, code, language string) ([]byte, error)
}

type compileRequest struct {
	Code     string `json:"code"`
	Language string `json:"language"`
}

func SetupRouter(ctx context.Context, cfg *config.Config, o *orch.Orchestrator, exec Executor) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())
	if mw := corsMiddleware(cfg.CORSOrigins); mw != nil {
		r.Use(mw)
	}

	ctrl := signal.NewSignalWSController(o, signal.Options{
		ReadLimit:  cfg.ReadLimit,
		PingPeriod: cfg.PingPeriod,
		SendBuffer: cfg.SendBuffer,
	})
	r.GET("/ws", func(c *gin.Context) {
		ctrl.HandleSignal(ctx, c)
	})

	r.POST("/compile", handleCompile(exec))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "connections": o.Connections()})
	})

	api := r.Group("/api")
	api.GET("/rooms", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"rooms": o.RoomList()})
	})
	api.GET("/rooms/:room/members", func(c *gin.Context) {
		room, err := domain.ParseRoomID(c.Param("room"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, o.Members(room))
	})

	log.Info().Str("module", "adapters.http").Strs("cors", cfg.CORSOrigins).Msg("router setup")
	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		return nil
	}
	cc := cors.Config{
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}
	for _, o := range origins {
		if o == "*" {
			cc.AllowAllOrigins = true
		}
	}
	if !cc.AllowAllOrigins {
		cc.AllowOrigins = origins
	}
	return cors.New(cc)
}

func handleCompile(exec Executor) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req compileRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Language == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported or missing language"})
			return
		}

		body, err := exec.Execute(c.Request.Context(), req.Code, req.Language)
		switch {
		case errors.Is(err, compile.ErrUnsupportedLanguage):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported or missing language"})
			return
		case err != nil:
			ev := log.Error().Err(err).Str("module", "adapters.http").Str("language", req.Language)
			var upstream *compile.UpstreamError
			if errors.As(err, &upstream) {
				ev = ev.Int("upstream_status", upstream.Status).Bytes("upstream_body", upstream.Body)
			}
			ev.Msg("compile error")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compile code"})
			return
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", body)
	}
}

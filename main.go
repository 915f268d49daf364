package main

import (
	"context"
	"errors"
	"html/template"
	"io"
	"io/fs"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/live-portfolio/internal/content"
	"github.com/Zachkp/live-portfolio/internal/live"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	portfolio, err := loadPortfolio(cfg.ContentPath)
	if err != nil {
		log.Fatalf("content: %v", err)
	}

	hub := live.NewHub(portfolio, live.Options{Frame: cfg.FrameInterval}, cfg.MaxSessions)
	r, err := newRouter(cfg, portfolio, hub)
	if err != nil {
		log.Fatalf("router: %v", err)
	}

	log.Printf("serving %s on :%s", portfolio.Owner.Name, cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}

func loadPortfolio(path string) (*content.Portfolio, error) {
	if path == "" {
		return content.Load()
	}
	return content.LoadFile(path)
}

var templateFuncs = template.FuncMap{
	"projectKey":    live.ProjectKey,
	"experienceKey": live.ExperienceKey,
	"graphicKey":    live.GraphicKey,
}

func newRouter(cfg Config, portfolio *content.Portfolio, hub *live.Hub) (*gin.Engine, error) {
	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, err
	}
	started := time.Now()

	r := gin.Default()
	r.SetHTMLTemplate(tmpl)
	r.StaticFS("/static", http.FS(static))

	// Home page route
	r.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", newPageData(portfolio, time.Now(), started))
	})

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": hub.Len()})
	})

	// Live widget stream. The session lives exactly as long as the request.
	r.GET("/live", func(c *gin.Context) {
		s, err := hub.Open()
		if errors.Is(err, live.ErrHubFull) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "too many live sessions"})
			return
		}
		if err != nil {
			log.Printf("Error opening live session: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open session"})
			return
		}
		defer hub.Remove(s.ID)

		ctx, cancel := context.WithCancel(c.Request.Context())
		defer func() {
			cancel()
			<-s.Done()
		}()
		go func() {
			if err := s.Run(ctx); err != nil {
				log.Printf("live: session %s: %v", s.ID, err)
			}
		}()

		c.Header("Cache-Control", "no-cache")
		c.Header("X-Accel-Buffering", "no")
		c.SSEvent("session", s.ID)
		c.Writer.Flush()

		keepalive := time.NewTicker(cfg.KeepAlive)
		defer keepalive.Stop()

		c.Stream(func(w io.Writer) bool {
			select {
			case <-ctx.Done():
				return false
			case <-s.Done():
				return false
			case <-keepalive.C:
				c.SSEvent("ping", "")
			case <-s.Ready():
				for _, f := range s.Frames() {
					c.SSEvent("frame", f)
				}
			}
			return true
		})
	})

	r.POST("/live/:id/viewport", func(c *gin.Context) {
		s, ok := hub.Get(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}

		var ev live.ViewportEvent
		if err := c.ShouldBindJSON(&ev); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid viewport"})
			return
		}

		err := s.HandleViewport(ev)
		switch {
		case errors.Is(err, live.ErrSessionClosed):
			c.JSON(http.StatusNotFound, gin.H{"error": "session closed"})
		case err != nil:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.Status(http.StatusNoContent)
		}
	})

	return r, nil
}

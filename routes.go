package main

import (
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"papernet/config"
	"papernet/models"
	"papernet/services"
)

func newRouter(cfg *config.Config, papers *services.PaperService, log *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(log))
	router.LoadHTMLGlob(filepath.Join(cfg.TemplateDir, "*.html"))
	router.Static("/static", cfg.StaticDir)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", func(c *gin.Context) {
		if err := papers.Ping(c.Request.Context()); err != nil {
			log.Error("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	setupGraphRoutes(router, papers, log)
	setupAddRoutes(router, papers, log)
	setupPaperRoutes(router, papers, log)
	return router
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}

// setupGraphRoutes serves the index page and the graph data it fetches.
func setupGraphRoutes(router *gin.Engine, papers *services.PaperService, log *zap.Logger) {
	router.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", nil)
	})

	router.GET("/data", func(c *gin.Context) {
		graph, err := papers.Graph(c.Request.Context())
		if err != nil {
			log.Error("Graph query failed", zap.Error(err))
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		// PureJSON keeps the <br> in node titles unescaped.
		c.PureJSON(http.StatusOK, graph)
	})
}

func setupAddRoutes(router *gin.Engine, papers *services.PaperService, log *zap.Logger) {
	router.GET("/add", func(c *gin.Context) {
		existing, err := papers.ListAll(c.Request.Context())
		if err != nil {
			log.Error("Database query for all papers failed", zap.Error(err))
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.HTML(http.StatusOK, "add_node.html", gin.H{"papers": existing})
	})

	router.POST("/add", func(c *gin.Context) {
		cmd, err := parseAddPaperForm(c)
		if err != nil {
			log.Warn("Rejected add-paper form", zap.Error(err))
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		paper, err := papers.Create(c.Request.Context(), cmd)
		if err != nil {
			log.Error("Failed to create paper", zap.Error(err))
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		papersAddedCounter.Inc()
		linksAddedCounter.Add(float64(len(paper.Links)))
		log.Info("Paper added",
			zap.Uint("id", paper.ID),
			zap.Int("links", len(paper.Links)),
			zap.Int("links_requested", len(cmd.LinkIDs)))

		c.Redirect(http.StatusFound, "/")
	})
}

// setupPaperRoutes exposes read-only JSON views of single papers and their neighbours.
func setupPaperRoutes(router *gin.Engine, papers *services.PaperService, log *zap.Logger) {
	rg := router.Group("/papers")

	rg.GET("", func(c *gin.Context) {
		all, err := papers.ListAll(c.Request.Context())
		if err != nil {
			log.Error("Database query for all papers failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusOK, all)
	})

	rg.GET("/:id", func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil || id == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}
		ctx := c.Request.Context()

		paper, err := papers.GetByID(ctx, uint(id))
		if err != nil {
			log.Error("DB error loading paper", zap.Uint64("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		if paper == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "paper not found"})
			return
		}

		outgoing, err := papers.Outgoing(ctx, paper.ID)
		if err != nil {
			log.Error("DB error loading outgoing links", zap.Uint64("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		incoming, err := papers.LinkedBy(ctx, paper.ID)
		if err != nil {
			log.Error("DB error loading incoming links", zap.Uint64("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}

		c.PureJSON(http.StatusOK, gin.H{
			"paper":     paper,
			"links":     toNodes(outgoing),
			"linked_by": toNodes(incoming),
		})
	})
}

func toNodes(papers []models.Paper) []models.Node {
	nodes := make([]models.Node, 0, len(papers))
	for _, p := range papers {
		nodes = append(nodes, p.Node())
	}
	return nodes
}

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rezonia/reimburse-report/internal/export"
	"github.com/rezonia/reimburse-report/internal/model"
	"github.com/rezonia/reimburse-report/internal/normalizer"
	"github.com/rezonia/reimburse-report/internal/ocrerror"
	"github.com/rezonia/reimburse-report/internal/parser/pdf"
	"github.com/rezonia/reimburse-report/internal/processor"
	"github.com/rezonia/reimburse-report/internal/render"
)

// Config holds server configuration
type Config struct {
	Address      string
	ChromiumPath string
	PDFTimeout   time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Debug        bool
	Logger       *slog.Logger
}

// Server represents the HTTP API server
type Server struct {
	config    *Config
	router    *gin.Engine
	pipeline  *processor.Pipeline
	exporter  *export.Exporter
	printer   render.PDFPrinter
	extractor *pdf.Extractor
	logger    *slog.Logger
}

// NewServer creates a new API server
func NewServer(config *Config) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if config.Debug {
		router.Use(gin.Logger())
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &Server{
		config:   config,
		router:   router,
		pipeline: processor.NewPipeline(processor.WithLogger(logger)),
		exporter: export.New(),
		printer: render.PDFPrinter{
			ChromiumPath: config.ChromiumPath,
			Timeout:      config.PDFTimeout,
		},
		extractor: pdf.NewExtractor(),
		logger:    logger,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Health check
	s.router.GET("/health", s.handleHealth)

	// API v1
	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/classify", s.handleClassify)
		v1.POST("/normalize", s.handleNormalize)
		v1.POST("/validate", s.handleValidate)
		v1.POST("/render", s.handleRender)
		v1.POST("/export/:format", s.handleExport)

		// Attachment inspection
		v1.POST("/info", s.handleInfo)
	}
}

// Run starts the HTTP server
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	return srv.ListenAndServe()
}

// Handler returns the http.Handler for use with custom servers
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleClassify(c *gin.Context) {
	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, ocrerror.Classify(req.Error, req.LogID))
}

func (s *Server) handleNormalize(c *gin.Context) {
	result, ok := s.analyze(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, NormalizeResponse{
		Record:   result.Record,
		Warnings: result.Warnings,
	})
}

func (s *Server) handleValidate(c *gin.Context) {
	result, ok := s.analyze(c)
	if !ok {
		return
	}

	strict, _ := strconv.ParseBool(c.Query("strict"))
	v := model.Validate(result.Record, strict)

	c.JSON(http.StatusOK, ValidationResponse{
		Valid:    v.Valid,
		Errors:   v.Errors,
		Warnings: v.Warnings,
	})
}

func (s *Server) handleRender(c *gin.Context) {
	result, ok := s.analyze(c)
	if !ok {
		return
	}

	switch format := c.DefaultQuery("format", "json"); format {
	case "json":
		c.JSON(http.StatusOK, RenderResponse{
			Document: result.Document,
			Warnings: result.Warnings,
		})

	case "html":
		s.writeHTML(c, result.Document)

	case "pdf":
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Minute)
		defer cancel()

		data, err := s.printer.Print(ctx, result.Document)
		if err != nil {
			// Chromium missing or crashed: serve the HTML report instead
			s.logger.WarnContext(ctx, "pdf rendering unavailable, falling back to html", "error", err)
			s.writeHTML(c, result.Document)
			return
		}
		c.Data(http.StatusOK, "application/pdf", data)

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unsupported render format %q", format)})
	}
}

func (s *Server) writeHTML(c *gin.Context, doc *render.Document) {
	html, err := render.HTML(doc)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render html", "details": err.Error()})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}

func (s *Server) handleExport(c *gin.Context) {
	format, err := export.ParseFormat(c.Param("format"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, ok := s.analyze(c)
	if !ok {
		return
	}

	rows, err := export.BuildRows(result.Record, result.Raw, c.Query("file_name"))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	artifact, err := s.exporter.Export(format, rows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed", "details": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, artifact.Name))
	c.Data(http.StatusOK, artifact.ContentType, artifact.Data)
}

func (s *Server) handleInfo(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	if len(body) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty request body"})
		return
	}

	format := processor.DetectFormat(body)
	resp := InfoResponse{
		Format:    format.String(),
		MimeType:  format.MimeType(),
		Size:      len(body),
		Supported: format.Supported(),
	}
	if format == processor.FormatImage {
		resp.MimeType = processor.ImageMimeType(body)
	}
	if format == processor.FormatPDF {
		if pages, err := s.extractor.PageCount(body); err == nil {
			resp.PageCount = &pages
		} else {
			resp.Warnings = append(resp.Warnings, "could not read page count: "+err.Error())
		}
	}

	c.JSON(http.StatusOK, resp)
}

// analyze runs the request body through the pipeline and writes the error
// response itself when processing fails.
func (s *Server) analyze(c *gin.Context) (*processor.Result, bool) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return nil, false
	}

	if len(body) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty request body"})
		return nil, false
	}

	raw, err := normalizer.Parse(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	result := s.pipeline.ProcessRaw(ctx, raw)
	if result.Error == nil {
		return result, true
	}

	var upstream *model.UpstreamError
	if errors.As(result.Error, &upstream) {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   upstream.Descriptor.UserMessage,
			Failure: result.Failure,
		})
		return nil, false
	}

	c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:    result.Error.Error(),
		Warnings: result.Warnings,
	})
	return nil, false
}

// Package api exposes the weather log over HTTP
package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"weatherlog.app/config"
	weathererr "weatherlog.app/errors"
	"weatherlog.app/models"
	"weatherlog.app/service"
)

// Server represents the HTTP server and API handler
type Server struct {
	router         *gin.Engine
	config         *config.Config
	weatherService service.WeatherLogServiceInterface
}

// NewServer creates and configures a new HTTP server
func NewServer(config *config.Config, weatherService service.WeatherLogServiceInterface) *Server {
	router := gin.Default()

	server := &Server{
		router:         router,
		config:         config,
		weatherService: weatherService,
	}

	server.setupRoutes()
	return server
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/weather", s.getWeather)
		api.GET("/forecast", s.getForecast)

		api.GET("/logs", s.getLogs)
		api.DELETE("/logs", s.clearLogs)
		api.GET("/logs/latest", s.getLatest)
		api.POST("/logs/synthetic", s.addSynthetic)
		api.POST("/logs/demo", s.loadDemo)

		api.GET("/stats", s.getStats)
		api.GET("/series", s.getSeries)
		api.GET("/alerts", s.getAlerts)
		api.GET("/conditions", s.getConditions)
		api.GET("/export", s.exportCSV)
	}

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// Start begins the HTTP server
func (s *Server) Start() error {
	return s.router.Run(fmt.Sprintf(":%d", s.config.Server.Port))
}

// GetRouter returns the router for testing purposes
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

func (s *Server) getWeather(c *gin.Context) {
	city := c.Query("city")
	if city == "" {
		s.handleError(c, weathererr.NewValidationError("city parameter is required"))
		return
	}

	slog.Debug("Getting weather for city", "city", city)
	obs, err := s.weatherService.FetchAndLog(c.Request.Context(), city)
	if err != nil {
		slog.Error("Weather service error", "error", err, "city", city)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, obs)
}

func (s *Server) getForecast(c *gin.Context) {
	city := c.Query("city")
	if city == "" {
		s.handleError(c, weathererr.NewValidationError("city parameter is required"))
		return
	}

	slog.Debug("Getting forecast for city", "city", city)
	points, err := s.weatherService.Forecast(c.Request.Context(), city)
	if err != nil {
		slog.Error("Forecast service error", "error", err, "city", city)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"city": city, "points": points})
}

func (s *Server) getLogs(c *gin.Context) {
	logs := s.weatherService.Logs()
	c.JSON(http.StatusOK, gin.H{"count": len(logs), "logs": logs})
}

func (s *Server) clearLogs(c *gin.Context) {
	s.weatherService.Clear()
	c.JSON(http.StatusOK, gin.H{"message": "Observation log cleared"})
}

func (s *Server) getLatest(c *gin.Context) {
	obs, ok := s.weatherService.Latest()
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "observation log is empty"})
		return
	}
	c.JSON(http.StatusOK, obs)
}

func (s *Server) addSynthetic(c *gin.Context) {
	var req models.SyntheticRequest
	if err := c.ShouldBind(&req); err != nil {
		slog.Error("Request binding error", "error", err)
		s.handleError(c, weathererr.NewValidationError("invalid request format"))
		return
	}

	obs, err := s.weatherService.AddSynthetic(req.City)
	if err != nil {
		slog.Error("Synthetic observation error", "error", err, "city", req.City)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, obs)
}

func (s *Server) loadDemo(c *gin.Context) {
	added := s.weatherService.LoadDemo()
	c.JSON(http.StatusCreated, gin.H{"count": len(added), "logs": added})
}

func (s *Server) getStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"stats": s.weatherService.Stats()})
}

func (s *Server) getSeries(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			s.handleError(c, weathererr.NewValidationError("limit must be an integer"))
			return
		}
		limit = parsed
	}

	c.JSON(http.StatusOK, gin.H{"series": s.weatherService.RecentSeries(limit)})
}

func (s *Server) getAlerts(c *gin.Context) {
	c.JSON(http.StatusOK, s.weatherService.Alerts())
}

func (s *Server) getConditions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"conditions": s.weatherService.Conditions()})
}

func (s *Server) exportCSV(c *gin.Context) {
	filename, data := s.weatherService.ExportCSV()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", data)
}

// handleError handles different types of application errors
func (s *Server) handleError(c *gin.Context, err error) {
	var appErr *weathererr.AppError
	var statusCode int
	var message string

	if errors.As(err, &appErr) {
		switch appErr.Type {
		case weathererr.ErrorTypeValidation:
			statusCode = http.StatusBadRequest
			message = appErr.Message
		case weathererr.ErrorTypeProviderRejected:
			statusCode = http.StatusBadRequest
			message = appErr.Message
		case weathererr.ErrorTypeTimeout:
			statusCode = http.StatusGatewayTimeout
			message = "Weather provider timed out"
		case weathererr.ErrorTypeNetwork:
			statusCode = http.StatusBadGateway
			message = "Weather provider unreachable"
		case weathererr.ErrorTypeMalformedResponse:
			statusCode = http.StatusBadGateway
			message = "Weather provider returned malformed data"
		case weathererr.ErrorTypeExternalAPI:
			statusCode = http.StatusServiceUnavailable
			message = "External service unavailable"
		case weathererr.ErrorTypeConfiguration:
			statusCode = http.StatusInternalServerError
			message = "Internal server error"
		default:
			statusCode = http.StatusInternalServerError
			message = "Internal server error"
		}
	} else {
		statusCode = http.StatusInternalServerError
		message = "Internal server error"
	}

	c.JSON(statusCode, models.ErrorResponse{Error: message})
}

package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"household/internal/domain"
	"household/internal/repository"
	"household/internal/service"
)

type Server struct {
	engine      *gin.Engine
	inventory   *service.InventoryService
	suggestions *service.SuggestionService
}

func NewServer(inventory *service.InventoryService, suggestions *service.SuggestionService) *Server {
	r := gin.New()
	r.Use(requestID(), requestLogger(), gin.Recovery())
	s := &Server{engine: r, inventory: inventory, suggestions: suggestions}
	s.registerRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes() {
	// Swagger UI
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	s.engine.GET("/healthz", s.health)

	v1 := s.engine.Group("/api/v1")
	{
		items := v1.Group("/items")
		items.POST("", s.createItem)
		items.GET("", s.listItems)
		items.GET(":id", s.getItem)

		logs := v1.Group("/logs")
		logs.POST("", s.createLog)
		logs.GET("", s.listLogs)

		v1.GET("/suggestions", s.getSuggestions)
		v1.GET("/forecast/:resource_type", s.getForecast)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Item handlers
type createItemReq struct {
	Name           string     `json:"name"`
	Quantity       float64    `json:"quantity"`
	Unit           string     `json:"unit"`
	Category       string     `json:"category"`
	ExpirationDate *time.Time `json:"expiration_date"`
}

// @Summary Create inventory item
// @Tags items
// @Accept json
// @Produce json
// @Param input body createItemReq true "Item"
// @Success 201 {object} domain.InventoryItem
// @Failure 400 {object} map[string]string
// @Router /items [post]
func (s *Server) createItem(c *gin.Context) {
	var req createItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	it := domain.InventoryItem{Name: req.Name, Quantity: req.Quantity, Unit: req.Unit, Category: req.Category}
	if req.ExpirationDate != nil {
		it.ExpirationDate = *req.ExpirationDate
	}
	created, err := s.inventory.CreateItem(c, it)
	if err != nil {
		status := mapErrorToStatus(err)
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// @Summary Get item by id
// @Tags items
// @Produce json
// @Param id path int true "Item ID"
// @Success 200 {object} domain.InventoryItem
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /items/{id} [get]
func (s *Server) getItem(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	it, err := s.inventory.GetItem(c, id)
	if err != nil {
		status := mapErrorToStatus(err)
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, it)
}

// @Summary List items
// @Tags items
// @Produce json
// @Param category query string false "Category"
// @Success 200 {array} domain.InventoryItem
// @Router /items [get]
func (s *Server) listItems(c *gin.Context) {
	list, err := s.inventory.ListItems(c, strings.TrimSpace(c.Query("category")))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, nonNil(list))
}

// Log handlers
type createLogReq struct {
	ItemID       int64      `json:"item_id"`
	Quantity     float64    `json:"quantity"`
	ResourceType string     `json:"resource_type"`
	Timestamp    *time.Time `json:"timestamp"`
}

// @Summary Log consumption
// @Description Stores the log and decrements the item quantity when the item exists.
// @Tags logs
// @Accept json
// @Produce json
// @Param input body createLogReq true "Consumption"
// @Success 201 {object} domain.ConsumptionLog
// @Failure 400 {object} map[string]string
// @Router /logs [post]
func (s *Server) createLog(c *gin.Context) {
	var req createLogReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	l := domain.ConsumptionLog{ItemID: req.ItemID, Quantity: req.Quantity, ResourceType: req.ResourceType}
	if req.Timestamp != nil {
		l.Timestamp = *req.Timestamp
	}
	created, err := s.inventory.LogConsumption(c, l)
	if err != nil {
		status := mapErrorToStatus(err)
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// @Summary List consumption logs
// @Tags logs
// @Produce json
// @Param resource_type query string false "Resource type"
// @Success 200 {array} domain.ConsumptionLog
// @Router /logs [get]
func (s *Server) listLogs(c *gin.Context) {
	list, err := s.inventory.ListLogs(c, strings.TrimSpace(c.Query("resource_type")))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, nonNil(list))
}

type suggestionsResp struct {
	Suggestions []string `json:"suggestions"`
}

// @Summary Household suggestions
// @Tags suggestions
// @Produce json
// @Success 200 {object} suggestionsResp
// @Failure 500 {object} map[string]string
// @Router /suggestions [get]
func (s *Server) getSuggestions(c *gin.Context) {
	list, err := s.suggestions.Suggest(c)
	if err != nil {
		status := mapErrorToStatus(err)
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, suggestionsResp{Suggestions: list})
}

type forecastResp struct {
	ResourceType   string   `json:"resource_type"`
	HasData        bool     `json:"has_data"`
	PredictedUsage *float64 `json:"predicted_usage,omitempty"`
	Message        string   `json:"message,omitempty"`
}

// @Summary Usage forecast
// @Tags forecast
// @Produce json
// @Param resource_type path string true "Resource type"
// @Success 200 {object} forecastResp
// @Failure 500 {object} map[string]string
// @Router /forecast/{resource_type} [get]
func (s *Server) getForecast(c *gin.Context) {
	rt := c.Param("resource_type")
	f, err := s.suggestions.PredictUsage(c, rt)
	if err != nil {
		status := mapErrorToStatus(err)
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	resp := forecastResp{ResourceType: rt, HasData: f.HasData()}
	if v, ok := f.Value(); ok {
		resp.PredictedUsage = &v
	} else {
		resp.Message = "No data available"
	}
	c.JSON(http.StatusOK, resp)
}

func parseID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

// nonNil отдаёт [] вместо null для пустых списков
func nonNil[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

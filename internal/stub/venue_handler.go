package stub

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"holidaze/internal/api"
	jwtsvc "holidaze/internal/pkg/jwt"
	"holidaze/internal/pkg/response"
)

type VenueHandler struct {
	db *gorm.DB
}

func NewVenueHandler(db *gorm.DB) *VenueHandler {
	return &VenueHandler{db: db}
}

func (h *VenueHandler) RegisterRoutes(r *gin.RouterGroup, jwt *jwtsvc.Service) {
	venues := r.Group("/holidaze/venues")
	{
		venues.GET("", h.List)
		venues.GET("/search", h.Search)
		venues.GET("/:id", h.Get)

		protected := venues.Group("")
		protected.Use(requireAuth(jwt))
		{
			protected.POST("", h.Create)
			protected.PUT("/:id", h.Update)
			protected.DELETE("/:id", h.Delete)
		}
	}
}

func (h *VenueHandler) List(c *gin.Context) {
	h.list(c, "")
}

func (h *VenueHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error(c, http.StatusBadRequest, "Query parameter q is required")
		return
	}
	h.list(c, q)
}

func (h *VenueHandler) list(c *gin.Context, search string) {
	limit, page := pageParams(c)

	query := h.db.WithContext(c.Request.Context()).Model(&Venue{})
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	sort := c.DefaultQuery("sort", "created")
	sortOrder := c.DefaultQuery("sortOrder", "desc")
	query = query.Order(orderClause(sort, sortOrder))

	var rows []Venue
	if err := query.Limit(limit).Offset((page - 1) * limit).Find(&rows).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	out := make([]api.Venue, 0, len(rows))
	for i := range rows {
		out = append(out, h.expand(c, &rows[i]))
	}

	response.DataWithMeta(c, http.StatusOK, out, paginationMeta(page, limit, total))
}

func (h *VenueHandler) Get(c *gin.Context) {
	var row Venue
	err := h.db.WithContext(c.Request.Context()).Where("id = ?", c.Param("id")).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.Error(c, http.StatusNotFound, "Venue not found")
		return
	}
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	response.Data(c, http.StatusOK, h.expand(c, &row))
}

func (h *VenueHandler) Create(c *gin.Context) {
	manager, ok := h.requireManager(c)
	if !ok {
		return
	}

	var req api.VenueRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" || req.MaxGuests < 1 {
		response.Error(c, http.StatusBadRequest, "Invalid venue body")
		return
	}

	row := Venue{
		ID:        uuid.NewString(),
		OwnerName: manager,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	row.applyRequest(req)

	if err := h.db.WithContext(c.Request.Context()).Create(&row).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	response.Data(c, http.StatusCreated, row.toAPI())
}

func (h *VenueHandler) Update(c *gin.Context) {
	manager, ok := h.requireManager(c)
	if !ok {
		return
	}

	var row Venue
	err := h.db.WithContext(c.Request.Context()).Where("id = ?", c.Param("id")).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.Error(c, http.StatusNotFound, "Venue not found")
		return
	}
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if row.OwnerName != manager {
		response.Error(c, http.StatusForbidden, "You do not own this venue")
		return
	}

	var req api.VenueRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" || req.MaxGuests < 1 {
		response.Error(c, http.StatusBadRequest, "Invalid venue body")
		return
	}

	row.applyRequest(req)
	row.UpdatedAt = time.Now().UTC()
	if err := h.db.WithContext(c.Request.Context()).Save(&row).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	response.Data(c, http.StatusOK, row.toAPI())
}

func (h *VenueHandler) Delete(c *gin.Context) {
	manager, ok := h.requireManager(c)
	if !ok {
		return
	}

	var row Venue
	err := h.db.WithContext(c.Request.Context()).Where("id = ?", c.Param("id")).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.Error(c, http.StatusNotFound, "Venue not found")
		return
	}
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if row.OwnerName != manager {
		response.Error(c, http.StatusForbidden, "You do not own this venue")
		return
	}

	// Bookings against the venue go with it.
	ctxDB := h.db.WithContext(c.Request.Context())
	if err := ctxDB.Where("venue_id = ?", row.ID).Delete(&Booking{}).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if err := ctxDB.Delete(&row).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.Status(http.StatusNoContent)
}

// requireManager resolves the caller and rejects non-managers.
func (h *VenueHandler) requireManager(c *gin.Context) (string, bool) {
	name := callerName(c)
	var user User
	if err := h.db.WithContext(c.Request.Context()).Where("name = ?", name).First(&user).Error; err != nil {
		response.Error(c, http.StatusUnauthorized, "Profile not found")
		return "", false
	}
	if !user.VenueManager {
		response.Error(c, http.StatusForbidden, "Only venue managers can manage venues")
		return "", false
	}
	return name, true
}

// expand attaches _owner / _bookings per the request's query flags.
func (h *VenueHandler) expand(c *gin.Context, row *Venue) api.Venue {
	out := row.toAPI()
	if c.Query("_owner") == "true" {
		out.Owner = lookupProfile(h.db.WithContext(c.Request.Context()), row.OwnerName)
	}
	if c.Query("_bookings") == "true" {
		var rows []Booking
		h.db.WithContext(c.Request.Context()).Where("venue_id = ?", row.ID).Find(&rows)
		out.Bookings = make([]api.Booking, 0, len(rows))
		for i := range rows {
			out.Bookings = append(out.Bookings, rows[i].toAPI())
		}
	}
	return out
}

func pageParams(c *gin.Context) (limit, page int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "100"))
	if limit < 1 || limit > 100 {
		limit = 100
	}
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	return limit, page
}

func orderClause(sort, sortOrder string) string {
	col := "created_at"
	switch sort {
	case "price":
		col = "price"
	case "name":
		col = "name"
	case "rating":
		col = "rating"
	}
	if sortOrder != "asc" {
		sortOrder = "desc"
	}
	return col + " " + sortOrder
}

func paginationMeta(page, limit int, total int64) api.Meta {
	pageCount := int((total + int64(limit) - 1) / int64(limit))
	meta := api.Meta{
		CurrentPage: page,
		PageCount:   pageCount,
		TotalCount:  int(total),
		IsFirstPage: page <= 1,
		IsLastPage:  page >= pageCount,
	}
	if page > 1 {
		prev := page - 1
		meta.PreviousPage = &prev
	}
	if page < pageCount {
		next := page + 1
		meta.NextPage = &next
	}
	return meta
}

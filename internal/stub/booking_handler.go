package stub

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"holidaze/internal/api"
	"holidaze/internal/availability"
	jwtsvc "holidaze/internal/pkg/jwt"
	"holidaze/internal/pkg/response"
)

type BookingHandler struct {
	db *gorm.DB
}

func NewBookingHandler(db *gorm.DB) *BookingHandler {
	return &BookingHandler{db: db}
}

func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup, jwt *jwtsvc.Service) {
	bookings := r.Group("/holidaze/bookings")
	bookings.Use(requireAuth(jwt))
	{
		bookings.GET("", h.List)
		bookings.POST("", h.Create)
		bookings.DELETE("/:id", h.Delete)
	}
}

// List returns the caller's own bookings plus bookings made against the
// caller's venues, which is what the manager dashboard reads.
func (h *BookingHandler) List(c *gin.Context) {
	name := callerName(c)
	ctxDB := h.db.WithContext(c.Request.Context())

	var venueIDs []string
	if err := ctxDB.Model(&Venue{}).Where("owner_name = ?", name).Pluck("id", &venueIDs).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	query := ctxDB.Where("customer_name = ?", name)
	if len(venueIDs) > 0 {
		query = ctxDB.Where("customer_name = ? OR venue_id IN ?", name, venueIDs)
	}

	var rows []Booking
	if err := query.Order("date_from asc").Find(&rows).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	out := make([]api.Booking, 0, len(rows))
	for i := range rows {
		out = append(out, h.expand(c, &rows[i]))
	}
	response.Data(c, http.StatusOK, out)
}

type bookingBody struct {
	DateFrom time.Time `json:"dateFrom" binding:"required"`
	DateTo   time.Time `json:"dateTo" binding:"required"`
	Guests   int       `json:"guests" binding:"required,gte=1"`
	VenueID  string    `json:"venueId" binding:"required"`
}

func (h *BookingHandler) Create(c *gin.Context) {
	var req bookingBody
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid booking body")
		return
	}
	if !req.DateFrom.Before(req.DateTo) {
		response.Error(c, http.StatusBadRequest, "dateFrom must be before dateTo")
		return
	}

	ctxDB := h.db.WithContext(c.Request.Context())

	var venue Venue
	err := ctxDB.Where("id = ?", req.VenueID).First(&venue).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.Error(c, http.StatusNotFound, "Venue not found")
		return
	}
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if req.Guests > venue.MaxGuests {
		response.Error(c, http.StatusBadRequest, "Guest count exceeds venue capacity")
		return
	}

	// The stub is the booking authority: reject date conflicts here no
	// matter what the client pre-checked.
	var existing []Booking
	if err := ctxDB.Where("venue_id = ?", venue.ID).Find(&existing).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	ranges := make([]availability.Range, 0, len(existing))
	for _, b := range existing {
		ranges = append(ranges, availability.RangeOf(b.DateFrom, b.DateTo))
	}
	if availability.Overlaps(req.DateFrom, req.DateTo, ranges) {
		response.Error(c, http.StatusConflict, "The selected dates overlap with an existing booking")
		return
	}

	row := Booking{
		ID:           uuid.NewString(),
		DateFrom:     req.DateFrom,
		DateTo:       req.DateTo,
		Guests:       req.Guests,
		VenueID:      venue.ID,
		CustomerName: callerName(c),
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	if err := ctxDB.Create(&row).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	response.Data(c, http.StatusCreated, row.toAPI())
}

func (h *BookingHandler) Delete(c *gin.Context) {
	ctxDB := h.db.WithContext(c.Request.Context())

	var row Booking
	err := ctxDB.Where("id = ?", c.Param("id")).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.Error(c, http.StatusNotFound, "Booking not found")
		return
	}
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	name := callerName(c)
	if row.CustomerName != name && !h.ownsVenue(c, name, row.VenueID) {
		response.Error(c, http.StatusForbidden, "You cannot cancel this booking")
		return
	}

	if err := ctxDB.Delete(&row).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BookingHandler) ownsVenue(c *gin.Context, name, venueID string) bool {
	var count int64
	h.db.WithContext(c.Request.Context()).Model(&Venue{}).
		Where("id = ? AND owner_name = ?", venueID, name).
		Count(&count)
	return count > 0
}

func (h *BookingHandler) expand(c *gin.Context, row *Booking) api.Booking {
	out := row.toAPI()
	ctxDB := h.db.WithContext(c.Request.Context())
	if c.Query("_venue") == "true" {
		var venue Venue
		if err := ctxDB.Where("id = ?", row.VenueID).First(&venue).Error; err == nil {
			v := venue.toAPI()
			out.Venue = &v
		}
	}
	if c.Query("_customer") == "true" {
		out.Customer = lookupProfile(ctxDB, row.CustomerName)
	}
	return out
}

package stub

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"holidaze/internal/api"
	jwtsvc "holidaze/internal/pkg/jwt"
	"holidaze/internal/pkg/response"
)

type ProfileHandler struct {
	db *gorm.DB
}

func NewProfileHandler(db *gorm.DB) *ProfileHandler {
	return &ProfileHandler{db: db}
}

func (h *ProfileHandler) RegisterRoutes(r *gin.RouterGroup, jwt *jwtsvc.Service) {
	profiles := r.Group("/holidaze/profiles")
	profiles.Use(requireAuth(jwt))
	{
		profiles.GET("/:name", h.Get)
		profiles.PUT("/:name", h.Update)
	}
}

func (h *ProfileHandler) Get(c *gin.Context) {
	ctxDB := h.db.WithContext(c.Request.Context())

	var user User
	err := ctxDB.Where("name = ?", c.Param("name")).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.Error(c, http.StatusNotFound, "No profile with this name")
		return
	}
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	profile := user.toProfile()

	var venueCount, bookingCount int64
	ctxDB.Model(&Venue{}).Where("owner_name = ?", user.Name).Count(&venueCount)
	ctxDB.Model(&Booking{}).Where("customer_name = ?", user.Name).Count(&bookingCount)
	profile.Count = &api.ItemCount{Venues: int(venueCount), Bookings: int(bookingCount)}

	if c.Query("_venues") == "true" {
		var rows []Venue
		ctxDB.Where("owner_name = ?", user.Name).Find(&rows)
		profile.Venues = make([]api.Venue, 0, len(rows))
		for i := range rows {
			profile.Venues = append(profile.Venues, rows[i].toAPI())
		}
	}
	if c.Query("_bookings") == "true" {
		var rows []Booking
		ctxDB.Where("customer_name = ?", user.Name).Order("date_from asc").Find(&rows)
		profile.Bookings = make([]api.Booking, 0, len(rows))
		for i := range rows {
			b := rows[i].toAPI()
			var venue Venue
			if err := ctxDB.Where("id = ?", rows[i].VenueID).First(&venue).Error; err == nil {
				v := venue.toAPI()
				b.Venue = &v
			}
			profile.Bookings = append(profile.Bookings, b)
		}
	}

	response.Data(c, http.StatusOK, profile)
}

type profileUpdateBody struct {
	Bio          *string    `json:"bio"`
	Avatar       *api.Media `json:"avatar"`
	Banner       *api.Media `json:"banner"`
	VenueManager *bool      `json:"venueManager"`
}

func (h *ProfileHandler) Update(c *gin.Context) {
	name := c.Param("name")
	if name != callerName(c) {
		response.Error(c, http.StatusForbidden, "You can only update your own profile")
		return
	}

	var req profileUpdateBody
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctxDB := h.db.WithContext(c.Request.Context())

	var user User
	if err := ctxDB.Where("name = ?", name).First(&user).Error; err != nil {
		response.Error(c, http.StatusNotFound, "No profile with this name")
		return
	}

	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Avatar != nil {
		user.AvatarURL = req.Avatar.URL
		user.AvatarAlt = req.Avatar.Alt
	}
	if req.Banner != nil {
		user.BannerURL = req.Banner.URL
		user.BannerAlt = req.Banner.Alt
	}
	if req.VenueManager != nil {
		user.VenueManager = *req.VenueManager
	}

	if err := ctxDB.Save(&user).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	response.Data(c, http.StatusOK, user.toProfile())
}

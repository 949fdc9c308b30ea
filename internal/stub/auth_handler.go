package stub

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"holidaze/internal/api"
	jwtsvc "holidaze/internal/pkg/jwt"
	"holidaze/internal/pkg/response"
)

type AuthHandler struct {
	db  *gorm.DB
	jwt *jwtsvc.Service
}

func NewAuthHandler(db *gorm.DB, jwt *jwtsvc.Service) *AuthHandler {
	return &AuthHandler{db: db, jwt: jwt}
}

func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}
}

type registerBody struct {
	Name         string `json:"name" binding:"required,min=3"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	VenueManager bool   `json:"venueManager"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerBody
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing User
	err := h.db.WithContext(c.Request.Context()).
		Where("name = ? OR email = ?", name, email).
		First(&existing).Error
	if err == nil {
		response.Error(c, http.StatusBadRequest, "Profile already exists")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	user := User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		VenueManager: req.VenueManager,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&user).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	response.Data(c, http.StatusCreated, user.toProfile())
}

type loginBody struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginBody
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	var user User
	err := h.db.WithContext(c.Request.Context()).
		Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).
		First(&user).Error
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		response.Error(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := h.jwt.GenerateToken(user.Name)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	// The login payload is the profile plus the token; venueManager rides
	// along when the caller asks for the holidaze view.
	profile := user.toProfile()
	payload := gin.H{
		"name":        profile.Name,
		"email":       profile.Email,
		"bio":         profile.Bio,
		"accessToken": token,
	}
	if profile.Avatar != nil {
		payload["avatar"] = profile.Avatar
	}
	if profile.Banner != nil {
		payload["banner"] = profile.Banner
	}
	if c.Query("_holidaze") == "true" {
		payload["venueManager"] = profile.VenueManager
	}

	response.Data(c, http.StatusOK, payload)
}

// lookupProfile is shared by handlers that expand owner/customer fields.
func lookupProfile(db *gorm.DB, name string) *api.Profile {
	var user User
	if err := db.Where("name = ?", name).First(&user).Error; err != nil {
		return nil
	}
	p := user.toProfile()
	return &p
}

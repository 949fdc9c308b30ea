// Package stub is a local stand-in for the remote Holidaze API: the same
// endpoints, envelopes, and status codes, backed by sqlite. It exists for
// offline development and the e2e suite; it is not a product backend.
package stub

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	jwtsvc "holidaze/internal/pkg/jwt"
)

// NewRouter wires the stub's handlers onto a gin engine.
func NewRouter(db *gorm.DB, jwt *jwtsvc.Service) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	root := r.Group("")
	{
		NewAuthHandler(db, jwt).RegisterRoutes(root)
		NewVenueHandler(db).RegisterRoutes(root, jwt)
		NewBookingHandler(db).RegisterRoutes(root, jwt)
		NewProfileHandler(db).RegisterRoutes(root, jwt)
	}

	return r
}

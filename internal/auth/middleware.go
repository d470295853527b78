package auth

import (
	"errors"
	"net/http"

	"github.com/aura-finance/backend/internal/httperror"
	"github.com/aura-finance/backend/internal/models"
	"github.com/aura-finance/backend/internal/store"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const userKey = "aura-user"

// Middleware rejects requests without a valid session for an existing user
// with 401 and stores the user in the context otherwise.
func (s Sessions) Middleware(users store.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(CookieName)
		if err != nil || token == "" {
			abort(c, ErrUnauthorized)
			return
		}

		id, err := s.Parse(token)
		if err != nil {
			log.Debug().Str("request-id", requestid.Get(c)).Err(err).Msg("Session")
			abort(c, err)
			return
		}

		user, err := users.ByID(c.Request.Context(), id)
		if errors.Is(err, models.ErrResourceNotFound) {
			abort(c, ErrUnauthorized)
			return
		} else if err != nil {
			log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
			c.AbortWithStatusJSON(http.StatusInternalServerError, httperror.New(httperror.KindInternal, models.ErrGeneral))
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// User returns the user stored by the Middleware.
func User(c *gin.Context) models.User {
	return c.MustGet(userKey).(models.User)
}

func abort(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, httperror.New(httperror.KindUnauthorized, err))
}

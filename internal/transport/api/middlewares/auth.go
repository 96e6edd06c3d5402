package middlewares

import (
	"errors"
	"net/http"

	"github.com/fsdevblog/tably/internal/domain"
	"github.com/fsdevblog/tably/internal/transport/api/tokens"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var ErrTokenNotExist = errors.New("token not exist")

const (
	CurrentUserIDKey    = "currentUserID"
	CurrentAccessLvlKey = "currentAccessLevel"
	authorizationHeader = "Authorization"
	bearerSchemePrefix  = "Bearer "
)

// checkAuthorization извлекает токен из заголовка Authorization и проверяет его.
// Если токен не передан, вернется ошибка ErrTokenNotExist.
func checkAuthorization(c *gin.Context, jwtTokenSecret []byte) (*jwt.Token, error) {
	tokenHeader := c.GetHeader(authorizationHeader)

	if len(tokenHeader) < len(bearerSchemePrefix) || tokenHeader[:len(bearerSchemePrefix)] != bearerSchemePrefix {
		return nil, ErrTokenNotExist
	}

	tokenStr := tokenHeader[len(bearerSchemePrefix):]
	token, err := tokens.ValidateUserJWT(tokenStr, jwtTokenSecret)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return token, nil
}

// AuthRequired проверяет, что запрос авторизован. Записывает в контекст id субъекта
// (CurrentUserIDKey) и его уровень доступа (CurrentAccessLvlKey).
func AuthRequired(jwtTokenSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := checkAuthorization(c, jwtTokenSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			if !errors.Is(err, ErrTokenNotExist) {
				_ = c.Error(err).SetType(gin.ErrorTypePrivate)
			}
			return
		}
		userClaim, ok := token.Claims.(*tokens.UserClaims)
		if !ok {
			_ = c.AbortWithError(http.StatusInternalServerError, errors.New("invalid jwt claims type")).
				SetType(gin.ErrorTypePrivate)
			return
		}
		c.Set(CurrentUserIDKey, userClaim.ID)
		c.Set(CurrentAccessLvlKey, userClaim.AccessLevel)
		c.Next()
	}
}

// StaffRequired пропускает только субъектов с уровнем доступа staff. Одобрение займов
// и прочие действия персонала без этого уровня — domain.ErrUnauthorized.
func StaffRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		level, ok := c.Get(CurrentAccessLvlKey)
		if !ok || level != domain.AccessLevelStaff {
			_ = c.Error(domain.ErrUnauthorized).SetType(gin.ErrorTypePrivate)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "staff access required"})
			return
		}
		c.Next()
	}
}

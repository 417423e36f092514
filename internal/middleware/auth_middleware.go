package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"go-procurement/internal/domain"
	"go-procurement/internal/shared/apperror"
	"go-procurement/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ContextUserID = "user_id"
	ContextRole   = "role"
	ContextActor  = "actor"
)

var (
	errTokenMissing = apperror.New(apperror.CodeUnauthorized, "Token not found", http.StatusUnauthorized)
	errTokenInvalid = apperror.New("INVALID_TOKEN", "Invalid token", http.StatusUnauthorized)
	errTokenExpired = apperror.New("TOKEN_EXPIRED", "Token has expired", http.StatusUnauthorized)
	errClaims       = apperror.New("INVALID_TOKEN", "Token is missing user_id or role", http.StatusUnauthorized)
)

// AuthMiddleware verifies an HS256 bearer token (or the access_token cookie)
// and stores the caller as a domain.Actor on the gin context.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}
		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}
		if tokenString == "" {
			abortWithError(c, errTokenMissing)
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortWithError(c, errTokenExpired)
				return
			}
			abortWithError(c, errTokenInvalid)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortWithError(c, errTokenInvalid)
			return
		}

		actor, ok := actorFromClaims(claims)
		if !ok {
			abortWithError(c, errClaims)
			return
		}

		c.Set(ContextUserID, actor.UserID)
		c.Set(ContextRole, string(actor.Role))
		c.Set(ContextActor, actor)

		c.Next()
	}
}

func actorFromClaims(claims jwt.MapClaims) (domain.Actor, bool) {
	var userID int64
	switch v := claims["user_id"].(type) {
	case float64:
		userID = int64(v)
	case string:
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return domain.Actor{}, false
		}
		userID = id
	default:
		return domain.Actor{}, false
	}

	rawRole, _ := claims["role"].(string)
	role, ok := domain.ParseRole(rawRole)
	if !ok {
		return domain.Actor{}, false
	}

	actor := domain.Actor{UserID: userID, Role: role}
	return actor, actor.Valid()
}

// ActorFromContext returns the caller stored by AuthMiddleware.
func ActorFromContext(c *gin.Context) (domain.Actor, bool) {
	v, ok := c.Get(ContextActor)
	if !ok {
		return domain.Actor{}, false
	}
	actor, ok := v.(domain.Actor)
	return actor, ok
}

// SetActor is used by handlers tests and internal callers that bypass JWT.
func SetActor(c *gin.Context, actor domain.Actor) {
	c.Set(ContextUserID, actor.UserID)
	c.Set(ContextRole, string(actor.Role))
	c.Set(ContextActor, actor)
}

func abortWithError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
	c.Abort()
}

package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"poll-service/internal/models"
	"poll-service/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const identityContextKey = contextKey("identity")

// VoterTokenHeader carries a caller-supplied token identifying an
// anonymous voter on polls that allow anonymous voting.
const VoterTokenHeader = "X-Voter-Token"

// JWTAuth middleware for JWT authentication. Rejects requests without
// a valid bearer token.
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Err("UNAUTHORIZED", "authorization token required"))
			return
		}

		identity, err := parseIdentity(tokenString, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Err("UNAUTHORIZED", "invalid or expired token"))
			return
		}

		setIdentity(c, identity)
		c.Next()
	}
}

// OptionalAuth resolves an identity when one is available but never
// rejects. A valid bearer token yields an authenticated identity; the
// X-Voter-Token header yields an unauthenticated one. Admission
// decides whether that is enough for the target poll.
func OptionalAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString := extractToken(c); tokenString != "" {
			if identity, err := parseIdentity(tokenString, secret); err == nil {
				setIdentity(c, identity)
				c.Next()
				return
			}
		}
		if voterToken := c.GetHeader(VoterTokenHeader); voterToken != "" {
			setIdentity(c, &models.Identity{UserID: voterToken, IsAuthenticated: false})
		}
		c.Next()
	}
}

func parseIdentity(tokenString, secret string) (*models.Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, errors.New("missing subject claim")
	}

	return &models.Identity{UserID: sub, IsAuthenticated: true}, nil
}

func setIdentity(c *gin.Context, identity *models.Identity) {
	ctx := context.WithValue(c.Request.Context(), identityContextKey, identity)
	c.Request = c.Request.WithContext(ctx)
}

// GetIdentityFromContext retrieves the request identity. Returns an
// empty unauthenticated identity when none was resolved.
func GetIdentityFromContext(ctx context.Context) *models.Identity {
	identity, ok := ctx.Value(identityContextKey).(*models.Identity)
	if !ok {
		return &models.Identity{}
	}
	return identity
}

func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && bearerToken[:7] == "Bearer " {
		return bearerToken[7:]
	}
	return ""
}

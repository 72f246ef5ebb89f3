package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the identity asserted by the external authentication
// provider. The email is the only identity attribute this backend trusts;
// there is no local account record behind it.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func parseBearerToken(c *gin.Context) (*Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, false
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return nil, false
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.Email == "" {
		return nil, false
	}

	return claims, true
}

// AuthMiddleware requires a valid identity token and stores the verified
// email in the request context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseBearerToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or missing identity token"})
			c.Abort()
			return
		}

		c.Set("email", claims.Email)
		c.Next()
	}
}

// OptionalAuthMiddleware extracts the verified email when a valid identity
// token is present, but lets anonymous requests through. Handlers downstream
// decide how much of a record such callers may see.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := parseBearerToken(c); ok {
			c.Set("email", claims.Email)
		}
		c.Next()
	}
}

// CallerEmail returns the verified identity email for the request, if any.
func CallerEmail(c *gin.Context) string {
	if email, exists := c.Get("email"); exists {
		if s, ok := email.(string); ok {
			return s
		}
	}
	return ""
}

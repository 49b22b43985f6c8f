package middleware

import (
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"

	"github.com/kabsu-me/kabsu-be/db"
	"github.com/kabsu-me/kabsu-be/model"
)

const (
	TOKEN_KEY = "authToken"
	USER_KEY  = "user"
)

type AuthConfig struct {
	sessionNotRequired bool
	accountNotRequired bool
}

// OptionalAccount allows requests whose token verified but that have no
// local profile yet (the profile-creation route itself).
func OptionalAccount() *AuthConfig {
	return &AuthConfig{accountNotRequired: true}
}

// GenAuth verifies the bearer ID token, loads the local account and stores
// both in the request context. Banned accounts are rejected outright.
func GenAuth(userDB db.UserDatabase, authClient *auth.Client, config *AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authorizationHeader, ok := c.Request.Header["Authorization"]
		if !ok || len(authorizationHeader) == 0 {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "no authorization header",
			})
			c.Abort()
			return
		}
		if strings.Index(authorizationHeader[0], "Bearer ") != 0 || len(authorizationHeader[0]) < 8 {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "incorrectly formatted authorization header",
			})
			c.Abort()
			return
		}
		token, err := authClient.VerifyIDToken(c, authorizationHeader[0][7:])

		c.Set(TOKEN_KEY, token)

		if err != nil {
			if config.sessionNotRequired {
				return
			}
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "invalid token",
			})
			c.Abort()
			return
		}

		user, err := userDB.GetUser(c, token.UID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "database error",
			})
			c.Abort()
			return
		}
		if user == nil {
			if config.accountNotRequired {
				return
			}
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "must have a user profile",
			})
			c.Abort()
			return
		}
		if user.BannedAt != nil {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "account banned",
			})
			c.Abort()
			return
		}
		c.Set(USER_KEY, user)
	}
}

// RequireAccount aborts requests that passed GenAuth without a loaded profile.
func RequireAccount() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetUserMaybe(c) == nil {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "must have a user profile",
			})
			c.Abort()
		}
	}
}

func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := GetUserMaybe(c)
		if user == nil || !user.IsAdmin {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "admin only",
			})
			c.Abort()
		}
	}
}

func MustGetToken(c *gin.Context) *auth.Token {
	token, _ := c.Get(TOKEN_KEY)
	return token.(*auth.Token)
}

func MustGetUser(c *gin.Context) *model.User {
	user, _ := c.Get(USER_KEY)
	return user.(*model.User)
}

func GetUserMaybe(c *gin.Context) *model.User {
	user, exists := c.Get(USER_KEY)
	if !exists {
		return nil
	}
	return user.(*model.User)
}

func GetUserIdMaybe(c *gin.Context) string {
	user := GetUserMaybe(c)
	if user == nil {
		return ""
	}
	return user.Id
}

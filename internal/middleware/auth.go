package middleware

import (
	"crypto/subtle"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/crypto/bcrypt"
)

// AdminBasicAuth protects the admin pages with a single bcrypt-hashed
// password. An empty hash disables the check.
func AdminBasicAuth(username, passwordHash string) echo.MiddlewareFunc {
	if passwordHash == "" {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}

	return echomw.BasicAuthWithConfig(echomw.BasicAuthConfig{
		Realm: "admin",
		Validator: func(user, password string, c echo.Context) (bool, error) {
			if subtle.ConstantTimeCompare([]byte(user), []byte(username)) != 1 {
				return false, nil
			}

			return bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)) == nil, nil
		},
	})
}

package server

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"blogicum/internal/cache"
	"blogicum/internal/middleware"
	"blogicum/internal/models"
	"blogicum/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	sessionCookie = "access_token"
	tokenIssuer   = "blogicum-api"
	tokenAudience = "blogicum-client"
	tokenTTL      = 7 * 24 * time.Hour
)

// tokenClaims is the identity carried by a verified token.
type tokenClaims struct {
	UserID    uint
	JTI       string
	ExpiresAt time.Time
}

// Signup handles POST /api/auth/signup
// @Summary User signup
// @Description Register a new user account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body validation.SignupForm true "Signup request"
// @Success 201 {object} object{token=string,user=models.User}
// @Failure 400 {object} models.ErrorResponse
// @Router /auth/signup [post]
func (s *Server) Signup(c *fiber.Ctx) error {
	var form validation.SignupForm
	if err := bindForm(c, &form); err != nil {
		return nil
	}

	user, err := s.userService.Register(c.UserContext(), form)
	if err != nil {
		return respondServiceError(c, err)
	}

	token, expiresAt, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	s.setSessionCookie(c, token, expiresAt)
	recordMutation("user", "create")

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// LoginPage handles GET /api/auth/login, the entry point anonymous users are
// redirected to.
// @Summary Login entry point
// @Tags auth
// @Produce json
// @Param next query string false "Path to return to after login"
// @Success 200 {object} object{message=string,next=string}
// @Router /auth/login [get]
func (s *Server) LoginPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Login required",
		"next":    safeNext(c.Query("next")),
	})
}

// Login handles POST /api/auth/login
// @Summary User login
// @Description Authenticate and receive a JWT. With ?next= the response redirects there.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body validation.LoginForm true "Login credentials"
// @Success 200 {object} object{token=string,user=models.User}
// @Success 303
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var form validation.LoginForm
	if err := bindForm(c, &form); err != nil {
		return nil
	}

	user, err := s.userService.Authenticate(c.UserContext(), form)
	if err != nil {
		return respondServiceError(c, err)
	}

	token, expiresAt, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	s.setSessionCookie(c, token, expiresAt)

	if next := safeNext(c.Query("next")); next != "" {
		return seeOther(c, next)
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Logout handles POST /api/auth/logout
// @Summary Logout
// @Description Revoke the current token and clear the session cookie
// @Tags auth
// @Produce json
// @Success 200 {object} object{message=string}
// @Router /auth/logout [post]
func (s *Server) Logout(c *fiber.Ctx) error {
	if claims, ok := c.Locals("tokenClaims").(*tokenClaims); ok {
		if s.redis == nil {
			middleware.Logger.WarnContext(c.UserContext(), "redis unavailable, token not revoked")
		} else if err := cache.RevokeToken(c.UserContext(), s.redis, claims.JTI, claims.ExpiresAt); err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(fiber.Map{"message": "Logged out"})
}

// generateToken creates a JWT token for the given user ID and username
func (s *Server) generateToken(userID uint, username string) (string, time.Time, error) {
	if s.config.JWTSecret == "" {
		return "", time.Time{}, fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	expiresAt := now.Add(tokenTTL)
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(userID), 10),
		"username": username,
		"iss":      tokenIssuer,
		"aud":      tokenAudience,
		"exp":      expiresAt.Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"jti":      uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.JWTSecret))
	return signed, expiresAt, err
}

// parseToken verifies signature, issuer, audience and revocation.
func (s *Server) parseToken(ctx context.Context, tokenString string) (*tokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	if issuer, _ := claims["iss"].(string); issuer != tokenIssuer {
		return nil, errors.New("invalid token issuer")
	}
	if audience, _ := claims["aud"].(string); audience != tokenAudience {
		return nil, errors.New("invalid token audience")
	}

	sub, _ := claims["sub"].(string)
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil || userID == 0 {
		return nil, errors.New("invalid subject claim")
	}

	out := &tokenClaims{UserID: uint(userID)}
	out.JTI, _ = claims["jti"].(string)
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}

	revoked, err := cache.IsTokenRevoked(ctx, s.redis, out.JTI)
	if err != nil {
		// Store errors fail open.
		middleware.Logger.WarnContext(ctx, "revocation check failed", "error", err)
	} else if revoked {
		return nil, errors.New("token has been revoked")
	}
	return out, nil
}

func (s *Server) setSessionCookie(c *fiber.Ctx, token string, expiresAt time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HTTPOnly: true,
		Secure:   s.config.IsProduction(),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func bearerToken(c *fiber.Ctx) string {
	parts := strings.Split(c.Get("Authorization"), " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// safeNext keeps only same-site absolute paths.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, "\\") {
		return ""
	}
	return next
}

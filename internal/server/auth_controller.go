package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nee-commerce/backend/internal/models"
	"github.com/nee-commerce/backend/internal/usecase"
)

type AuthController interface {
	Signup(c echo.Context) error
	Login(c echo.Context) error
	Me(c echo.Context) error
	Logout(c echo.Context) error
}

type authController struct {
	auth usecase.AuthUsecase
}

func NewAuthController(auth usecase.AuthUsecase) AuthController {
	return &authController{auth: auth}
}

func (ac *authController) Signup(c echo.Context) error {
	var req models.SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := ac.auth.Signup(c.Request().Context(), req)
	if errors.Is(err, models.ErrEmailTaken) {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, user)
}

func (ac *authController) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	userAgent := c.Request().Header.Get("User-Agent")
	resp, err := ac.auth.Login(c.Request().Context(), req, userAgent, c.RealIP())
	if errors.Is(err, models.ErrInvalidCredentials) {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, resp)
}

func (ac *authController) Me(c echo.Context) error {
	user := c.Get("user").(*models.User)
	return c.JSON(http.StatusOK, user)
}

func (ac *authController) Logout(c echo.Context) error {
	token, err := bearerTokenFromHeader(c)
	if err != nil {
		return err
	}

	if err := ac.auth.RevokeToken(c.Request().Context(), token); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "success",
		"message": "logged out successfully",
	})
}

func bearerTokenFromHeader(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, "missing authorization header")
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == authHeader {
		return "", echo.NewHTTPError(http.StatusBadRequest, "invalid authorization header format")
	}
	return token, nil
}

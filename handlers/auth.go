package handlers

import (
	"net/http"

	"lexdesk/logger"
	"lexdesk/middleware"
	"lexdesk/models"
	"lexdesk/services"

	"github.com/labstack/echo/v4"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int64        `json:"expires_in"`
	User      *models.User `json:"user"`
}

// LoginHandler exchanges credentials for a session token. The token is
// returned in the body and set as a cookie.
func (a *API) LoginHandler(c echo.Context) error {
	var req loginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	sess, err := a.svc.Auth.LoginFrom(c.Request().Context(), req.Username, req.Password, c.RealIP())
	if err != nil {
		return apiError(err)
	}
	token, err := a.sessions.Start(sess)
	if err != nil {
		return apiError(err)
	}

	middleware.SetSessionCookie(c, token, a.cfg.SessionTTL)
	return c.JSON(http.StatusOK, loginResponse{
		Token:     token,
		ExpiresIn: int64(a.cfg.SessionTTL.Seconds()),
		User:      sess.Current(),
	})
}

// LogoutHandler ends the current session
func (a *API) LogoutHandler(c echo.Context) error {
	a.svc.Auth.Logout(sessionOf(c))
	a.sessions.End(middleware.GetToken(c))
	middleware.ClearSessionCookie(c)
	return c.NoContent(http.StatusNoContent)
}

// MeHandler returns the logged-in user
func (a *API) MeHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, middleware.GetCurrentUser(c))
}

type changePasswordRequest struct {
	Current string `json:"current_password"`
	New     string `json:"new_password"`
}

// ChangePasswordHandler changes the password of the user in the path. Users
// change their own; admins may reset anyone's.
func (a *API) ChangePasswordHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req changePasswordRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	sess := sessionOf(c)
	if err := a.svc.Users.ChangePassword(c.Request().Context(), sess, id, req.Current, req.New); err != nil {
		return apiError(err)
	}
	logger.Security().Infow("password changed", "user_id", id, "by", sess.UserID())
	return c.NoContent(http.StatusNoContent)
}

type createUserRequest struct {
	Username string  `json:"username"`
	Password string  `json:"password"`
	FullName string  `json:"full_name"`
	Email    *string `json:"email"`
	Role     string  `json:"role"`
}

func (a *API) ListUsersHandler(c echo.Context) error {
	users, err := a.svc.Users.List(c.Request().Context(), sessionOf(c))
	if err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusOK, users)
}

func (a *API) CreateUserHandler(c echo.Context) error {
	var req createUserRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	u, err := a.svc.Users.Create(c.Request().Context(), sessionOf(c), services.NewUser{
		Username: req.Username,
		Password: req.Password,
		FullName: req.FullName,
		Email:    req.Email,
		Role:     req.Role,
	})
	if err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusCreated, u)
}

type activeRequest struct {
	Active bool `json:"active"`
}

func (a *API) SetUserActiveHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req activeRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := a.svc.Users.SetActive(c.Request().Context(), sessionOf(c), id, req.Active); err != nil {
		return apiError(err)
	}
	if !req.Active {
		if n := a.sessions.EndUser(id); n > 0 {
			logger.Security().Infow("ended sessions of deactivated user", "user_id", id, "sessions", n)
		}
	}
	return c.NoContent(http.StatusNoContent)
}

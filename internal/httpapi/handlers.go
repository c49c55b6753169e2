package httpapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/simre/results-server/internal/repository/models"
	"github.com/simre/results-server/internal/service"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      models.User `json:"user"`
}

// bindAndValidate decodes the request body into dst and validates it.
func (s *Server) bindAndValidate(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return err
	}
	return c.Validate(dst)
}

func (s *Server) login(c echo.Context) error {
	var req loginRequest
	if err := s.bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := s.opts.Auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loginResponse{
		Token:     res.Token,
		ExpiresAt: res.Session.ExpiresAt,
		User:      res.User,
	})
}

type meResponse struct {
	User      models.User `json:"user"`
	ExpiresAt time.Time   `json:"expires_at"`
}

func (s *Server) me(c echo.Context) error {
	session, err := sessionFrom(c)
	if err != nil {
		return err
	}
	user, err := s.opts.Auth.CurrentUser(c.Request().Context(), session)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, meResponse{User: user, ExpiresAt: session.ExpiresAt})
}

func (s *Server) listSchools(c echo.Context) error {
	schools, err := s.opts.Schools.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, schools)
}

func (s *Server) createSchool(c echo.Context) error {
	session, err := sessionFrom(c)
	if err != nil {
		return err
	}

	var in service.CreateSchoolInput
	if err := s.bindAndValidate(c, &in); err != nil {
		return err
	}

	ctx := c.Request().Context()
	school, err := s.opts.Schools.Create(ctx, session, in)
	if err != nil {
		return err
	}

	s.invalidate(ctx, school.ID)
	return c.JSON(http.StatusCreated, school)
}

func (s *Server) deleteSchool(c echo.Context) error {
	session, err := sessionFrom(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	id := c.Param("id")
	if err := s.opts.Schools.Delete(ctx, session, id); err != nil {
		return err
	}

	s.invalidate(ctx, id)
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) listResults(c echo.Context) error {
	results, err := s.opts.Results.ListBySchool(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, results)
}

func (s *Server) createResult(c echo.Context) error {
	session, err := sessionFrom(c)
	if err != nil {
		return err
	}

	var in service.CreateResultInput
	if err := s.bindAndValidate(c, &in); err != nil {
		return err
	}

	ctx := c.Request().Context()
	schoolID := c.Param("id")
	result, err := s.opts.Results.Create(ctx, session, schoolID, in)
	if err != nil {
		return err
	}

	s.invalidate(ctx, schoolID)
	return c.JSON(http.StatusCreated, result)
}

func (s *Server) deleteResult(c echo.Context) error {
	session, err := sessionFrom(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	result, err := s.opts.Results.Delete(ctx, session, c.Param("id"))
	if err != nil {
		return err
	}

	s.invalidate(ctx, result.SchoolID)
	return c.NoContent(http.StatusNoContent)
}

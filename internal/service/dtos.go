package service

import (
	"github.com/simre/results-server/internal/analytics"
	"github.com/simre/results-server/internal/auth"
	"github.com/simre/results-server/internal/repository/models"
)

// ChartSeries is one chart of the school dashboard, ready to be drawn.
type ChartSeries struct {
	Key    analytics.SeriesKey
	Title  string
	Scale  analytics.Scale
	Points []analytics.PlotPoint
}

type CreateSchoolInput struct {
	Name     string `json:"name" validate:"required,max=200"`
	INEPCode string `json:"inep_code" validate:"omitempty,numeric,len=8"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type CreateResultInput struct {
	Assessment string   `json:"assessment" validate:"required,max=100"`
	Subject    string   `json:"subject" validate:"required,max=100"`
	Grade      string   `json:"grade" validate:"required,max=50"`
	Year       int      `json:"year" validate:"omitempty,gte=1990,lte=2100"`
	Score      *float64 `json:"score" validate:"omitempty,gte=0"`
}

// LoginResult is a successful login.
type LoginResult struct {
	Token   string
	Session auth.Session
	User    models.User
}

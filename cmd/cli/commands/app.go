package commands

import (
	"context"
	"io"

	"github.com/couchcryptid/rainy-day/internal/domain"
)

// Assessor runs assessments for the CLI.
type Assessor interface {
	AssessManual(ctx context.Context, rainfallMM float64, soilID string) (domain.AssessmentRecord, error)
	AssessLocation(ctx context.Context, location, soilID string) (domain.AssessmentRecord, error)
}

// AppContext holds what commands need at run time. Advisor is set by the
// root command's pre-run hook.
type AppContext struct {
	Advisor Assessor
	Out     io.Writer
}

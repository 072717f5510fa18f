package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/couchcryptid/rainy-day/internal/advisor"
	"github.com/couchcryptid/rainy-day/internal/domain"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/go-playground/validator/v10"
)

const (
	modeManual  = "manual"
	modeWeather = "weather"

	maxBodyBytes = 1 << 20
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
}

// assessmentRequest is the POST /api/v1/assessments body. Mode defaults to
// manual. RainfallMM stays raw until the soil has been resolved so an unknown
// soil is reported before bad rainfall.
type assessmentRequest struct {
	Mode       string          `json:"mode" validate:"oneof=manual weather"`
	RainfallMM json.RawMessage `json:"rainfall_mm"`
	Location   string          `json:"location"`
	SoilType   string          `json:"soil_type" validate:"required"`
}

type assessmentResponse struct {
	domain.AssessmentRecord
	Verdict string `json:"verdict"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (s *Server) handleSoils(w http.ResponseWriter, _ *http.Request) {
	sharedobs.WriteJSON(w, http.StatusOK, map[string]any{"soils": domain.Soils()})
}

func (s *Server) handleAssess(w http.ResponseWriter, r *http.Request) {
	req, err := decodeAssessmentRequest(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	var rec domain.AssessmentRecord
	switch req.Mode {
	case modeWeather:
		rec, err = s.advisor.AssessLocation(r.Context(), req.Location, req.SoilType)
	default:
		rec, err = s.assessManual(r, req)
	}
	if err != nil {
		writeError(w, err)
		return
	}

	sharedobs.WriteJSON(w, http.StatusOK, assessmentResponse{
		AssessmentRecord: rec,
		Verdict:          rec.Assessment.Verdict(),
	})
}

func (s *Server) assessManual(r *http.Request, req assessmentRequest) (domain.AssessmentRecord, error) {
	if _, err := domain.LookupSoil(req.SoilType); err != nil {
		return domain.AssessmentRecord{}, err
	}
	mm, err := decodeRainfall(req.RainfallMM)
	if err != nil {
		return domain.AssessmentRecord{}, err
	}
	return s.advisor.AssessManual(r.Context(), mm, req.SoilType)
}

// decodeRainfall reads rainfall_mm. Absent, null and non-numeric values are
// invalid rainfall, matching domain.ParseRainfall on text input.
func decodeRainfall(raw json.RawMessage) (float64, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, fmt.Errorf("%w: rainfall_mm is required", domain.ErrInvalidRainfall)
	}
	var mm float64
	if err := json.Unmarshal(raw, &mm); err != nil {
		return 0, fmt.Errorf("%w: rainfall_mm must be a number", domain.ErrInvalidRainfall)
	}
	return mm, nil
}

func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	cond, err := s.advisor.LookupWeather(r.Context(), r.URL.Query().Get("location"))
	if err != nil {
		writeError(w, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, cond)
}

// requestError marks a malformed or incomplete request body.
type requestError struct {
	msg string
}

func (e *requestError) Error() string { return e.msg }

func decodeAssessmentRequest(w http.ResponseWriter, r *http.Request) (assessmentRequest, error) {
	var req assessmentRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		return req, &requestError{msg: "invalid JSON body: " + err.Error()}
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return req, &requestError{msg: "invalid JSON body: unexpected data after object"}
	}

	if req.Mode == "" {
		req.Mode = modeManual
	}
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return req, &requestError{msg: describeValidation(verrs)}
		}
		return req, &requestError{msg: err.Error()}
	}
	return req, nil
}

func describeValidation(verrs validator.ValidationErrors) string {
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fe.Field()+" is required")
		case "oneof":
			parts = append(parts, fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param()))
		default:
			parts = append(parts, fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}

// errorStatus classifies err into an HTTP status and a stable error code.
func errorStatus(err error) (int, string) {
	var reqErr *requestError
	switch {
	case errors.As(err, &reqErr):
		return http.StatusBadRequest, "invalid_request"
	case errors.Is(err, domain.ErrUnknownSoilType):
		return http.StatusBadRequest, "unknown_soil_type"
	case errors.Is(err, domain.ErrInvalidRainfall):
		return http.StatusBadRequest, "invalid_rainfall"
	case errors.Is(err, advisor.ErrLocationRequired):
		return http.StatusBadRequest, "location_required"
	case errors.Is(err, domain.ErrLocationNotFound):
		return http.StatusNotFound, "location_not_found"
	case errors.Is(err, advisor.ErrWeatherDisabled):
		return http.StatusServiceUnavailable, "weather_disabled"
	default:
		return http.StatusBadGateway, "weather_unavailable"
	}
}

func writeError(w http.ResponseWriter, err error) {
	status, code := errorStatus(err)
	sharedobs.WriteJSON(w, status, errorResponse{Error: err.Error(), Code: code})
}

package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/couchcryptid/rainy-day/internal/domain"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func checkFormat(format string) error {
	switch format {
	case formatText, formatJSON, formatYAML:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want text, json or yaml)", format)
	}
}

// resultView is the printable form of an assessment, shaped like the
// result card: verdict first, score at one decimal.
type resultView struct {
	Verdict    string  `json:"verdict" yaml:"verdict"`
	Message    string  `json:"message" yaml:"message"`
	RiskLevel  string  `json:"risk_level" yaml:"risk_level"`
	RiskScore  float64 `json:"risk_score" yaml:"risk_score"`
	RainfallMM float64 `json:"rainfall_mm" yaml:"rainfall_mm"`
	Soil       string  `json:"soil" yaml:"soil"`
	Location   string  `json:"location,omitempty" yaml:"location,omitempty"`
	Conditions string  `json:"conditions,omitempty" yaml:"conditions,omitempty"`
	Source     string  `json:"source" yaml:"source"`
	ID         string  `json:"id" yaml:"id"`
	AssessedAt string  `json:"assessed_at" yaml:"assessed_at"`
}

func newResultView(rec domain.AssessmentRecord) resultView {
	a := rec.Assessment
	soilName := string(a.SoilType)
	if s, err := domain.LookupSoil(string(a.SoilType)); err == nil {
		soilName = s.Name
	}

	v := resultView{
		Verdict:    a.Verdict(),
		Message:    a.Message,
		RiskLevel:  a.RiskLevel.Label(),
		RiskScore:  roundOneDecimal(a.RiskScore),
		RainfallMM: a.RainfallMM,
		Soil:       soilName,
		Location:   rec.Location,
		Source:     string(rec.Source),
		ID:         rec.ID,
		AssessedAt: rec.AssessedAt.Format(time.RFC3339),
	}
	if c := rec.Conditions; c != nil {
		v.Conditions = fmt.Sprintf("%s, %.1f°C, %.0f%% humidity", c.Description, c.TemperatureC, c.HumidityPct)
	}
	return v
}

func roundOneDecimal(f float64) float64 {
	return math.Round(f*10) / 10
}

func renderRecord(w io.Writer, rec domain.AssessmentRecord, format string) error {
	v := newResultView(rec)
	switch format {
	case formatJSON:
		return writeJSON(w, v)
	case formatYAML:
		return yaml.NewEncoder(w).Encode(v)
	}

	fmt.Fprintf(w, "%s\n%s\n\n", v.Verdict, v.Message)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Risk level:\t%s\n", v.RiskLevel)
	fmt.Fprintf(tw, "Risk score:\t%.1f\n", v.RiskScore)
	fmt.Fprintf(tw, "Rainfall:\t%.1f mm\n", v.RainfallMM)
	fmt.Fprintf(tw, "Soil:\t%s\n", v.Soil)
	if v.Location != "" {
		fmt.Fprintf(tw, "Location:\t%s\n", v.Location)
	}
	if v.Conditions != "" {
		fmt.Fprintf(tw, "Conditions:\t%s\n", v.Conditions)
	}
	return tw.Flush()
}

type soilView struct {
	ID       string  `json:"id" yaml:"id"`
	Name     string  `json:"name" yaml:"name"`
	Drainage string  `json:"drainage" yaml:"drainage"`
	Factor   float64 `json:"drainage_coefficient" yaml:"drainage_coefficient"`
}

func renderSoils(w io.Writer, soils []domain.SoilClassification, format string) error {
	views := make([]soilView, len(soils))
	for i, s := range soils {
		views[i] = soilView{ID: string(s.ID), Name: s.Name, Drainage: s.Drainage, Factor: s.DrainageCoefficient}
	}
	switch format {
	case formatJSON:
		return writeJSON(w, views)
	case formatYAML:
		return yaml.NewEncoder(w).Encode(views)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tDRAINAGE\tCOEFFICIENT")
	for _, v := range views {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%g\n", v.ID, v.Name, v.Drainage, v.Factor)
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

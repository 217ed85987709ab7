package conf

import (
	"strings"
	"testing"

	"github.com/wildrange/rsf-go/internal/errors"
)

func validSettings() *Settings {
	s := &Settings{}
	s.Main.Log.Rotation = RotationDaily
	s.Input.KDE = MethodInput{Label: "KDE", Path: "data/wolfkde.csv"}
	s.Input.MCP = MethodInput{Label: "MCP", Path: "data/wolfmcp.csv"}
	s.Input.Response = "used"
	s.Input.Pack = "pack"
	s.Input.Packs = []string{"Red Deer", "Bow Valley"}
	s.Analysis.Predictors = []string{"deer_w2", "elk_w2"}
	s.Analysis.Workers = 1
	s.Analysis.GLM = GLMSettings{MaxIterations: 25, Tolerance: 1e-8, Confidence: 0.95}
	s.Output.Figure = FigureSettings{Enabled: true, Path: "out.html"}
	return s
}

func TestValidateSettings(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr string
	}{
		{
			name:   "valid settings pass",
			mutate: func(s *Settings) {},
		},
		{
			name:    "missing input path",
			mutate:  func(s *Settings) { s.Input.MCP.Path = "" },
			wantErr: "input paths",
		},
		{
			name:    "identical method labels",
			mutate:  func(s *Settings) { s.Input.MCP.Label = "KDE" },
			wantErr: "labels must differ",
		},
		{
			name:    "empty response column",
			mutate:  func(s *Settings) { s.Input.Response = "" },
			wantErr: "input.response",
		},
		{
			name:    "no packs",
			mutate:  func(s *Settings) { s.Input.Packs = nil },
			wantErr: "at least one pack",
		},
		{
			name:    "no predictors",
			mutate:  func(s *Settings) { s.Analysis.Predictors = nil },
			wantErr: "predictors must not be empty",
		},
		{
			name:    "duplicate predictor",
			mutate:  func(s *Settings) { s.Analysis.Predictors = []string{"elk_w2", "elk_w2"} },
			wantErr: "duplicate predictor",
		},
		{
			name:    "negative workers",
			mutate:  func(s *Settings) { s.Analysis.Workers = -2 },
			wantErr: "workers",
		},
		{
			name:    "zero iterations",
			mutate:  func(s *Settings) { s.Analysis.GLM.MaxIterations = 0 },
			wantErr: "maxiterations",
		},
		{
			name:    "confidence out of range",
			mutate:  func(s *Settings) { s.Analysis.GLM.Confidence = 1.0 },
			wantErr: "confidence",
		},
		{
			name:    "figure enabled without path",
			mutate:  func(s *Settings) { s.Output.Figure.Path = "" },
			wantErr: "output.figure.path",
		},
		{
			name:    "unknown rotation",
			mutate:  func(s *Settings) { s.Main.Log.Rotation = "hourly" },
			wantErr: "rotation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSettings()
			tt.mutate(s)
			err := ValidateSettings(s)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("expected settings to validate, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

func TestValidateSettingsReportsAllProblems(t *testing.T) {
	s := validSettings()
	s.Input.Response = ""
	s.Analysis.Workers = -1
	s.Analysis.GLM.Tolerance = 0

	err := ValidateSettings(s)
	if err == nil {
		t.Fatal("expected validation to fail")
	}
	if !errors.IsCategory(err, errors.CategoryConfiguration) {
		t.Errorf("expected a configuration error, got %v", err)
	}
	for _, want := range []string{"input.response", "workers", "tolerance"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected aggregated error to mention %q, got %q", want, err.Error())
		}
	}
}

func TestDefaultConfigEmbedded(t *testing.T) {
	data := getDefaultConfig()
	for _, want := range []string{"input:", "analysis:", "predictors:", "deer_w2", "confidence: 0.95"} {
		if !strings.Contains(data, want) {
			t.Errorf("embedded default config missing %q", want)
		}
	}
}

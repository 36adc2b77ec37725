// Package config loads sigil's settings file.
package config

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/ayusman/sigil/internal/geometry"
	"github.com/ayusman/sigil/internal/gesture"
)

// Settings holds every tunable value. Missing keys keep their defaults.
type Settings struct {
	ResamplePoints      int     `json:"resample_points"`
	SquareSize          float64 `json:"square_size"`
	MaxDistance         float64 `json:"max_distance"`
	LineWindow          int     `json:"line_window"`
	LineMaxDeviation    float64 `json:"line_max_deviation"`
	RightAngleTolerance float64 `json:"right_angle_tolerance"`
	SimplifyEpsilon     float64 `json:"simplify_epsilon"`
	CloseRatio          float64 `json:"close_ratio"`
	MinPointDistance    float64 `json:"min_point_distance"`
	MaxPoints           int     `json:"max_points"`
	ListenAddr          string  `json:"listen_addr"`
	HookTimeoutMs       int     `json:"hook_timeout_ms"`
}

// Defaults returns the settings written on first run.
func Defaults() *Settings {
	return &Settings{
		ResamplePoints:      gesture.DefaultResolution,
		SquareSize:          gesture.DefaultSize,
		MaxDistance:         gesture.DefaultMaxDistance,
		LineWindow:          geometry.DefaultLineWindow,
		LineMaxDeviation:    geometry.DefaultMaxAngleDeviation,
		RightAngleTolerance: geometry.DefaultRightAngleTolerance,
		SimplifyEpsilon:     geometry.DefaultSimplifyEpsilon,
		CloseRatio:          geometry.DefaultCloseRatio,
		MinPointDistance:    2,
		MaxPoints:           2048,
		ListenAddr:          ":8080",
		HookTimeoutMs:       5000,
	}
}

// DefaultDir returns ~/.sigil.
func DefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".sigil"), nil
}

// SettingsPath returns the settings file inside dir.
func SettingsPath(dir string) string {
	return filepath.Join(dir, "settings.json")
}

// HooksPath returns the directory scanned for match hooks inside dir.
func HooksPath(dir string) string {
	return filepath.Join(dir, "hooks")
}

// DatabasePath returns the SQLite database file inside dir.
func DatabasePath(dir string) string {
	return filepath.Join(dir, "sigil.db")
}

// Load reads dir/settings.json, creating it with defaults when absent.
// An unreadable file falls back to defaults; invalid values are replaced
// one by one.
func Load(dir string) (*Settings, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	settingsPath := SettingsPath(dir)
	defaults := Defaults()

	data, err := os.ReadFile(settingsPath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("Creating default settings file at %s", settingsPath)
			if err := createDefaultSettings(settingsPath, defaults); err != nil {
				log.Printf("Failed to create default settings file: %v", err)
			}
			return defaults, nil
		}
		return nil, err
	}

	// Check for unrecognised keys
	var rawSettings map[string]interface{}
	if err := json.Unmarshal(data, &rawSettings); err != nil {
		log.Printf("Invalid settings file, using defaults: %v", err)
		return defaults, nil
	}

	knownKeys := getKnownKeys(Settings{})
	for key := range rawSettings {
		if !knownKeys[key] {
			log.Printf("Warning: unrecognised setting key '%s' in settings file", key)
		}
	}

	settings := Defaults()
	if err := json.Unmarshal(data, settings); err != nil {
		log.Printf("Invalid settings file, using defaults: %v", err)
		return defaults, nil
	}

	settings.validate(defaults)
	return settings, nil
}

func (s *Settings) validate(d *Settings) {
	if s.ResamplePoints < 2 {
		log.Printf("Invalid resample_points value %d, must be at least 2, using default %d",
			s.ResamplePoints, d.ResamplePoints)
		s.ResamplePoints = d.ResamplePoints
	}
	if s.SquareSize <= 0 {
		log.Printf("Invalid square_size value %.2f, must be positive, using default %.2f",
			s.SquareSize, d.SquareSize)
		s.SquareSize = d.SquareSize
	}
	if s.MaxDistance <= 0 {
		log.Printf("Invalid max_distance value %.2f, must be positive, using default %.2f",
			s.MaxDistance, d.MaxDistance)
		s.MaxDistance = d.MaxDistance
	}
	if s.LineWindow < 3 {
		log.Printf("Invalid line_window value %d, must be at least 3, using default %d",
			s.LineWindow, d.LineWindow)
		s.LineWindow = d.LineWindow
	}
	if s.LineMaxDeviation < 0 || s.LineMaxDeviation > 90 {
		log.Printf("Invalid line_max_deviation value %.2f, must be between 0 and 90, using default %.2f",
			s.LineMaxDeviation, d.LineMaxDeviation)
		s.LineMaxDeviation = d.LineMaxDeviation
	}
	if s.RightAngleTolerance < 0 || s.RightAngleTolerance > 90 {
		log.Printf("Invalid right_angle_tolerance value %.2f, must be between 0 and 90, using default %.2f",
			s.RightAngleTolerance, d.RightAngleTolerance)
		s.RightAngleTolerance = d.RightAngleTolerance
	}
	if s.SimplifyEpsilon < 0 {
		log.Printf("Invalid simplify_epsilon value %.2f, must not be negative, using default %.2f",
			s.SimplifyEpsilon, d.SimplifyEpsilon)
		s.SimplifyEpsilon = d.SimplifyEpsilon
	}
	if s.CloseRatio < 0 || s.CloseRatio > 1 {
		log.Printf("Invalid close_ratio value %.2f, must be between 0.0 and 1.0, using default %.2f",
			s.CloseRatio, d.CloseRatio)
		s.CloseRatio = d.CloseRatio
	}
	if s.MinPointDistance < 0 {
		log.Printf("Invalid min_point_distance value %.2f, must not be negative, using default %.2f",
			s.MinPointDistance, d.MinPointDistance)
		s.MinPointDistance = d.MinPointDistance
	}
	if s.MaxPoints < 2 {
		log.Printf("Invalid max_points value %d, must be at least 2, using default %d",
			s.MaxPoints, d.MaxPoints)
		s.MaxPoints = d.MaxPoints
	}
	if s.ListenAddr == "" {
		s.ListenAddr = d.ListenAddr
	}
	if s.HookTimeoutMs <= 0 {
		log.Printf("Invalid hook_timeout_ms value %d, must be positive, using default %d",
			s.HookTimeoutMs, d.HookTimeoutMs)
		s.HookTimeoutMs = d.HookTimeoutMs
	}
}

// MatchOptions returns the recognizer options described by the settings.
func (s *Settings) MatchOptions() gesture.Options {
	return gesture.Options{
		Resolution:  s.ResamplePoints,
		Size:        s.SquareSize,
		MaxDistance: s.MaxDistance,
	}
}

// AnalysisOptions returns the stroke analysis tolerances.
func (s *Settings) AnalysisOptions() geometry.Options {
	return geometry.Options{
		LineWindow:          s.LineWindow,
		MaxAngleDeviation:   s.LineMaxDeviation,
		RightAngleTolerance: s.RightAngleTolerance,
		SimplifyEpsilon:     s.SimplifyEpsilon,
		CloseRatio:          s.CloseRatio,
	}
}

func createDefaultSettings(path string, settings *Settings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func getKnownKeys(v interface{}) map[string]bool {
	keys := make(map[string]bool)
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	for i := 0; i < t.NumField(); i++ {
		if jsonTag := t.Field(i).Tag.Get("json"); jsonTag != "" {
			tagName := strings.Split(jsonTag, ",")[0]
			if tagName != "-" {
				keys[tagName] = true
			}
		}
	}
	return keys
}

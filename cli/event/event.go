// Package event loads the per-edition settings of the hackathon from an
// optional configuration file.
package event

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/oaiiae/hackathon-signup/adminview"
	"github.com/oaiiae/hackathon-signup/csvexport"
)

type Settings struct {
	Title           string `mapstructure:"title"`
	Capacity        int    `mapstructure:"capacity"`
	Locale          string `mapstructure:"locale"`
	TimeZone        string `mapstructure:"time_zone"`
	RequireInterest bool   `mapstructure:"require_interest"`
}

func Defaults() Settings {
	return Settings{
		Title:    "Maratona Tech Itararé",
		Capacity: adminview.DefaultCapacity,
		Locale:   "pt-BR",
		TimeZone: "America/Sao_Paulo",
	}
}

// Load reads the settings file at path, any format viper understands.
// An empty path returns [Defaults]. Keys missing from the file keep their
// default value.
func Load(path string) (Settings, error) {
	defaults := Defaults()

	v := viper.New()
	v.SetDefault("title", defaults.Title)
	v.SetDefault("capacity", defaults.Capacity)
	v.SetDefault("locale", defaults.Locale)
	v.SetDefault("time_zone", defaults.TimeZone)
	v.SetDefault("require_interest", defaults.RequireInterest)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("reading event settings: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decoding event settings: %w", err)
	}
	return s, s.validate()
}

func (s Settings) validate() error {
	if s.Capacity <= 0 {
		return errors.New("event: capacity must be positive")
	}
	if _, ok := csvexport.LocaleFor(s.Locale); !ok {
		return fmt.Errorf("event: unsupported locale %q", s.Locale)
	}
	if _, err := time.LoadLocation(s.TimeZone); err != nil {
		return fmt.Errorf("event: %w", err)
	}
	return nil
}

// Exporter returns a CSV exporter formatting dates for this event.
func (s Settings) Exporter() (*csvexport.Exporter, error) {
	locale, ok := csvexport.LocaleFor(s.Locale)
	if !ok {
		return nil, fmt.Errorf("event: unsupported locale %q", s.Locale)
	}
	loc, err := time.LoadLocation(s.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("event: %w", err)
	}
	return &csvexport.Exporter{Locale: locale, Location: loc}, nil
}

package timezone

import (
	"time"

	"roomslot/config"
	"roomslot/shared/constant"

	"github.com/rs/zerolog/log"
)

var (
	appLocation *time.Location
)

func init() {
	cfg, err := config.Load()
	if err != nil {
		log.Warn().Err(err).Msg("Configuration did not load cleanly, timezone may fall back to UTC")
	}

	name := cfg.App.Timezone
	if name == "" {
		log.Warn().Msg("No timezone configured, using UTC as default")

		name = "UTC"
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("Failed to load timezone, falling back to UTC")

		loc = time.UTC
	}

	appLocation = loc

	log.Info().Str("timezone", appLocation.String()).Msg("Application timezone initialized")
}

// Now returns the current time in the application timezone
func Now() time.Time {
	return time.Now().In(GetLocation())
}

// ToAppTime converts a time to the application timezone
func ToAppTime(t time.Time) time.Time {
	return t.In(GetLocation())
}

// GetLocation returns the current application timezone location
func GetLocation() *time.Location {
	if appLocation == nil {
		return time.UTC
	}

	return appLocation
}

// Parse parses a time string in the application timezone
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, GetLocation())
}

// Format formats a time in the application timezone
func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}

// Day returns the calendar day of t in the application timezone, formatted as YYYY-MM-DD.
func Day(t time.Time) string {
	return Format(t, constant.DayFormat)
}

// ParseDay parses a YYYY-MM-DD string as midnight in the application timezone.
func ParseDay(value string) (time.Time, error) {
	return Parse(constant.DayFormat, value)
}

// StartOfDay truncates t to midnight of its calendar day in the application timezone.
func StartOfDay(t time.Time) time.Time {
	local := ToAppTime(t)

	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, local.Location())
}

// At returns hour:minute on the calendar day of t.
func At(t time.Time, hour, minute int) time.Time {
	local := ToAppTime(t)

	return time.Date(local.Year(), local.Month(), local.Day(), hour, minute, 0, 0, local.Location())
}

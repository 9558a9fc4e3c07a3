package report

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"tzbot/config"
	"tzbot/internal/domains/zone/model"
	"tzbot/shared/timezone"
)

const (
	NoDataLine        = "No timezone data for this server, use /tzadd <who> <timezone>"
	DefaultDisclaimer = "I'm a bot, message joey if something went wrong or needs changing"

	timeLayout = "15:04"
	dateLayout = "2006-01-02"
)

type Formatter struct {
	zones         timezone.Validator
	disclaimer    string
	showDayOffset bool
}

func New(cfg *config.Config, zones timezone.Validator) *Formatter {
	return NewFormatter(zones, cfg.Report.Disclaimer, cfg.Report.ShowDayOffset)
}

// NewFormatter builds a Formatter. With showDayOffset, lines whose civil date
// differs from the UTC date of the report instant get a "(next day)" or
// "(previous day)" suffix.
func NewFormatter(zones timezone.Validator, disclaimer string, showDayOffset bool) *Formatter {
	if disclaimer == "" {
		disclaimer = DefaultDisclaimer
	}

	return &Formatter{
		zones:         zones,
		disclaimer:    disclaimer,
		showDayOffset: showDayOffset,
	}
}

// Format renders entries at now, one line each, then the disclaimer.
//
// An entry whose timezone no longer resolves still gets a line saying so, and
// the returned error (wrapping model.ErrUnresolvableTimezone) names every such
// entry. The report string is always usable.
func (f *Formatter) Format(guildID model.GuildID, entries []model.Entry, now time.Time) (string, error) {
	lines := make([]string, 0, len(entries)+1)

	if len(entries) == 0 {
		lines = append(lines, NoDataLine)
	}

	var errs []error

	for _, entry := range entries {
		loc, err := f.zones.Location(entry.Timezone)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: guild %s, %s in %q: %w", model.ErrUnresolvableTimezone, guildID, entry.Person, entry.Timezone, err))
			lines = append(lines, fmt.Sprintf("for %s the timezone %s could not be resolved", entry.Person, entry.Timezone))

			continue
		}

		local := now.In(loc)
		line := fmt.Sprintf("for %s it is %s", entry.Person, local.Format(timeLayout))

		if f.showDayOffset {
			line += dayOffset(now.UTC(), local)
		}

		lines = append(lines, line)
	}

	lines = append(lines, f.disclaimer)

	return strings.Join(lines, "\n"), errors.Join(errs...)
}

func dayOffset(reference, local time.Time) string {
	refDate := reference.Format(dateLayout)
	localDate := local.Format(dateLayout)

	switch {
	case localDate > refDate:
		return " (next day)"
	case localDate < refDate:
		return " (previous day)"
	default:
		return ""
	}
}

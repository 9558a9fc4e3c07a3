package report_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tzbot/config"
	"tzbot/internal/domains/zone/model"
	"tzbot/internal/domains/zone/report"
	"tzbot/shared/timezone"
)

const guild model.GuildID = 123456789012345678

var winterInstant = time.Date(2024, 1, 15, 17, 30, 0, 0, time.UTC)

func newFormatter(showDayOffset bool) *report.Formatter {
	return report.NewFormatter(timezone.New(timezone.EmbeddedNames()), "", showDayOffset)
}

func TestFormat_NoEntries(t *testing.T) {
	f := newFormatter(false)

	for _, entries := range [][]model.Entry{nil, {}} {
		text, err := f.Format(guild, entries, winterInstant)

		require.NoError(t, err)
		assert.Equal(t, report.NoDataLine+"\n"+report.DefaultDisclaimer, text)
	}
}

func TestFormat_Entries(t *testing.T) {
	f := newFormatter(false)

	entries := []model.Entry{
		{Person: "Alice", Timezone: "US/Eastern"},
		{Person: "Bob", Timezone: "Europe/London"},
	}

	text, err := f.Format(guild, entries, winterInstant)
	require.NoError(t, err)

	assert.Equal(t, strings.Join([]string{
		"for Alice it is 12:30",
		"for Bob it is 17:30",
		report.DefaultDisclaimer,
	}, "\n"), text)
}

func TestFormat_ZeroPaddedAndDaylightSaving(t *testing.T) {
	f := newFormatter(false)

	entries := []model.Entry{
		{Person: "Alice", Timezone: "US/Eastern"},
		{Person: "Kenji", Timezone: "Asia/Tokyo"},
		{Person: "Priya", Timezone: "Asia/Kolkata"},
	}

	summer := time.Date(2024, 7, 1, 0, 5, 0, 0, time.UTC)

	text, err := f.Format(guild, entries, summer)
	require.NoError(t, err)

	lines := strings.Split(text, "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "for Alice it is 20:05", lines[0])
	assert.Equal(t, "for Kenji it is 09:05", lines[1])
	assert.Equal(t, "for Priya it is 05:35", lines[2])
}

func TestFormat_IsDeterministic(t *testing.T) {
	f := newFormatter(false)
	entries := []model.Entry{{Person: "Alice", Timezone: "US/Eastern"}}

	first, err := f.Format(guild, entries, winterInstant)
	require.NoError(t, err)

	second, err := f.Format(guild, entries, winterInstant.In(time.FixedZone("elsewhere", 3*3600)))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestFormat_UnresolvableTimezone(t *testing.T) {
	f := report.NewFormatter(timezone.New([]string{"Europe/London"}), "", false)

	entries := []model.Entry{
		{Person: "Alice", Timezone: "US/Eastern"},
		{Person: "Bob", Timezone: "Europe/London"},
	}

	text, err := f.Format(guild, entries, winterInstant)

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrUnresolvableTimezone)
	assert.Contains(t, err.Error(), "Alice")
	assert.Equal(t, strings.Join([]string{
		"for Alice the timezone US/Eastern could not be resolved",
		"for Bob it is 17:30",
		report.DefaultDisclaimer,
	}, "\n"), text)
}

func TestFormat_DayOffset(t *testing.T) {
	f := newFormatter(true)

	entries := []model.Entry{
		{Person: "Alice", Timezone: "US/Eastern"},
		{Person: "Kenji", Timezone: "Asia/Tokyo"},
		{Person: "Bob", Timezone: "Europe/London"},
	}

	lateEvening := time.Date(2024, 1, 15, 22, 0, 0, 0, time.UTC)
	text, err := f.Format(guild, entries, lateEvening)
	require.NoError(t, err)

	lines := strings.Split(text, "\n")
	assert.Equal(t, "for Alice it is 17:00", lines[0])
	assert.Equal(t, "for Kenji it is 07:00 (next day)", lines[1])
	assert.Equal(t, "for Bob it is 22:00", lines[2])

	earlyMorning := time.Date(2024, 1, 15, 2, 0, 0, 0, time.UTC)
	text, err = f.Format(guild, entries, earlyMorning)
	require.NoError(t, err)

	lines = strings.Split(text, "\n")
	assert.Equal(t, "for Alice it is 21:00 (previous day)", lines[0])
	assert.Equal(t, "for Kenji it is 11:00", lines[1])
}

func TestNew_UsesConfiguredDisclaimer(t *testing.T) {
	cfg := &config.Config{}
	cfg.Report.Disclaimer = "ask the admins"

	f := report.New(cfg, timezone.New(timezone.EmbeddedNames()))

	text, err := f.Format(guild, nil, winterInstant)
	require.NoError(t, err)
	assert.Equal(t, report.NoDataLine+"\nask the admins", text)
}

package timezone_test

import (
	"testing"
	"time"

	"roomslot/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNowAndLocation(t *testing.T) {
	assert.False(t, timezone.Now().IsZero())
	assert.NotNil(t, timezone.GetLocation())
	assert.Equal(t, timezone.GetLocation(), timezone.Now().Location())
}

func TestDayRoundTrip(t *testing.T) {
	day, err := timezone.ParseDay("2024-03-09")
	require.NoError(t, err)

	assert.Equal(t, "2024-03-09", timezone.Day(day))
	assert.Equal(t, 0, day.Hour())
}

func TestParseDayRejectsGarbage(t *testing.T) {
	_, err := timezone.ParseDay("09/03/2024")
	assert.Error(t, err)
}

func TestStartOfDayAndAt(t *testing.T) {
	base := time.Date(2024, 3, 9, 14, 37, 12, 99, timezone.GetLocation())

	start := timezone.StartOfDay(base)
	assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, timezone.GetLocation()), start)

	at := timezone.At(base, 10, 0)
	assert.Equal(t, time.Date(2024, 3, 9, 10, 0, 0, 0, timezone.GetLocation()), at)
	assert.True(t, base.After(at))
}

package policy_test

import (
	"testing"
	"time"

	"roomslot/internal/domains/slot/model"
	"roomslot/internal/domains/slot/policy"
	gModel "roomslot/shared/model"

	"github.com/stretchr/testify/assert"
)

var loc = time.FixedZone("ICT", 7*60*60)

func at(day, hour, minute, second int) time.Time {
	return time.Date(2024, 6, day, hour, minute, second, 0, loc)
}

func slots(date string, s1, s2, s3, s4 model.Status) model.RoomSlots {
	return model.RoomSlots{RoomID: "room-101", SlotDate: gModel.Date("2024-06-" + date), Slot1: s1, Slot2: s2, Slot3: s3, Slot4: s4}
}

const (
	av = model.StatusAvailable
	pe = model.StatusPending
	re = model.StatusReserved
	di = model.StatusDisabled
	ex = model.StatusExpired
)

func TestRollover(t *testing.T) {
	tests := []struct {
		name     string
		in       model.RoomSlots
		expected model.RoomSlots
	}{
		{
			name:     "same day is untouched",
			in:       slots("10", pe, re, ex, di),
			expected: slots("10", pe, re, ex, di),
		},
		{
			name:     "new day resets everything but disabled",
			in:       slots("09", pe, re, ex, di),
			expected: slots("10", av, av, av, di),
		},
		{
			name:     "fully disabled room stays disabled",
			in:       slots("01", di, di, di, di),
			expected: slots("10", di, di, di, di),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, policy.Rollover("2024-06-10", tt.in))
		})
	}
}

func TestRolloverIsIdempotent(t *testing.T) {
	in := slots("09", re, pe, ex, di)

	once := policy.Rollover("2024-06-10", in)
	twice := policy.Rollover("2024-06-10", once)

	assert.Equal(t, once, twice)
}

func TestExpireBoundary(t *testing.T) {
	in := slots("10", av, av, av, av)

	before := policy.Expire(at(10, 9, 59, 59), in, model.ExpireAvailable)
	assert.Equal(t, av, before.Slot1)

	onTheDot := policy.Expire(at(10, 10, 0, 0), in, model.ExpireAvailable)
	assert.Equal(t, ex, onTheDot.Slot1)
	assert.Equal(t, av, onTheDot.Slot2)

	evening := policy.Expire(at(10, 17, 0, 0), in, model.ExpireAvailable)
	assert.Equal(t, slots("10", ex, ex, ex, ex), evening)
}

func TestExpireScopes(t *testing.T) {
	in := slots("10", pe, re, av, di)
	evening := at(10, 18, 0, 0)

	assert.Equal(t, slots("10", pe, re, ex, di), policy.Expire(evening, in, model.ExpireAvailable))
	assert.Equal(t, slots("10", ex, ex, ex, di), policy.Expire(evening, in, model.ExpireAll))
}

func TestExpireNeverTouchesDisabled(t *testing.T) {
	in := slots("10", di, di, di, di)

	for hour := 0; hour < 24; hour++ {
		for _, scope := range []model.ExpiryScope{model.ExpireAvailable, model.ExpireAll} {
			out := policy.Expire(at(10, hour, 0, 0), in, scope)
			assert.True(t, out.All(di), "hour %d scope %s", hour, scope)
		}
	}
}

func TestApply(t *testing.T) {
	t.Run("rolls over then expires", func(t *testing.T) {
		out, changed := policy.Apply(at(10, 12, 30, 0), slots("09", re, pe, av, di), model.ExpireAvailable)

		assert.True(t, changed)
		assert.Equal(t, slots("10", ex, ex, av, di), out)
	})

	t.Run("reports no change when nothing moves", func(t *testing.T) {
		in := slots("10", pe, av, av, av)

		out, changed := policy.Apply(at(10, 9, 0, 0), in, model.ExpireAvailable)

		assert.False(t, changed)
		assert.Equal(t, in, out)
	})

	t.Run("second application is a no-op", func(t *testing.T) {
		now := at(10, 15, 0, 0)

		first, _ := policy.Apply(now, slots("08", av, re, pe, di), model.ExpireAll)
		second, changed := policy.Apply(now, first, model.ExpireAll)

		assert.False(t, changed)
		assert.Equal(t, first, second)
	})

	t.Run("date comes from the wall clock zone", func(t *testing.T) {
		lateNight := time.Date(2024, 6, 10, 23, 30, 0, 0, loc)

		out, _ := policy.Apply(lateNight, slots("10", av, av, av, av), model.ExpireAvailable)

		assert.Equal(t, slots("10", ex, ex, ex, ex).SlotDate, out.SlotDate)
	})
}

func TestEnable(t *testing.T) {
	disabled := slots("10", di, di, di, di)

	assert.True(t, policy.Enable(disabled).All(av))
	assert.Equal(t, slots("10", av, re, av, pe), policy.Enable(slots("10", di, re, di, pe)))

	out, _ := policy.Apply(at(10, 12, 0, 0), policy.Enable(disabled), model.ExpireAvailable)
	assert.Equal(t, slots("10", ex, ex, av, av), out)
}

package model_test

import (
	"testing"
	"time"

	"roomslot/shared/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateScan(t *testing.T) {
	tests := []struct {
		name     string
		src      any
		expected model.Date
		wantErr  bool
	}{
		{name: "time from driver", src: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), expected: "2024-02-29"},
		{name: "bytes", src: []byte("2024-02-29"), expected: "2024-02-29"},
		{name: "timestamp string", src: "2024-02-29T00:00:00Z", expected: "2024-02-29"},
		{name: "null", src: nil, expected: ""},
		{name: "too short", src: "2024", wantErr: true},
		{name: "unsupported", src: 42, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d model.Date
			err := d.Scan(tt.src)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, d)
		})
	}
}

func TestDateValue(t *testing.T) {
	v, err := model.Date("2024-02-29").Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", v)

	v, err = model.Date("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestDateOfAndTime(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*60*60)
	d := model.DateOf(time.Date(2024, 5, 1, 23, 30, 0, 0, loc))

	assert.Equal(t, model.Date("2024-05-01"), d)

	back, err := d.Time(loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, loc), back)

	_, err = model.Date("bogus").Time(loc)
	assert.Error(t, err)
}

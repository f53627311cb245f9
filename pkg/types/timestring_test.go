package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeString_Minutes(t *testing.T) {
	tests := []struct {
		name    string
		value   TimeString
		want    int
		wantErr bool
	}{
		{name: "midnight", value: "00:00", want: 0},
		{name: "morning", value: "09:30", want: 570},
		{name: "last minute of day", value: "23:59", want: 1439},
		{name: "hour out of range", value: "24:00", wantErr: true},
		{name: "minute out of range", value: "10:60", wantErr: true},
		{name: "missing leading zero", value: "9:30", wantErr: true},
		{name: "no separator", value: "0930h", wantErr: true},
		{name: "not digits", value: "ab:cd", wantErr: true},
		{name: "empty", value: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.value.Minutes()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromMinutes(t *testing.T) {
	ts, err := FromMinutes(570)
	require.NoError(t, err)
	assert.Equal(t, "09:30", ts.String())

	ts, err = FromMinutes(0)
	require.NoError(t, err)
	assert.Equal(t, "00:00", ts.String())

	ts, err = FromMinutes(1439)
	require.NoError(t, err)
	assert.Equal(t, "23:59", ts.String())

	// 1440 - конец суток, как время начала не представим
	_, err = FromMinutes(MinutesPerDay)
	assert.ErrorIs(t, err, ErrInvalidTimeString)

	_, err = FromMinutes(-1)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts, err := TimeString("10:00").AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, "10:45", ts.String())

	ts, err = TimeString("10:00").AddMinutes(-30)
	require.NoError(t, err)
	assert.Equal(t, "09:30", ts.String())

	_, err = TimeString("23:30").AddMinutes(45)
	assert.ErrorIs(t, err, ErrInvalidTimeString)

	_, err = TimeString("00:10").AddMinutes(-20)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Ordering(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("17:00"))
	assert.False(t, TimeString("17:00").IsBefore("09:00"))
	assert.False(t, TimeString("12:00").IsBefore("12:00"))

	assert.True(t, TimeString("17:00").IsAfter("09:00"))
	assert.False(t, TimeString("09:00").IsAfter("17:00"))

	// Некорректные значения не сравниваются
	assert.False(t, TimeString("garbage").IsBefore("09:00"))
	assert.False(t, TimeString("09:00").IsAfter("garbage"))
}

func TestNewTimeString(t *testing.T) {
	moment := time.Date(2026, 9, 7, 14, 5, 59, 0, time.UTC)
	assert.Equal(t, "14:05", NewTimeString(moment).String())
}

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("08:15")
	require.NoError(t, err)
	assert.Equal(t, TimeString("08:15"), ts)

	_, err = NewTimeStringFromString("8:15")
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_IsZero(t *testing.T) {
	assert.True(t, TimeString("").IsZero())
	assert.False(t, TimeString("00:00").IsZero())
}

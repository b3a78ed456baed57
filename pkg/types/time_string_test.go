package types

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr error
	}{
		{name: "morning", input: "09:30", want: 570},
		{name: "postgres time column", input: "18:00:00", want: 1080},
		{name: "end of day", input: "24:00", want: 1440},
		{name: "midnight", input: "00:00", want: 0},
		{name: "single digit hour", input: "9:30", wantErr: ErrInvalidFormat},
		{name: "garbage", input: "ab:cd", wantErr: ErrInvalidFormat},
		{name: "seconds not supported", input: "10:00:30", wantErr: ErrInvalidFormat},
		{name: "minutes overflow", input: "10:60", wantErr: ErrOutOfRange},
		{name: "past end of day", input: "24:01", wantErr: ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Minutes())
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	start := MustTimeString("23:30")

	end, err := start.AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, "24:00", end.String())

	_, err = start.AddMinutes(31)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestTimeString_Compare(t *testing.T) {
	a := MustTimeString("10:00")
	b := MustTimeString("11:00")

	assert.True(t, a.IsBefore(b))
	assert.False(t, b.IsBefore(a))
	assert.True(t, b.IsAfter(a))
	assert.False(t, a.IsBefore(a))
	assert.True(t, a.Equal(MustTimeString("10:00")))
	assert.True(t, TimeString{}.IsZero())
}

func TestTimeString_On(t *testing.T) {
	loc, err := time.LoadLocation("America/Santiago")
	require.NoError(t, err)

	date := time.Date(2026, 2, 4, 0, 0, 0, 0, time.UTC)
	got := MustTimeString("10:15").On(date, loc)

	assert.Equal(t, time.Date(2026, 2, 4, 10, 15, 0, 0, loc), got)

	endOfDay := MustTimeString("24:00").On(date, loc)
	assert.Equal(t, time.Date(2026, 2, 5, 0, 0, 0, 0, loc), endOfDay)
}

func TestTimeString_DaylightSavingGap(t *testing.T) {
	loc, err := time.LoadLocation("America/Santiago")
	require.NoError(t, err)

	// 2026-09-06 в Сантьяго часы переводятся с 00:00 на 01:00
	sunday := time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)
	saturday := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)

	assert.False(t, MustTimeString("00:00").ExistsOn(sunday, loc))
	assert.False(t, MustTimeString("00:30").ExistsOn(sunday, loc))
	assert.True(t, MustTimeString("01:00").ExistsOn(sunday, loc))
	assert.True(t, MustTimeString("10:00").ExistsOn(saturday, loc))
	assert.True(t, MustTimeString("24:00").ExistsOn(saturday, loc))

	endOfSaturday := MustTimeString("24:00").On(saturday, loc)
	assert.True(t, endOfSaturday.Equal(time.Date(2026, 9, 6, 1, 0, 0, 0, loc)))
	assert.True(t, endOfSaturday.After(MustTimeString("23:30").On(saturday, loc)))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan([]byte("08:45:00")))
	assert.Equal(t, "08:45", ts.String())

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 17, 30, 0, 0, time.UTC)))
	assert.Equal(t, "17:30", ts.String())

	require.NoError(t, ts.Scan(time.Date(0, 1, 2, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "24:00", ts.String())

	value, err := MustTimeString("08:45").Value()
	require.NoError(t, err)
	assert.Equal(t, "08:45:00", value)
}

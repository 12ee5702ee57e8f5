package weather

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func londonRecord() Record {
	return Record{
		city:         "London",
		country:      "GB",
		temperatureC: 15,
		feelsLikeC:   15,
		description:  "clear sky",
		humidityPct:  60,
		pressureHPa:  1012,
		windSpeedMps: 3.2,
		iconCode:     "01d",
		fetchedAt:    "12:34:56",
	}
}

func TestRecordString(t *testing.T) {
	t.Parallel()

	want := "Weather in London, GB:\n" +
		"Temperature: 15°C (feels like 15°C)\n" +
		"Description: clear sky\n" +
		"Humidity: 60%\n" +
		"Wind Speed: 3.2 m/s\n" +
		"Pressure: 1012 hPa\n" +
		"Last Updated: 12:34:56"

	assert.Equal(t, want, londonRecord().String())
}

func TestRecordSnapshotJSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(londonRecord().Snapshot())
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"city": "London",
		"country": "GB",
		"temperature": 15,
		"feels_like": 15,
		"description": "clear sky",
		"humidity": 60,
		"pressure": 1012,
		"wind_speed": 3.2,
		"icon": "01d",
		"last_updated": "12:34:56"
	}`, string(data))
}

func TestRecordIsZero(t *testing.T) {
	t.Parallel()

	assert.True(t, Record{}.IsZero())
	assert.False(t, londonRecord().IsZero())
}

func TestFormatWindSpeed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want string
	}{
		{3.2, "3.2"},
		{4, "4.0"},
		{0, "0.0"},
		{12.75, "12.75"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatWindSpeed(tt.in))
	}
}

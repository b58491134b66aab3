package storage

import (
	"testing"

	"github.com/stretchr/testify/require"

	"evoroot/internal/model"
)

func TestRunCodecStampsVersions(t *testing.T) {
	record := testRun("r1", "2026-08-30T10:00:00Z")
	record.SchemaVersion = 0
	record.CodecVersion = 0

	data, err := EncodeRun(record)
	require.NoError(t, err)

	decoded, err := DecodeRun(data)
	require.NoError(t, err)
	require.Equal(t, model.CurrentSchemaVersion, decoded.SchemaVersion)
	require.Equal(t, model.CurrentCodecVersion, decoded.CodecVersion)
	require.Equal(t, record.RunID, decoded.RunID)
	require.Equal(t, record.BestValue, decoded.BestValue)
}

func TestDecodeRunRejectsForeignVersions(t *testing.T) {
	_, err := DecodeRun([]byte(`{"schema_version":99,"codec_version":1,"run_id":"r1"}`))
	require.ErrorIs(t, err, ErrVersionMismatch)

	_, err = DecodeRun([]byte(`{"schema_version":1,"codec_version":99,"run_id":"r1"}`))
	require.ErrorIs(t, err, ErrVersionMismatch)

	_, err = DecodeRun([]byte(`{not json`))
	require.Error(t, err)
}

func TestSeriesCodecRoundTrip(t *testing.T) {
	series := model.SeriesRecord{
		RunID:      "r1",
		Best:       []float64{9, 3, 1},
		Average:    []float64{-20, -5, 2},
		MaxBest:    9,
		MaxAverage: 2,
	}

	data, err := EncodeSeries(series)
	require.NoError(t, err)

	decoded, err := DecodeSeries(data)
	require.NoError(t, err)
	require.Equal(t, series.Best, decoded.Best)
	require.Equal(t, series.Average, decoded.Average)
	require.Equal(t, series.MaxBest, decoded.MaxBest)
	require.Equal(t, series.MaxAverage, decoded.MaxAverage)
}

func TestDecodeSeriesRejectsForeignVersions(t *testing.T) {
	_, err := DecodeSeries([]byte(`{"schema_version":2,"codec_version":1,"run_id":"r1"}`))
	require.ErrorIs(t, err, ErrVersionMismatch)
}

package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"evoroot/internal/model"
)

var ErrVersionMismatch = errors.New("record version mismatch")

func EncodeRun(record model.RunRecord) ([]byte, error) {
	record.SchemaVersion = model.CurrentSchemaVersion
	record.CodecVersion = model.CurrentCodecVersion
	return json.Marshal(record)
}

func DecodeRun(data []byte) (model.RunRecord, error) {
	var record model.RunRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return model.RunRecord{}, err
	}
	if err := checkVersion(record.VersionedRecord); err != nil {
		return model.RunRecord{}, err
	}
	return record, nil
}

func EncodeSeries(series model.SeriesRecord) ([]byte, error) {
	series.SchemaVersion = model.CurrentSchemaVersion
	series.CodecVersion = model.CurrentCodecVersion
	return json.Marshal(series)
}

func DecodeSeries(data []byte) (model.SeriesRecord, error) {
	var series model.SeriesRecord
	if err := json.Unmarshal(data, &series); err != nil {
		return model.SeriesRecord{}, err
	}
	if err := checkVersion(series.VersionedRecord); err != nil {
		return model.SeriesRecord{}, err
	}
	return series, nil
}

func checkVersion(v model.VersionedRecord) error {
	if v.SchemaVersion != model.CurrentSchemaVersion || v.CodecVersion != model.CurrentCodecVersion {
		return fmt.Errorf("%w: schema=%d codec=%d", ErrVersionMismatch, v.SchemaVersion, v.CodecVersion)
	}
	return nil
}

package storage

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"
)

type migration func(a *Adapter) error

// migrations maps a stored schema version ("" when absent) to the upgrade that brings it to SchemaVersion.
var migrations = map[string]migration{
	"": backfillTimestamps,
}

func (a *Adapter) migrate(from string) error {
	m, ok := migrations[from]
	if !ok {
		return nil
	}
	return m(a)
}

// backfillTimestamps stamps records written before timestamps were stored as ISO strings.
func backfillTimestamps(a *Adapter) error {
	now := a.now().UTC().Format(time.RFC3339Nano)

	if err := a.rewriteRecords(Reports, func(r map[string]any) {
		if _, ok := r["timestamp"].(string); !ok {
			r["timestamp"] = now
		}
		fillMissing(r, "createdAt", now)
		fillMissing(r, "updatedAt", now)
	}); err != nil {
		return err
	}

	return a.rewriteRecords(Users, func(u map[string]any) {
		fillMissing(u, "createdAt", now)
		fillMissing(u, "updatedAt", now)
	})
}

func fillMissing(record map[string]any, field, value string) {
	if v, ok := record[field].(string); !ok || v == "" {
		record[field] = value
	}
}

// rewriteRecords applies fn to every raw record of a collection. Absent collections are skipped.
func (a *Adapter) rewriteRecords(name string, fn func(map[string]any)) error {
	raw, ok := a.get(a.Key(name))
	if !ok {
		return nil
	}

	var records []map[string]any
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return errors.Wrapf(err, "parse %s", name)
	}
	for _, r := range records {
		fn(r)
	}

	data, err := json.Marshal(records)
	if err != nil {
		return errors.Wrapf(err, "encode %s", name)
	}
	if !a.set(a.Key(name), string(data)) {
		return errors.Errorf("write %s", name)
	}
	return nil
}

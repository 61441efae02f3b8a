// Package store provides durable backends for the timer record.
package store

import (
	"fmt"
	"time"

	"github.com/soocke/countdown-go/domain/countdown"
)

// storedRecord is the on-disk shape shared by the backends. Durations are
// nanoseconds and times are Unix nanoseconds so a round trip is exact.
type storedRecord struct {
	Status          string `json:"status"`
	DueUnixNano     *int64 `json:"due_unix_nano,omitempty"`
	AnchorUnixNano  *int64 `json:"pause_anchor_unix_nano,omitempty"`
	ConfiguredNanos int64  `json:"configured_duration_ns"`
	SoundID         *int   `json:"sound_id,omitempty"`
}

func toStored(r countdown.Record) storedRecord {
	return storedRecord{
		Status:          r.Status.String(),
		DueUnixNano:     unixNano(r.DueTime),
		AnchorUnixNano:  unixNano(r.PauseAnchor),
		ConfiguredNanos: int64(r.ConfiguredDuration),
		SoundID:         r.SoundID,
	}
}

func (s storedRecord) record() (countdown.Record, error) {
	status, err := countdown.ParseStatus(s.Status)
	if err != nil {
		return countdown.Record{}, fmt.Errorf("decode timer record: %w", err)
	}
	return countdown.Record{
		Status:             status,
		DueTime:            fromUnixNano(s.DueUnixNano),
		PauseAnchor:        fromUnixNano(s.AnchorUnixNano),
		ConfiguredDuration: time.Duration(s.ConfiguredNanos),
		SoundID:            s.SoundID,
	}, nil
}

func unixNano(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	n := t.UnixNano()
	return &n
}

func fromUnixNano(n *int64) *time.Time {
	if n == nil {
		return nil
	}
	t := time.Unix(0, *n)
	return &t
}

package briefingstore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/mtnwx/avalanche-briefing/internal/domain/briefing"
)

// ValkeyStore persists summary records in a Valkey-compatible database so
// multiple instances share one cache.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "briefing"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

// Get implements briefing.Store.
func (s *ValkeyStore) Get(ctx context.Context, key string) (briefing.SummaryRecord, bool, error) {
	if key == "" {
		return briefing.SummaryRecord{}, false, nil
	}
	cmd := s.client.B().Get().Key(s.recordKey(key)).Build()
	payload, err := s.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return briefing.SummaryRecord{}, false, nil
		}
		return briefing.SummaryRecord{}, false, err
	}
	var record briefing.SummaryRecord
	if err := json.Unmarshal([]byte(payload), &record); err != nil {
		return briefing.SummaryRecord{}, false, err
	}
	return record, true, nil
}

// Save implements briefing.Store.
func (s *ValkeyStore) Save(ctx context.Context, record briefing.SummaryRecord, ttl time.Duration) error {
	if record.Key == "" {
		return nil
	}
	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}

	builder := s.client.B().Set().Key(s.recordKey(record.Key)).Value(string(payload))
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

func (s *ValkeyStore) recordKey(key string) string {
	return s.prefix + ":summary:" + key
}

var _ briefing.Store = (*ValkeyStore)(nil)

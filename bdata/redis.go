package bdata

import (
	"context"
	"encoding/json"

	"git.thinkinpower.net/bincheck/mod"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const (
	redisRecordPrefix = "bincheck:bin:"
	redisHistoryKey   = "bincheck:history"
)

// redisDatabase stores each record as JSON under its own key and keeps the
// bins in a sorted set scored by fetched_at (unix ms). List re-sorts on the
// full timestamp kept in the JSON.
type redisDatabase struct {
	client *redis.Client
}

func NewRedisDatabase(ctx context.Context, redisURL string) (BinDatabase, error) {
	if redisURL == "" {
		return nil, errors.New("REDIS_URL is not configured")
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, errors.Wrap(err, "parse redis URL")
	}
	client := redis.NewClient(opts)
	if err = client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "redis ping failed")
	}
	return &redisDatabase{client: client}, nil
}

func (r *redisDatabase) Get(ctx context.Context, bin string) (*mod.BinRecord, error) {
	body, err := r.client.Get(ctx, redisRecordPrefix+bin).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read bin %s", bin)
	}
	var record mod.BinRecord
	if err = json.Unmarshal(body, &record); err != nil {
		return nil, errors.Wrapf(err, "decode bin %s", bin)
	}
	return &record, nil
}

func (r *redisDatabase) Save(ctx context.Context, record mod.BinRecord) error {
	if record.Bin == "" {
		return ErrEmptyBin
	}
	body, err := json.Marshal(record)
	if err != nil {
		return errors.Wrapf(err, "encode bin %s", record.Bin)
	}
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, redisRecordPrefix+record.Bin, body, 0)
		pipe.ZAdd(ctx, redisHistoryKey, redis.Z{Score: float64(record.FetchedAt.UnixMilli()), Member: record.Bin})
		return nil
	})
	return errors.Wrapf(err, "save bin %s", record.Bin)
}

func (r *redisDatabase) List(ctx context.Context) ([]mod.BinRecord, error) {
	bins, err := r.client.ZRevRange(ctx, redisHistoryKey, 0, -1).Result()
	if err != nil {
		return nil, errors.Wrap(err, "list history")
	}
	result := make([]mod.BinRecord, 0, len(bins))
	if len(bins) == 0 {
		return result, nil
	}
	keys := make([]string, len(bins))
	for i, bin := range bins {
		keys[i] = redisRecordPrefix + bin
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Wrap(err, "read history records")
	}
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			//sorted set和记录不同步, 跳过
			continue
		}
		var record mod.BinRecord
		if err = json.Unmarshal([]byte(s), &record); err != nil {
			return nil, errors.Wrapf(err, "decode bin %s", bins[i])
		}
		result = append(result, record)
	}
	sortRecords(result)
	return result, nil
}

func (r *redisDatabase) Clear(ctx context.Context) error {
	bins, err := r.client.ZRange(ctx, redisHistoryKey, 0, -1).Result()
	if err != nil {
		return errors.Wrap(err, "list history")
	}
	keys := make([]string, 0, len(bins)+1)
	for _, bin := range bins {
		keys = append(keys, redisRecordPrefix+bin)
	}
	keys = append(keys, redisHistoryKey)
	return errors.Wrap(r.client.Del(ctx, keys...).Err(), "clear history")
}

func (r *redisDatabase) Close() error {
	return r.client.Close()
}

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/AlexZinkM/wallet-link/internal/model"

	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix = "walletlink"

	fieldTelegramID = "telegram_id"
	fieldPublicKey  = "public_key"
	fieldImportType = "import_type"
	fieldSeedPhrase = "seed_phrase"
	fieldPrivateKey = "private_key"
	fieldSealed     = "sealed"
	fieldCreatedAt  = "created_at"
)

// RedisStore keeps one hash per user plus a set indexing all user ids.
type RedisStore struct {
	rdb  *redis.Client
	opts options
}

// NewRedisStore connects to url and pings it.
func NewRedisStore(ctx context.Context, url string, opts ...Option) (*RedisStore, error) {
	redisOpts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	rdb := redis.NewClient(redisOpts)

	// Test connection
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return NewRedisStoreFromClient(rdb, opts...), nil
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(rdb *redis.Client, opts ...Option) *RedisStore {
	return &RedisStore{rdb: rdb, opts: newOptions(opts)}
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

// Key helpers
func walletKey(userID int64) string {
	return fmt.Sprintf("%s:wallet:%d", redisKeyPrefix, userID)
}

func indexKey() string {
	return redisKeyPrefix + ":wallets"
}

// Get returns userID's record without secret material.
func (s *RedisStore) Get(ctx context.Context, userID int64) (model.WalletRecord, error) {
	rec, err := s.load(ctx, userID)
	if err != nil {
		return model.WalletRecord{}, err
	}
	if err := checkPublicKey(rec); err != nil {
		return model.WalletRecord{}, err
	}
	return rec.WithoutSecret(), nil
}

// Save overwrites userID's record. The user is new when its id was not in the index.
func (s *RedisStore) Save(ctx context.Context, userID int64, identity model.WalletIdentity, kind model.ImportKind) (bool, error) {
	rec, err := s.opts.buildRecord(userID, identity, kind)
	if err != nil {
		return false, err
	}

	fields, err := encodeRecord(rec)
	if err != nil {
		return false, err
	}

	key := walletKey(userID)
	var added *redis.IntCmd
	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, fields)
		added = pipe.SAdd(ctx, indexKey(), userID)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to save wallet: %w", err)
	}
	return added.Val() == 1, nil
}

// Delete removes userID's record and reports whether there was one.
func (s *RedisStore) Delete(ctx context.Context, userID int64) (bool, error) {
	var deleted *redis.IntCmd
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		deleted = pipe.Del(ctx, walletKey(userID))
		pipe.SRem(ctx, indexKey(), userID)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete wallet: %w", err)
	}
	return deleted.Val() > 0, nil
}

// Reveal returns userID's record with its secret in clear.
func (s *RedisStore) Reveal(ctx context.Context, userID int64) (model.WalletRecord, error) {
	rec, err := s.load(ctx, userID)
	if err != nil {
		return model.WalletRecord{}, err
	}
	return s.opts.reveal(rec)
}

// List returns all records ordered by user id, without secret material.
func (s *RedisStore) List(ctx context.Context) ([]model.WalletRecord, error) {
	members, err := s.rdb.SMembers(ctx, indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list wallets: %w", err)
	}

	ids := make([]int64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid user id %q in index: %w", m, err)
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]model.WalletRecord, 0, len(ids))
	for _, id := range ids {
		rec, err := s.load(ctx, id)
		if errors.Is(err, model.ErrWalletNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, rec.WithoutSecret())
	}
	return out, nil
}

func (s *RedisStore) load(ctx context.Context, userID int64) (model.WalletRecord, error) {
	fields, err := s.rdb.HGetAll(ctx, walletKey(userID)).Result()
	if err != nil {
		return model.WalletRecord{}, fmt.Errorf("failed to get wallet: %w", err)
	}
	if len(fields) == 0 {
		return model.WalletRecord{}, model.ErrWalletNotFound
	}
	return decodeRecord(fields)
}

func encodeRecord(rec model.WalletRecord) (map[string]any, error) {
	fields := map[string]any{
		fieldTelegramID: strconv.FormatInt(rec.UserID, 10),
		fieldPublicKey:  rec.PublicKey,
		fieldImportType: string(rec.ImportKind),
		fieldSeedPhrase: rec.SeedPhrase,
		fieldPrivateKey: rec.PrivateKey,
		fieldCreatedAt:  rec.CreatedAt.Format(time.RFC3339Nano),
	}
	if rec.Sealed != nil {
		raw, err := json.Marshal(rec.Sealed)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal sealed secret: %w", err)
		}
		fields[fieldSealed] = string(raw)
	}
	return fields, nil
}

func decodeRecord(fields map[string]string) (model.WalletRecord, error) {
	userID, err := strconv.ParseInt(fields[fieldTelegramID], 10, 64)
	if err != nil {
		return model.WalletRecord{}, fmt.Errorf("invalid %s: %w", fieldTelegramID, err)
	}

	rec := model.WalletRecord{
		UserID:     userID,
		PublicKey:  fields[fieldPublicKey],
		ImportKind: model.ImportKind(fields[fieldImportType]),
		SeedPhrase: fields[fieldSeedPhrase],
		PrivateKey: fields[fieldPrivateKey],
	}

	if v := fields[fieldCreatedAt]; v != "" {
		rec.CreatedAt, err = time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return model.WalletRecord{}, fmt.Errorf("invalid %s: %w", fieldCreatedAt, err)
		}
	}

	if v := fields[fieldSealed]; v != "" {
		var sealed model.SealedSecret
		if err := json.Unmarshal([]byte(v), &sealed); err != nil {
			return model.WalletRecord{}, fmt.Errorf("invalid %s: %w", fieldSealed, err)
		}
		rec.Sealed = &sealed
	}
	return rec, nil
}

package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexZinkM/wallet-link/internal/model"
)

// redisStoreForTest connects to REDIS_TEST_URL, or to an in-process server when unset.
func redisStoreForTest(t *testing.T, opts ...Option) *RedisStore {
	t.Helper()
	url := os.Getenv("REDIS_TEST_URL")
	if url == "" {
		url = "redis://" + miniredis.RunT(t).Addr()
	}
	s, err := NewRedisStore(context.Background(), url, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRedisStore(t *testing.T) {
	s := redisStoreForTest(t, WithClock(testClock))
	base := time.Now().UnixNano() % 1_000_000_000 * 1000
	exerciseStore(t, s, base)
}

func TestRedisStore_Sealed(t *testing.T) {
	s := redisStoreForTest(t, WithSealer(testSealer(t, "pass")), WithClock(testClock))
	base := time.Now().UnixNano()%1_000_000_000*1000 + 500
	exerciseStore(t, s, base)
}

func TestRedisStore_NewUserAndDeleteFlags(t *testing.T) {
	ctx := context.Background()
	s := redisStoreForTest(t, WithClock(testClock))
	user := time.Now().UnixNano()%1_000_000_000*1000 + 900
	identity := testIdentity(t, testMnemonic, model.FromMnemonic)

	isNew, err := s.Save(ctx, user, identity, model.ImportKindSeed)
	require.NoError(t, err)
	assert.True(t, isNew)

	isNew, err = s.Save(ctx, user, identity, model.ImportKindSeed)
	require.NoError(t, err)
	assert.False(t, isNew)

	removed, err := s.Delete(ctx, user)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = s.Delete(ctx, user)
	require.NoError(t, err)
	assert.False(t, removed)

	_, err = s.Get(ctx, user)
	assert.ErrorIs(t, err, model.ErrWalletNotFound)
}

func TestRedisStore_StaleIndexEntrySkipped(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	s, err := NewRedisStore(ctx, "redis://"+mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	_, err = s.Save(ctx, 5, testIdentity(t, testMnemonic, model.FromMnemonic), model.ImportKindSeed)
	require.NoError(t, err)
	_, err = mr.SAdd(indexKey(), "6")
	require.NoError(t, err)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(5), list[0].UserID)
}

func TestNewRedisStore_BadURL(t *testing.T) {
	t.Parallel()
	_, err := NewRedisStore(context.Background(), "not a url")
	assert.Error(t, err)
}

func TestRecordEncoding(t *testing.T) {
	t.Parallel()

	rec := model.WalletRecord{
		UserID:     77,
		PublicKey:  testAddress,
		ImportKind: model.ImportKindSeed,
		Sealed:     &model.SealedSecret{Salt: "c2FsdA==", Nonce: "bm9uY2U=", CipherText: "Y3Q="},
		CreatedAt:  testClock(),
	}

	fields, err := encodeRecord(rec)
	require.NoError(t, err)
	assert.Equal(t, "77", fields[fieldTelegramID])
	assert.Equal(t, "seed", fields[fieldImportType])

	flat := make(map[string]string, len(fields))
	for k, v := range fields {
		flat[k] = v.(string)
	}
	got, err := decodeRecord(flat)
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	_, err = decodeRecord(map[string]string{fieldTelegramID: "x"})
	assert.Error(t, err)
}

package solana

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/gagliardetto/solana-go"

	"github.com/AlexZinkM/wallet-link/internal/model"
)

type memRecords struct {
	mu      sync.Mutex
	records map[int64]model.WalletRecord
	saveErr error
	getErr  error
	saves   int
}

func newMemRecords() *memRecords {
	return &memRecords{records: make(map[int64]model.WalletRecord)}
}

func (m *memRecords) Get(_ context.Context, userID int64) (model.WalletRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return model.WalletRecord{}, m.getErr
	}
	rec, ok := m.records[userID]
	if !ok {
		return model.WalletRecord{}, model.ErrWalletNotFound
	}
	return rec.WithoutSecret(), nil
}

func (m *memRecords) Save(_ context.Context, userID int64, identity model.WalletIdentity, kind model.ImportKind) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveErr != nil {
		return false, m.saveErr
	}
	_, existed := m.records[userID]
	m.records[userID] = model.NewWalletRecord(userID, identity, kind, fixedNow())
	return !existed, nil
}

func (m *memRecords) Delete(_ context.Context, userID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.records[userID]
	delete(m.records, userID)
	return ok, nil
}

func (m *memRecords) Reveal(_ context.Context, userID int64) (model.WalletRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[userID]
	if !ok {
		return model.WalletRecord{}, model.ErrWalletNotFound
	}
	return rec, nil
}

func (m *memRecords) List(_ context.Context) ([]model.WalletRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.WalletRecord, 0, len(m.records))
	for _, rec := range m.records {
		out = append(out, rec.WithoutSecret())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

type recordingNotifier struct {
	mu     sync.Mutex
	alerts []model.NewUserAlert
}

func (n *recordingNotifier) NotifyNewUser(_ context.Context, alert model.NewUserAlert) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.alerts = append(n.alerts, alert)
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.alerts)
}

type fakeChain struct {
	lamports uint64
	tokens   int
	err      error
}

func (f *fakeChain) GetBalance(_ context.Context, _ solana.PublicKey) (uint64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.lamports, nil
}

func (f *fakeChain) CountTokenHoldings(_ context.Context, _ solana.PublicKey) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.tokens, nil
}

type fakeMarket struct {
	data *model.MarketData
	err  error
}

func (f *fakeMarket) GetSOLMarket(_ context.Context) (*model.MarketData, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.data, nil
}

var errBoom = errors.New("boom")

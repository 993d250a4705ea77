package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexZinkM/wallet-link/internal/model"
	"github.com/AlexZinkM/wallet-link/internal/store"
	"github.com/AlexZinkM/wallet-link/solana"
)

const (
	testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
	testAddress  = "EHqmfkN89RJ7Y33CXM6uCzhVeuywHoJXZZLszBHHZy7o"
	testKeypair  = "2toRUbaioVgUMx5nZ3bDQMiTzqqwoCn5Ghet7XtztT5X233cSApiZPs6VZujgQHxQVucrpSZHimy4bXrUE3qqVXo"
)

// runCLI executes the command tree against a file store at path.
func runCLI(t *testing.T, path, stdin string, args ...string) (string, error) {
	t.Helper()
	return runCLIEnv(t, path, nil, stdin, args...)
}

// runCLIEnv is runCLI with extra environment variables.
func runCLIEnv(t *testing.T, path string, env map[string]string, stdin string, args ...string) (string, error) {
	t.Helper()
	for _, key := range []string{"STORE_BACKEND", "STORE_SEAL", "SESSION_TTL", "OWNER_TELEGRAM_ID", "TELEGRAM_BOT_TOKEN", "TELEGRAM_API_URL"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	t.Setenv("STORE_FILE_PATH", path)
	for k, v := range env {
		t.Setenv(k, v)
	}

	var out bytes.Buffer
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&out)
	err := root.Execute()
	return out.String(), err
}

func seedStore(t *testing.T, path string, userID int64) {
	t.Helper()
	s, err := store.OpenFile(path)
	require.NoError(t, err)
	identity, err := solana.DeriveFromMnemonic(testMnemonic)
	require.NoError(t, err)
	_, err = s.Save(context.Background(), userID, identity, model.ImportKindSeed)
	require.NoError(t, err)
}

func TestDeriveCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallets.json")

	out, err := runCLI(t, path, testMnemonic+"\n", "derive")
	require.NoError(t, err)
	assert.Contains(t, out, "Address: "+testAddress)
	assert.Contains(t, out, "Source:  seed_phrase")
	assert.NotContains(t, out, "Keypair")

	out, err = runCLI(t, path, testMnemonic, "derive", "--show-keypair")
	require.NoError(t, err)
	assert.Contains(t, out, "Keypair: "+testKeypair)

	_, err = runCLI(t, path, "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon\n", "derive")
	assert.ErrorIs(t, err, solana.ErrInvalidChecksum)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "derive must not write the store")
}

func TestUsersAndUnlinkCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallets.json")

	out, err := runCLI(t, path, "", "users")
	require.NoError(t, err)
	assert.Contains(t, out, "No linked wallets.")

	seedStore(t, path, 42)

	out, err = runCLI(t, path, "", "users")
	require.NoError(t, err)
	assert.Contains(t, out, "42")
	assert.Contains(t, out, testAddress)
	assert.Contains(t, out, "Seed")
	assert.NotContains(t, out, "abandon")

	out, err = runCLI(t, path, "", "unlink", "42")
	require.NoError(t, err)
	assert.Contains(t, out, "Unlinked wallet of user 42.")

	_, err = runCLI(t, path, "", "unlink", "42")
	assert.ErrorIs(t, err, model.ErrWalletNotFound)

	_, err = runCLI(t, path, "", "unlink", "nope")
	assert.Error(t, err)
}

func TestResealCmd_ToPlain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallets.json")
	seedStore(t, path, 1)
	seedStore(t, path, 2)

	out, err := runCLI(t, path, "", "reseal", "--to-plain")
	require.NoError(t, err)
	assert.Contains(t, out, "Resealed 2 wallet(s).")

	s, err := store.OpenFile(path)
	require.NoError(t, err)
	rec, err := s.Reveal(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, testMnemonic, rec.SeedPhrase)
}

func TestResealCmd_RejectsMismatchedRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallets.json")
	// the secret derives a different address than the one stored
	doc := `{"wallets":[{"telegramId":3,"publicKey":"` + testAddress + `","importKind":"seed","seedPhrase":"` +
		`legal winner thank year wave sausage worth useful legal winner thank yellow","createdAt":"2026-01-01T00:00:00Z"}]}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	_, err := runCLI(t, path, "", "reseal", "--to-plain")
	assert.ErrorContains(t, err, "record says "+testAddress)
}

// fakeBotAPI answers sendMessage and records chat id and text per call.
// Chat ids in blocked get an error response.
func fakeBotAPI(t *testing.T, blocked ...string) (*httptest.Server, func() [][2]string) {
	t.Helper()
	var (
		mu   sync.Mutex
		sent [][2]string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/botTOKEN/sendMessage", r.URL.Path)
		assert.NoError(t, r.ParseForm())
		chatID := r.PostForm.Get("chat_id")

		mu.Lock()
		sent = append(sent, [2]string{chatID, r.PostForm.Get("text")})
		mu.Unlock()

		for _, b := range blocked {
			if b == chatID {
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"ok":false,"error_code":403,"description":"Forbidden: bot was blocked by the user"}`))
				return
			}
		}
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":1,"date":0,"chat":{"id":` + chatID + `,"type":"private"}}}`))
	}))
	t.Cleanup(srv.Close)

	return srv, func() [][2]string {
		mu.Lock()
		defer mu.Unlock()
		return append([][2]string(nil), sent...)
	}
}

func TestSendCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallets.json")
	srv, sent := fakeBotAPI(t)
	env := map[string]string{"TELEGRAM_BOT_TOKEN": "TOKEN", "TELEGRAM_API_URL": srv.URL}

	out, err := runCLIEnv(t, path, env, "", "send", "42", "Hello", "<there>")
	require.NoError(t, err)
	assert.Contains(t, out, "Message sent to user 42.")

	calls := sent()
	require.Len(t, calls, 1)
	assert.Equal(t, "42", calls[0][0])
	assert.Equal(t, "<b>Message from Bot Owner:</b>\n\nHello &lt;there&gt;", calls[0][1])

	_, err = runCLIEnv(t, path, env, "", "send", "abc", "Hello")
	assert.ErrorContains(t, err, "invalid user id")

	_, err = runCLIEnv(t, path, env, "", "send", "42")
	assert.Error(t, err)

	_, err = runCLI(t, path, "", "send", "42", "Hello")
	assert.ErrorContains(t, err, "TELEGRAM_BOT_TOKEN")
	assert.Len(t, sent(), 1)
}

func TestSendCmd_Failure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallets.json")
	srv, _ := fakeBotAPI(t, "42")
	env := map[string]string{"TELEGRAM_BOT_TOKEN": "TOKEN", "TELEGRAM_API_URL": srv.URL}

	out, err := runCLIEnv(t, path, env, "", "send", "42", "Hello")
	assert.ErrorContains(t, err, "bot was blocked")
	assert.NotContains(t, out, "Message sent")
}

func TestBroadcastCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallets.json")
	for _, id := range []int64{1, 2, 3, 4} {
		seedStore(t, path, id)
	}
	srv, sent := fakeBotAPI(t, "3")
	env := map[string]string{
		"TELEGRAM_BOT_TOKEN": "TOKEN",
		"TELEGRAM_API_URL":   srv.URL,
		"OWNER_TELEGRAM_ID":  "2",
	}

	out, err := runCLIEnv(t, path, env, "", "broadcast", "Maintenance", "tonight")
	require.NoError(t, err)
	assert.Contains(t, out, "Sent to: 2 users")
	assert.Contains(t, out, "Failed: 1 users")

	var chats []string
	for _, call := range sent() {
		chats = append(chats, call[0])
		assert.Equal(t, "<b>Broadcast Message:</b>\n\nMaintenance tonight", call[1])
	}
	assert.Equal(t, []string{"1", "3", "4"}, chats, "the owner gets no broadcast")
}

func TestBroadcastCmd_NoUsers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallets.json")
	srv, sent := fakeBotAPI(t)
	env := map[string]string{"TELEGRAM_BOT_TOKEN": "TOKEN", "TELEGRAM_API_URL": srv.URL}

	out, err := runCLIEnv(t, path, env, "", "broadcast", "hi")
	require.NoError(t, err)
	assert.Contains(t, out, "Sent to: 0 users")
	assert.Empty(t, sent())
}

package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"
)

// Store backends
const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Config contains all configuration parameters for the application.
// Note: the sealing passphrase is prompted at runtime and stored in memory - use GetStorePassphrase()
type Config struct {
	Port          string        `envconfig:"PORT" default:"8080"`
	SolanaRPCURL  string        `envconfig:"SOLANA_RPC_URL" default:"https://api.mainnet-beta.solana.com"`
	CoinGeckoURL  string        `envconfig:"COINGECKO_URL" default:"https://api.coingecko.com/api/v3"`
	StoreBackend  string        `envconfig:"STORE_BACKEND" default:"file"`
	StoreFilePath string        `envconfig:"STORE_FILE_PATH" default:"wallets.json"`
	RedisURL      string        `envconfig:"REDIS_URL" default:"redis://localhost:6379/0"`
	StoreSeal     bool          `envconfig:"STORE_SEAL" default:"false"`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"0"`
	OwnerID       int64         `envconfig:"OWNER_TELEGRAM_ID" default:"0"`
	BotToken      string        `envconfig:"TELEGRAM_BOT_TOKEN"`
	TelegramURL   string        `envconfig:"TELEGRAM_API_URL" default:"https://api.telegram.org"`
	LogLevel      string        `envconfig:"LOG_LEVEL" default:"info"`
}

// Validate checks values envconfig cannot check by itself.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendFile:
		if c.StoreFilePath == "" {
			return errors.New("STORE_FILE_PATH must be set for the file backend")
		}
	case BackendRedis:
		if c.RedisURL == "" {
			return errors.New("REDIS_URL must be set for the redis backend")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q (want %q or %q)", c.StoreBackend, BackendFile, BackendRedis)
	}
	if c.SessionTTL < 0 {
		return errors.New("SESSION_TTL cannot be negative")
	}
	if c.OwnerID != 0 && c.BotToken == "" {
		return errors.New("TELEGRAM_BOT_TOKEN must be set when OWNER_TELEGRAM_ID is set")
	}
	return nil
}

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
func Init() error {
	c, err := Load()
	if err != nil {
		return err
	}
	cfg = c
	return nil
}

// Load reads and validates configuration without touching the global instance.
func Load() (*Config, error) {
	c := &Config{}
	if err := envconfig.Process("", c); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return c, nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// GetPort returns port from configuration
func GetPort() string {
	return Get().Port
}

// GetSolanaRPCURL returns Solana RPC URL from configuration
func GetSolanaRPCURL() string {
	return Get().SolanaRPCURL
}

// GetSessionTTL returns how long an import session may stay pending, 0 means forever
func GetSessionTTL() time.Duration {
	return Get().SessionTTL
}

var passphraseBytes []byte

// PromptForPassphrase prompts for the store sealing passphrase in the terminal.
// The passphrase is read without echoing (hidden input) and stored in memory.
// Call this at startup before the server begins handling requests.
func PromptForPassphrase() error {
	raw, err := ReadSecret("Enter store passphrase: ")
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		return errors.New("passphrase cannot be empty")
	}

	passphraseBytes = make([]byte, len(raw))
	copy(passphraseBytes, raw)
	clear(raw)
	return nil
}

// ReadSecret prints prompt to stderr and reads one line from the terminal without echo.
func ReadSecret(prompt string) ([]byte, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, errors.New("stdin is not a terminal: run the app interactively to enter secrets")
	}
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return raw, nil
}

// GetStorePassphrase returns the passphrase stored in memory (from PromptForPassphrase).
// Returns an error if the passphrase was not set.
// Caller must zero the returned slice after use for security.
func GetStorePassphrase() ([]byte, error) {
	if len(passphraseBytes) == 0 {
		return nil, errors.New("passphrase not set: call PromptForPassphrase at startup")
	}
	out := make([]byte, len(passphraseBytes))
	copy(out, passphraseBytes)
	return out, nil
}

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	defaultNetwork = "localnet"

	configFile = "config.json"
)

// Config holds all dappdesk configuration.
type Config struct {
	TargetNetwork string `json:"target_network"` // network slug, e.g. "sepolia"
	RPCOverride   string `json:"rpc_override"`   // node URL; overrides the network's default RPC
	DefaultWallet string `json:"default_wallet"`

	// internal: config dir path used for Save()
	configDir string
}

func defaults(dir string) *Config {
	return &Config{
		TargetNetwork: defaultNetwork,
		configDir:     dir,
	}
}

// Load reads config from dir (or creates defaults). dir defaults to ~/.dappdesk.
func Load(dir string) (*Config, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("could not determine home dir: %w", err)
		}
		dir = filepath.Join(home, ".dappdesk")
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("could not create config dir: %w", err)
	}

	cfg := defaults(dir)

	path := filepath.Join(dir, configFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.configDir = dir
	if cfg.TargetNetwork == "" {
		cfg.TargetNetwork = defaultNetwork
	}

	return cfg, nil
}

// Save writes the config to disk.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.configDir, 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.configDir, configFile), data, 0o600)
}

// Dir returns the config directory.
func (c *Config) Dir() string { return c.configDir }

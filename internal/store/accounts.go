// Package store loads and saves the account registry from YAML.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/stmt-ingest/internal/logging"

	"gopkg.in/yaml.v3"
)

// AccountConfig describes one ledger account in accounts.yaml.
type AccountConfig struct {
	AccountID   int64  `yaml:"account_id"`
	Name        string `yaml:"name"`
	Institution string `yaml:"institution,omitempty"`
	BankName    string `yaml:"bank_name,omitempty"`
	CardName    string `yaml:"card_name,omitempty"`
}

// AccountsFile is the top-level YAML structure: "accounts: [...]".
type AccountsFile struct {
	Accounts []AccountConfig `yaml:"accounts"`
}

// AccountStore manages loading of the account registry.
type AccountStore struct {
	AccountsFile string
	logger       logging.Logger
}

// NewAccountStore creates a store for the account registry.
func NewAccountStore(accountsFile string, logger logging.Logger) *AccountStore {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &AccountStore{AccountsFile: accountsFile, logger: logger}
}

// FindConfigFile looks for a configuration file in standard locations.
func (s *AccountStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".config", "stmt-ingest", filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

// LoadAccounts loads the account registry. A missing file yields an empty
// slice, not an error.
func (s *AccountStore) LoadAccounts() ([]AccountConfig, error) {
	filename := s.AccountsFile
	if filename == "" {
		filename = "accounts.yaml"
	}

	filePath, err := s.FindConfigFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.WithField("file", filename).Warn("Accounts file not found")
			return []AccountConfig{}, nil
		}
		return nil, fmt.Errorf("error resolving accounts file: %w", err)
	}

	data, err := os.ReadFile(filePath) // #nosec G304 -- resolved from known config locations
	if err != nil {
		return nil, fmt.Errorf("error reading accounts file: %w", err)
	}

	var file AccountsFile
	if err := yaml.Unmarshal(data, &file); err == nil && len(file.Accounts) > 0 {
		s.logger.WithField("count", len(file.Accounts)).Debug("Loaded accounts")
		return file.Accounts, nil
	}

	// Fallback: a bare YAML list without the top-level key.
	var accounts []AccountConfig
	if err := yaml.Unmarshal(data, &accounts); err != nil {
		return nil, fmt.Errorf("error parsing accounts file: %w", err)
	}
	s.logger.WithField("count", len(accounts)).Debug("Loaded accounts")
	return accounts, nil
}

// FindByName returns the account whose name matches, case-insensitively.
func (s *AccountStore) FindByName(name string) (AccountConfig, bool, error) {
	accounts, err := s.LoadAccounts()
	if err != nil {
		return AccountConfig{}, false, err
	}
	for _, account := range accounts {
		if strings.EqualFold(account.Name, name) {
			return account, true, nil
		}
	}
	return AccountConfig{}, false, nil
}

// FindByStatement matches an account by the bank and card names encoded in a
// statement filename.
func (s *AccountStore) FindByStatement(bankName, cardName string) (AccountConfig, bool, error) {
	accounts, err := s.LoadAccounts()
	if err != nil {
		return AccountConfig{}, false, err
	}
	for _, account := range accounts {
		if strings.EqualFold(account.BankName, bankName) && strings.EqualFold(account.CardName, cardName) {
			return account, true, nil
		}
	}
	return AccountConfig{}, false, nil
}

// SaveAccounts writes the registry back to YAML under the top-level key.
func (s *AccountStore) SaveAccounts(accounts []AccountConfig) error {
	filename := s.AccountsFile
	if filename == "" {
		filename = "accounts.yaml"
	}

	filePath, err := s.FindConfigFile(filename)
	if err != nil {
		if !filepath.IsAbs(filename) {
			filePath = filepath.Join("config", filename)
		} else {
			filePath = filename
		}
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0750); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	data, err := yaml.Marshal(AccountsFile{Accounts: accounts})
	if err != nil {
		return fmt.Errorf("error marshaling accounts: %w", err)
	}
	if err := os.WriteFile(filePath, data, 0600); err != nil {
		return fmt.Errorf("error writing accounts file: %w", err)
	}

	s.logger.WithField("count", len(accounts)).Debug("Saved accounts")
	return nil
}

package contract

import (
	"fmt"
	"math/big"

	"github.com/ilyakaznacheev/cleanenv"
)

// DaoConfig carries the tunables of one dao instance. Values come from the
// environment with sane fallbacks, so a bare `guilddao simulate` run works
// out of the box.
type DaoConfig struct {
	// VotingPeriodSecs is the window during which votes are accepted; the
	// result only stabilizes after it elapsed.
	VotingPeriodSecs int64 `yaml:"voting_period_secs" env:"DAO_VOTING_PERIOD_SECS" env-default:"604800"`
	// GracePeriodSecs delays processing after the window closed; the ballot
	// reports in-progress until it elapsed too.
	GracePeriodSecs int64 `yaml:"grace_period_secs" env:"DAO_GRACE_PERIOD_SECS" env-default:"0"`
	// QuorumPercent requires that many percent of all shares to participate
	// before a ballot can pass. Zero disables the quorum check.
	QuorumPercent int `yaml:"quorum_percent" env:"DAO_QUORUM_PERCENT" env-default:"0"`
	// SharePrice is the native coin cost of one onboarding chunk.
	SharePrice int64 `yaml:"share_price" env:"DAO_SHARE_PRICE" env-default:"1000"`
	// ChunkShares is how many shares one paid chunk mints.
	ChunkShares int64 `yaml:"chunk_shares" env:"DAO_CHUNK_SHARES" env-default:"100"`
}

// LoadConfig reads the dao configuration from the environment.
func LoadConfig() (*DaoConfig, error) {
	var cfg DaoConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read dao config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultConfig returns the env-default values without touching the
// environment, handy for tests.
func DefaultConfig() *DaoConfig {
	return &DaoConfig{
		VotingPeriodSecs: 604800,
		GracePeriodSecs:  0,
		QuorumPercent:    0,
		SharePrice:       1000,
		ChunkShares:      100,
	}
}

// Validate rejects configurations the modules cannot operate under.
func (c *DaoConfig) Validate() error {
	if c.VotingPeriodSecs <= 0 {
		return invalidInput("voting period must be positive")
	}
	if c.GracePeriodSecs < 0 {
		return invalidInput("grace period must not be negative")
	}
	if c.QuorumPercent < 0 || c.QuorumPercent > 100 {
		return invalidInput("quorum percent out of range")
	}
	if c.SharePrice <= 0 {
		return invalidInput("share price must be positive")
	}
	if c.ChunkShares <= 0 {
		return invalidInput("chunk shares must be positive")
	}
	return nil
}

// SharePriceWei returns the share price as a big integer amount.
func (c *DaoConfig) SharePriceWei() *big.Int {
	return big.NewInt(c.SharePrice)
}

package collector

import (
	"fmt"
	"time"

	"github.com/canopy-network/votecollector/pkg/utils"
	"github.com/canopy-network/votecollector/pkg/votecalc"
	"github.com/canopy-network/votecollector/pkg/votepower"
)

// Config is the collector's environment.
type Config struct {
	Network             votepower.Network
	GatewayURLs         []string
	GatewayRPS          int
	GatewayTimeout      time.Duration
	GovernanceComponent string

	PollCron     string
	PollTimeout  time.Duration
	CycleTimeout time.Duration
	PageSize     int
	// CursorOverride is LEDGER_STATE_VERSION, nil when unset.
	CursorOverride *uint64

	CalculationConcurrency int
	DexPositionConcurrency int
	VotePowerConfig        string
	LSULPResource          string
	LSULPComponent         string

	RedisEnabled bool
	Addr         string
}

// LoadConfig reads the environment and fills network defaults.
func LoadConfig() (Config, error) {
	network, err := votepower.ParseNetwork(utils.EnvInt("NETWORK_ID", int(votepower.Stokenet)))
	if err != nil {
		return Config{}, err
	}
	lsulpResource, lsulpComponent := network.LSULP()

	cfg := Config{
		Network:             network,
		GatewayURLs:         utils.EnvList("GATEWAY_URLS", network.GatewayURLs()),
		GatewayRPS:          utils.EnvInt("GATEWAY_RPS", 20),
		GatewayTimeout:      utils.EnvDuration("GATEWAY_TIMEOUT", 15*time.Second),
		GovernanceComponent: utils.Env("GOVERNANCE_COMPONENT_ADDRESS", network.GovernanceComponent()),

		PollCron:     utils.Env("POLL_CRON", "*/10 * * * * *"),
		PollTimeout:  utils.EnvDuration("POLL_TIMEOUT_DURATION", 120*time.Second),
		CycleTimeout: utils.EnvDuration("POLL_CYCLE_TIMEOUT", 90*time.Second),
		PageSize:     utils.EnvInt("POLL_PAGE_SIZE", votecalc.DefaultPageSize),

		CalculationConcurrency: utils.EnvInt("CALCULATION_CONCURRENCY", 5),
		DexPositionConcurrency: utils.EnvInt("DEX_POSITION_CONCURRENCY", 3),
		VotePowerConfig:        utils.Env("VOTE_POWER_CONFIG", ""),
		LSULPResource:          utils.Env("LSULP_RESOURCE_ADDRESS", lsulpResource),
		LSULPComponent:         utils.Env("LSULP_COMPONENT_ADDRESS", lsulpComponent),

		RedisEnabled: utils.EnvBool("REDIS_ENABLED", true),
		Addr:         utils.Env("ADDR", ":3010"),
	}
	if sv, ok := utils.EnvUint64("LEDGER_STATE_VERSION"); ok {
		cfg.CursorOverride = &sv
	}

	if cfg.GovernanceComponent == "" {
		return Config{}, fmt.Errorf("GOVERNANCE_COMPONENT_ADDRESS is required on %s", network)
	}
	if len(cfg.GatewayURLs) == 0 {
		return Config{}, fmt.Errorf("GATEWAY_URLS is empty")
	}
	// A cycle outliving its lease lets a second instance poll the same window.
	if cfg.CycleTimeout >= cfg.PollTimeout {
		return Config{}, fmt.Errorf("POLL_CYCLE_TIMEOUT (%s) must be shorter than POLL_TIMEOUT_DURATION (%s)", cfg.CycleTimeout, cfg.PollTimeout)
	}
	return cfg, nil
}

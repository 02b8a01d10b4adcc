package stark

import "fmt"

// FriConfig bundles the three tunables spec §6 calls out for the FRI
// phase: the LDE blowup exponent r, the number of folding rounds R, and
// the query count Q.
type FriConfig struct {
	BlowupLog2 uint32
	Rounds     uint32
	Queries    int
}

// ProductionConfig is the reference implementation's production
// default: a blowup of 8x, 5 folding rounds, 80 queries.
func ProductionConfig() FriConfig {
	return FriConfig{BlowupLog2: 3, Rounds: 5, Queries: 80}
}

// TestConfig is the reference implementation's fast default for tests:
// a blowup of 4x, a single folding round, 32 queries.
func TestConfig() FriConfig {
	return FriConfig{BlowupLog2: 2, Rounds: 1, Queries: 32}
}

// Validate checks that cfg describes a usable FRI configuration.
func (cfg FriConfig) Validate() error {
	if cfg.BlowupLog2 == 0 {
		return fmt.Errorf("blowup_log2 must be positive")
	}
	if cfg.Rounds == 0 {
		return fmt.Errorf("rounds must be positive")
	}
	if cfg.Queries <= 0 {
		return fmt.Errorf("queries must be positive")
	}
	return nil
}

// WithBlowupLog2 sets the LDE blowup exponent.
func (cfg FriConfig) WithBlowupLog2(blowupLog2 uint32) FriConfig {
	cfg.BlowupLog2 = blowupLog2
	return cfg
}

// WithRounds sets the number of FRI folding rounds.
func (cfg FriConfig) WithRounds(rounds uint32) FriConfig {
	cfg.Rounds = rounds
	return cfg
}

// WithQueries sets the number of FRI queries.
func (cfg FriConfig) WithQueries(queries int) FriConfig {
	cfg.Queries = queries
	return cfg
}

package stark

import "testing"

func TestFriConfigValidateRejectsZeroFields(t *testing.T) {
	cases := []FriConfig{
		{BlowupLog2: 0, Rounds: 1, Queries: 32},
		{BlowupLog2: 2, Rounds: 0, Queries: 32},
		{BlowupLog2: 2, Rounds: 1, Queries: 0},
	}
	for _, cfg := range cases {
		if err := cfg.Validate(); err == nil {
			t.Fatalf("expected Validate to reject %+v", cfg)
		}
	}
}

func TestFriConfigValidateAcceptsProductionAndTestConfigs(t *testing.T) {
	if err := ProductionConfig().Validate(); err != nil {
		t.Fatalf("ProductionConfig failed to validate: %v", err)
	}
	if err := TestConfig().Validate(); err != nil {
		t.Fatalf("TestConfig failed to validate: %v", err)
	}
}

func TestFriConfigWithBuildersAreIndependent(t *testing.T) {
	base := TestConfig()
	derived := base.WithBlowupLog2(3).WithRounds(5).WithQueries(80)

	if base.BlowupLog2 != 2 || base.Rounds != 1 || base.Queries != 32 {
		t.Fatalf("With* builders mutated the receiver: got %+v", base)
	}
	if derived.BlowupLog2 != 3 || derived.Rounds != 5 || derived.Queries != 80 {
		t.Fatalf("With* builders did not apply: got %+v", derived)
	}
	if err := derived.Validate(); err != nil {
		t.Fatalf("derived config failed to validate: %v", err)
	}
}

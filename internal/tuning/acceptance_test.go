package tuning

import (
	"math/rand"
	"testing"
)

func TestGreedyAcceptance(t *testing.T) {
	var a GreedyAcceptance
	if !a.Accept(nil, 0, 1, 2) {
		t.Fatal("expected improvement to be accepted")
	}
	if a.Accept(nil, 0, 2, 2) || a.Accept(nil, 0, 2, 1) {
		t.Fatal("expected equal or worse candidates to be rejected")
	}
}

func TestAnnealingAcceptsWorseEarlyAndCoolsDown(t *testing.T) {
	a := AnnealingAcceptance{Temperature: 100, Cooling: 0.5}
	rng := rand.New(rand.NewSource(1))

	early := 0
	for i := 0; i < 1000; i++ {
		if a.Accept(rng, 0, 10, 9) {
			early++
		}
	}
	if early < 900 {
		t.Fatalf("expected most small regressions accepted at high temperature, got %d/1000", early)
	}

	late := 0
	for i := 0; i < 1000; i++ {
		if a.Accept(rng, 60, 10, 9) {
			late++
		}
	}
	if late != 0 {
		t.Fatalf("expected regressions rejected once cooled, got %d/1000", late)
	}
}

func TestAnnealingZeroTemperatureIsGreedy(t *testing.T) {
	a := AnnealingAcceptance{}
	rng := rand.New(rand.NewSource(1))
	if a.Accept(rng, 0, 2, 1) {
		t.Fatal("expected zero temperature to reject regressions")
	}
	if !a.Accept(rng, 0, 1, 2) {
		t.Fatal("expected improvements accepted")
	}
}

func TestAnnealingValidate(t *testing.T) {
	if err := (AnnealingAcceptance{Temperature: -1}).Validate(); err == nil {
		t.Fatal("expected temperature error")
	}
	if err := (AnnealingAcceptance{Temperature: 1, Cooling: 1.5}).Validate(); err == nil {
		t.Fatal("expected cooling error")
	}
	if err := (AnnealingAcceptance{Temperature: 1, Cooling: 0.9}).Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

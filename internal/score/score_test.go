package score

import (
	"context"
	"testing"

	"biodesigner/internal/model"
)

func inducibleDesign() model.Design {
	return model.Design{
		Nodes: []model.Node{
			{ID: "p1", Part: model.Promoter{Strength: model.StrengthMedium, Inducible: true, Inducer: "IPTG"}},
			{ID: "g1", Part: model.Gene{Function: model.GeneReporter}},
		},
		Edges: []model.Edge{{ID: "e1", Source: "p1", Target: "g1"}},
	}
}

func TestMaxExpressionSumsReporters(t *testing.T) {
	design := model.Design{
		Nodes: []model.Node{
			{ID: "p1", Part: model.Promoter{Strength: model.StrengthLow}},
			{ID: "g1", Part: model.Gene{Function: model.GeneReporter}},
			{ID: "g2", Part: model.Gene{Function: model.GeneReporter}},
			{ID: "g3", Part: model.Gene{Function: model.GeneOther}},
		},
		Edges: []model.Edge{
			{Source: "p1", Target: "g1"},
			{Source: "p1", Target: "g2"},
			{Source: "p1", Target: "g3"},
		},
	}
	if got := Score(design, model.GoalMaxExpression); got != 40 {
		t.Fatalf("expected 40, got %f", got)
	}
}

func TestMaxExpressionWithoutReportersIsZero(t *testing.T) {
	design := model.Design{
		Nodes: []model.Node{
			{ID: "p1", Part: model.Promoter{Strength: model.StrengthVeryHigh}},
			{ID: "g1", Part: model.Gene{Function: model.GeneRepressor}},
		},
		Edges: []model.Edge{{Source: "p1", Target: "g1"}},
	}
	if got := Score(design, model.GoalMaxExpression); got != 0 {
		t.Fatalf("expected 0, got %f", got)
	}
	if got := Score(model.Design{}, model.GoalMaxExpression); got != 0 {
		t.Fatalf("expected 0 for empty design, got %f", got)
	}
}

func TestMinLeakageFoldChange(t *testing.T) {
	// induced: 50*10 clamps to 100; uninduced: 50*0.1 = 5.
	got := Score(inducibleDesign(), model.GoalMinLeakage)
	if got < 19.999 || got > 20.001 {
		t.Fatalf("expected fold change 20, got %f", got)
	}
}

func TestMinLeakageFloorsUninducedLevel(t *testing.T) {
	design := model.Design{
		Nodes: []model.Node{
			{ID: "p1", Part: model.Promoter{Strength: model.StrengthHigh}},
			{ID: "g1", Part: model.Gene{Function: model.GeneReporter}},
		},
	}
	// Unconnected reporter: 0 / max(0, 0.1) = 0.
	if got := Score(design, model.GoalMinLeakage); got != 0 {
		t.Fatalf("expected 0, got %f", got)
	}
}

func TestStabilityScenario(t *testing.T) {
	design := model.Design{
		Nodes: []model.Node{
			{ID: "p1", Part: model.Promoter{Strength: model.StrengthHigh}},
			{ID: "p2", Part: model.Promoter{Strength: model.StrengthLow}},
			{ID: "r1", Part: model.Gene{Function: model.GeneRepressor, Targets: []string{"p2"}}},
			{ID: "g1", Part: model.Gene{Function: model.GeneReporter}},
		},
		Edges: []model.Edge{
			{Source: "p1", Target: "r1"},
			{Source: "p2", Target: "g1"},
			{Source: "p1", Target: "g1"},
		},
	}
	if got := Score(design, model.GoalStability); got != 11 {
		t.Fatalf("expected 2*3+5*1 = 11, got %f", got)
	}
}

func TestUnknownGoalScoresZero(t *testing.T) {
	if got := Score(inducibleDesign(), model.Goal("fastest")); got != 0 {
		t.Fatalf("expected 0 for unknown goal, got %f", got)
	}
}

func TestFuncMatchesScore(t *testing.T) {
	fn := Func(model.GoalStability)
	got, err := fn(context.Background(), inducibleDesign())
	if err != nil {
		t.Fatalf("fitness: %v", err)
	}
	if want := Score(inducibleDesign(), model.GoalStability); got != want {
		t.Fatalf("expected %f, got %f", want, got)
	}
}

package biodesigner

import (
	"context"
	"errors"
	"fmt"

	"biodesigner/internal/codon"
	"biodesigner/internal/seqcheck"
)

var ErrTableNotFound = errors.New("codon table not found")

type CodonRequest struct {
	Sequence string
	Organism string
	// AvoidSites are sequences the optimizer must not introduce.
	AvoidSites []string
	// AvoidEnzymes names restriction enzymes whose sites are added to
	// AvoidSites.
	AvoidEnzymes []string
}

// OptimizeCodons rewrites req.Sequence for the organism's codon bias. An
// organism without a table falls back to the default organism's table; the
// result still echoes the requested organism.
func (c *Client) OptimizeCodons(ctx context.Context, req CodonRequest) (codon.Result, error) {
	if codon.Normalize(req.Sequence) == "" {
		return codon.Result{}, invalid(ErrSequenceRequired)
	}
	sites, err := avoidSites(req.AvoidSites, req.AvoidEnzymes)
	if err != nil {
		return codon.Result{}, invalid(err)
	}
	organism := req.Organism
	if organism == "" {
		organism = c.defaultOrganism
	}
	table, err := c.tableFor(ctx, organism)
	if err != nil {
		return codon.Result{}, err
	}

	result := codon.Optimize(req.Sequence, table, codon.Options{AvoidSites: sites})
	result.Organism = organism
	c.logger.Info("codons optimized",
		"organism", organism,
		"table", table.Organism,
		"changes", len(result.Changes),
		"original_cai", result.OriginalCAI,
		"optimized_cai", result.OptimizedCAI,
	)
	return result, nil
}

type ExpressionRequest struct {
	GeneSequence   string
	HostOrganism   string
	ExpressionGoal string
	AvoidEnzymes   []string
}

type ExpressionMetrics struct {
	OriginalCAI                    float64 `json:"originalCAI"`
	OptimizedCAI                   float64 `json:"optimizedCAI"`
	PredictedExpressionImprovement float64 `json:"predictedExpressionImprovement"`
}

type Recommendation struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Impact      string `json:"impact"`
}

type ExpressionResult struct {
	OriginalSequence  string            `json:"originalSequence"`
	OptimizedSequence string            `json:"optimizedSequence"`
	Organism          string            `json:"organism"`
	Metrics           ExpressionMetrics `json:"metrics"`
	Recommendations   []Recommendation  `json:"recommendations"`
	Changes           []codon.Change    `json:"changes"`
}

// OptimizeExpression codon-optimizes the gene and adds host-specific
// recommendations. The predicted improvement is the CAI ratio, or 0 when the
// original CAI is 0.
func (c *Client) OptimizeExpression(ctx context.Context, req ExpressionRequest) (ExpressionResult, error) {
	organism := req.HostOrganism
	if organism == "" {
		organism = c.defaultOrganism
	}
	optimized, err := c.OptimizeCodons(ctx, CodonRequest{
		Sequence:     req.GeneSequence,
		Organism:     organism,
		AvoidEnzymes: req.AvoidEnzymes,
	})
	if err != nil {
		return ExpressionResult{}, err
	}

	improvement := 0.0
	if optimized.OriginalCAI > 0 {
		improvement = optimized.OptimizedCAI / optimized.OriginalCAI
	}
	c.logger.Info("expression optimized",
		"organism", organism,
		"expression_goal", req.ExpressionGoal,
		"predicted_improvement", improvement,
	)
	return ExpressionResult{
		OriginalSequence:  optimized.OriginalSequence,
		OptimizedSequence: optimized.OptimizedSequence,
		Organism:          organism,
		Metrics: ExpressionMetrics{
			OriginalCAI:                    optimized.OriginalCAI,
			OptimizedCAI:                   optimized.OptimizedCAI,
			PredictedExpressionImprovement: improvement,
		},
		Recommendations: recommendationsFor(organism),
		Changes:         optimized.Changes,
	}, nil
}

var recommendedPromoters = map[string]string{
	codon.OrganismEColi: "T7",
	codon.OrganismYeast: "GAL1",
	codon.OrganismHuman: "CMV",
}

// RecommendedPromoter names a strong promoter for the host, T7 when the host
// is not known.
func RecommendedPromoter(organism string) string {
	if promoter, ok := recommendedPromoters[codon.NormalizeOrganism(organism)]; ok {
		return promoter
	}
	return "T7"
}

func recommendationsFor(organism string) []Recommendation {
	return []Recommendation{
		{
			Type:        "codon_optimization",
			Description: "Codon optimization for improved translation efficiency",
			Impact:      "high",
		},
		{
			Type:        "promoter_selection",
			Description: fmt.Sprintf("For %s, consider using a strong %s promoter", organism, RecommendedPromoter(organism)),
			Impact:      "high",
		},
		{
			Type:        "rbs_selection",
			Description: "Use a strong ribosome binding site for increased translation initiation",
			Impact:      "medium",
		},
	}
}

func avoidSites(sites, enzymes []string) ([]string, error) {
	out := append([]string(nil), sites...)
	for _, name := range enzymes {
		enzyme, ok := seqcheck.EnzymeByName(name)
		if !ok {
			return nil, fmt.Errorf("unknown restriction enzyme %q", name)
		}
		out = append(out, enzyme.Pattern)
	}
	return out, nil
}

func (c *Client) ValidateSequence(seq string) (seqcheck.Report, error) {
	if seq == "" {
		return seqcheck.Report{}, invalid(ErrSequenceRequired)
	}
	return seqcheck.Validate(seq), nil
}

// Translate reads seq from the first startCodon (ATG when empty) to the first
// stop codon.
func (c *Client) Translate(seq, startCodon string) (seqcheck.Translation, error) {
	if seq == "" {
		return seqcheck.Translation{}, invalid(ErrSequenceRequired)
	}
	return seqcheck.Translate(seq, startCodon), nil
}

// tableFor returns the stored table for organism, the default organism's
// table, or the built-in default, in that order.
func (c *Client) tableFor(ctx context.Context, organism string) (codon.UsageTable, error) {
	for _, key := range []string{codon.NormalizeOrganism(organism), c.defaultOrganism} {
		record, ok, err := c.store.GetCodonTable(ctx, key)
		if err != nil {
			return codon.UsageTable{}, fmt.Errorf("load codon table %s: %w", key, err)
		}
		if ok {
			return tableFromRecord(record), nil
		}
	}
	if table, ok := codon.Builtin(c.defaultOrganism); ok {
		return table, nil
	}
	table, _ := codon.Builtin(codon.DefaultOrganism)
	return table, nil
}

// ListTables returns the organisms with a stored codon table.
func (c *Client) ListTables(ctx context.Context) ([]string, error) {
	return c.store.ListCodonTables(ctx)
}

func (c *Client) GetTable(ctx context.Context, organism string) (codon.UsageTable, error) {
	key := codon.NormalizeOrganism(organism)
	record, ok, err := c.store.GetCodonTable(ctx, key)
	if err != nil {
		return codon.UsageTable{}, err
	}
	if !ok {
		return codon.UsageTable{}, fmt.Errorf("%w: %s", ErrTableNotFound, key)
	}
	return tableFromRecord(record), nil
}

// ImportTable validates and stores table, replacing any table for the same
// organism.
func (c *Client) ImportTable(ctx context.Context, table codon.UsageTable) error {
	table.Organism = codon.NormalizeOrganism(table.Organism)
	if err := table.Validate(); err != nil {
		return invalid(err)
	}
	if table.Name == "" {
		table.Name = table.Organism
	}
	if err := c.store.SaveCodonTable(ctx, recordFromTable(table)); err != nil {
		return fmt.Errorf("import codon table %s: %w", table.Organism, err)
	}
	c.logger.Info("codon table imported", "organism", table.Organism, "codons", len(table.Frequencies))
	return nil
}

func (c *Client) DeleteTable(ctx context.Context, organism string) error {
	return c.store.DeleteCodonTable(ctx, codon.NormalizeOrganism(organism))
}

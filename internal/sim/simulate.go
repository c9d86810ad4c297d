package sim

import "biodesigner/internal/model"

const (
	MinLevel = 0.0
	MaxLevel = 100.0

	inducedBoost     = 10.0
	basalLeak        = 0.1
	repressionPerHit = 0.8
)

var promoterActivity = map[model.Strength]float64{
	model.StrengthLow:      20,
	model.StrengthMedium:   50,
	model.StrengthHigh:     80,
	model.StrengthVeryHigh: 100,
}

var translationFactor = map[model.Strength]float64{
	model.StrengthLow:      0.5,
	model.StrengthMedium:   1.0,
	model.StrengthHigh:     2.0,
	model.StrengthVeryHigh: 3.0,
}

// Levels maps node ids to expression levels in [MinLevel, MaxLevel].
// Promoters report their activity and genes their expression.
type Levels map[string]float64

// Simulate propagates promoter activity through the design. It never
// modifies the design and returns the same levels for the same input.
func Simulate(design model.Design, induced bool) Levels {
	sources := make(map[string][]string, len(design.Edges))
	for _, edge := range design.Edges {
		sources[edge.Target] = append(sources[edge.Target], edge.Source)
	}

	levels := make(Levels, len(design.Nodes))
	for _, node := range design.Nodes {
		promoter, ok := node.Part.(model.Promoter)
		if !ok {
			continue
		}
		levels[node.ID] = promoterLevel(design, node.ID, promoter, induced)
	}

	for _, node := range design.Nodes {
		if _, ok := node.Part.(model.Gene); !ok {
			continue
		}
		levels[node.ID] = geneLevel(design, sources[node.ID], levels)
	}
	return levels
}

func promoterLevel(design model.Design, id string, promoter model.Promoter, induced bool) float64 {
	activity := StrengthActivity(promoter.Strength)
	if promoter.Inducible {
		switch {
		case induced && promoter.Inducer != "":
			activity *= inducedBoost
		case !induced:
			activity *= basalLeak
		}
	}

	repressors := 0
	for _, node := range design.Nodes {
		if gene, ok := node.Part.(model.Gene); ok && gene.Represses(id) {
			repressors++
		}
	}
	if repressors > 0 {
		factor := 1 - repressionPerHit*float64(repressors)
		if factor < 0 {
			factor = 0
		}
		activity *= factor
	}
	return clamp(activity)
}

func geneLevel(design model.Design, sourceIDs []string, levels Levels) float64 {
	seen := make(map[string]struct{}, len(sourceIDs))
	sum, rbsMultiplier := 0.0, 1.0
	hasPromoter := false
	for _, id := range sourceIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		idx := design.NodeIndex(id)
		if idx < 0 {
			continue
		}
		switch part := design.Nodes[idx].Part.(type) {
		case model.Promoter:
			sum += levels[id]
			hasPromoter = true
		case model.Regulatory:
			if part.Function == model.FunctionTranslation {
				rbsMultiplier *= TranslationFactor(part.Strength)
			}
		}
	}
	if !hasPromoter {
		return 0
	}
	return clamp(sum * rbsMultiplier)
}

// StrengthActivity returns the base promoter activity for s. Unrecognized
// values fall back to medium.
func StrengthActivity(s model.Strength) float64 {
	if v, ok := promoterActivity[s]; ok {
		return v
	}
	return promoterActivity[model.StrengthMedium]
}

// TranslationFactor returns the RBS multiplier for s, 1 when unrecognized.
func TranslationFactor(s model.Strength) float64 {
	if v, ok := translationFactor[s]; ok {
		return v
	}
	return 1
}

func clamp(v float64) float64 {
	if v < MinLevel {
		return MinLevel
	}
	if v > MaxLevel {
		return MaxLevel
	}
	return v
}

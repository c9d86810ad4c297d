package codon

import (
	"math"
	"sort"
	"strings"
)

type Options struct {
	// AvoidSites lists sites (e.g. restriction sites) the optimizer must not
	// create while choosing codons.
	AvoidSites []string
}

// Change records one codon the optimizer replaced. Position is the 1-based
// codon index in the sequence.
type Change struct {
	Position  int    `json:"position"`
	AminoAcid string `json:"aminoAcid"`
	Original  string `json:"original"`
	Optimized string `json:"optimized"`
}

type Result struct {
	OriginalSequence  string   `json:"originalSequence"`
	OptimizedSequence string   `json:"optimizedSequence"`
	Protein           string   `json:"protein"`
	OriginalCAI       float64  `json:"originalCAI"`
	OptimizedCAI      float64  `json:"optimizedCAI"`
	OriginalGC        float64  `json:"originalGC"`
	OptimizedGC       float64  `json:"optimizedGC"`
	Organism          string   `json:"organism"`
	Changes           []Change `json:"changes"`
}

// Normalize trims surrounding whitespace and upper-cases seq.
func Normalize(seq string) string {
	return strings.ToUpper(strings.TrimSpace(seq))
}

// Optimize rewrites every codon from the first in-frame ATG onwards to the
// most frequent synonymous codon in table. Codons before the start, unknown
// triplets and amino acids with no listed synonym are kept. A trailing
// partial codon is dropped.
func Optimize(seq string, table UsageTable, opts Options) Result {
	normalized := Normalize(seq)
	start := StartOffset(normalized)

	sites := make([]string, 0, len(opts.AvoidSites))
	for _, site := range opts.AvoidSites {
		if site = Normalize(site); site != "" {
			sites = append(sites, site)
		}
	}

	var out strings.Builder
	out.Grow(len(normalized))
	out.WriteString(normalized[:start])

	changes := make([]Change, 0)
	for i := start; i+3 <= len(normalized); i += 3 {
		original := normalized[i : i+3]
		chosen := original
		if aa, ok := geneticCode[original]; ok {
			chosen = chooseCodon(out.String(), original, aa, table, sites)
			if chosen != original {
				changes = append(changes, Change{
					Position:  i/3 + 1,
					AminoAcid: string(aa),
					Original:  original,
					Optimized: chosen,
				})
			}
		}
		out.WriteString(chosen)
	}

	optimized := out.String()
	return Result{
		OriginalSequence:  seq,
		OptimizedSequence: optimized,
		Protein:           Translate(normalized, start),
		OriginalCAI:       CAI(normalized, table),
		OptimizedCAI:      CAI(optimized, table),
		OriginalGC:        GCContent(normalized),
		OptimizedGC:       GCContent(optimized),
		Organism:          table.Organism,
		Changes:           changes,
	}
}

// chooseCodon ranks the synonyms of aa by frequency, keeping original ahead
// of equally frequent codons and otherwise lexicographic order, and returns
// the first one that completes none of sites after prefix. If every synonym
// would complete a site the original codon is kept.
func chooseCodon(prefix, original string, aa byte, table UsageTable, sites []string) string {
	candidates := synonyms[aa]
	if len(candidates) <= 1 {
		return original
	}

	ranked := make([]string, 0, len(candidates))
	ranked = append(ranked, original)
	for _, c := range candidates {
		if c != original {
			ranked = append(ranked, c)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return table.Frequencies[ranked[i]] > table.Frequencies[ranked[j]]
	})

	for _, candidate := range ranked {
		if !completesSite(prefix, candidate, sites) {
			return candidate
		}
	}
	return original
}

func completesSite(prefix, candidate string, sites []string) bool {
	for _, site := range sites {
		keep := len(site) - 1
		if keep > len(prefix) {
			keep = len(prefix)
		}
		if strings.Contains(prefix[len(prefix)-keep:]+candidate, site) {
			return true
		}
	}
	return false
}

// CAI is the geometric mean of the table frequencies of the complete codons
// of seq. Codons missing from the table, or listed with zero frequency, are
// skipped. The result is 0 when no codon is found.
func CAI(seq string, table UsageTable) float64 {
	seq = Normalize(seq)
	logSum := 0.0
	found := 0
	for i := 0; i+3 <= len(seq); i += 3 {
		f, ok := table.Frequencies[seq[i:i+3]]
		if !ok || f <= 0 {
			continue
		}
		logSum += math.Log(f)
		found++
	}
	if found == 0 {
		return 0
	}
	return math.Exp(logSum / float64(found))
}

// GCContent returns the percentage of G and C bases in seq.
func GCContent(seq string) float64 {
	if len(seq) == 0 {
		return 0
	}
	gc := 0
	for i := 0; i < len(seq); i++ {
		switch seq[i] {
		case 'G', 'C', 'g', 'c':
			gc++
		}
	}
	return float64(gc) / float64(len(seq)) * 100
}

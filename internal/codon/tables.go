package codon

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

const (
	OrganismEColi = "e_coli"
	OrganismYeast = "yeast"
	OrganismHuman = "human"

	DefaultOrganism = OrganismEColi
)

var (
	ErrUnknownCodon     = errors.New("unknown codon")
	ErrInvalidFrequency = errors.New("codon frequency out of range")
)

// UsageTable is the codon usage of one host organism. Frequencies are the
// fraction of each amino acid's codons that use a given triplet.
type UsageTable struct {
	Organism    string             `json:"organism" yaml:"organism"`
	Name        string             `json:"name" yaml:"name"`
	Frequencies map[string]float64 `json:"frequencies" yaml:"frequencies"`
}

// Frequency returns the usage of triplet and whether the table lists it.
func (t UsageTable) Frequency(triplet string) (float64, bool) {
	f, ok := t.Frequencies[triplet]
	return f, ok
}

func (t UsageTable) Validate() error {
	if strings.TrimSpace(t.Organism) == "" {
		return errors.New("organism is required")
	}
	if len(t.Frequencies) == 0 {
		return errors.New("frequencies are required")
	}
	for triplet, f := range t.Frequencies {
		if _, ok := geneticCode[triplet]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownCodon, triplet)
		}
		if f < 0 || f > 1 {
			return fmt.Errorf("%w: %s=%f", ErrInvalidFrequency, triplet, f)
		}
	}
	return nil
}

func (t UsageTable) Clone() UsageTable {
	out := t
	out.Frequencies = make(map[string]float64, len(t.Frequencies))
	for k, v := range t.Frequencies {
		out.Frequencies[k] = v
	}
	return out
}

var organismAliases = map[string]string{
	"e_coli":                   OrganismEColi,
	"ecoli":                    OrganismEColi,
	"e.coli":                   OrganismEColi,
	"e. coli":                  OrganismEColi,
	"escherichia coli":         OrganismEColi,
	"yeast":                    OrganismYeast,
	"s_cerevisiae":             OrganismYeast,
	"saccharomyces cerevisiae": OrganismYeast,
	"human":                    OrganismHuman,
	"h_sapiens":                OrganismHuman,
	"homo sapiens":             OrganismHuman,
}

// NormalizeOrganism lower-cases the key and maps known aliases onto the
// built-in organism names.
func NormalizeOrganism(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	if canonical, ok := organismAliases[key]; ok {
		return canonical
	}
	return key
}

var builtinTables = map[string]UsageTable{
	OrganismEColi: {
		Organism: OrganismEColi,
		Name:     "Escherichia coli",
		Frequencies: map[string]float64{
			"AAA": 0.74, "AAG": 0.26,
			"AAC": 0.55, "AAT": 0.45,
			"ACA": 0.13, "ACC": 0.43, "ACG": 0.27, "ACT": 0.17,
			"AGA": 0.04, "AGG": 0.02, "CGA": 0.06, "CGC": 0.38, "CGG": 0.10, "CGT": 0.38,
			"AGC": 0.28, "AGT": 0.15, "TCA": 0.14, "TCC": 0.17, "TCG": 0.14, "TCT": 0.15,
			"ATA": 0.07, "ATC": 0.42, "ATT": 0.51,
			"ATG": 1.00,
			"CAA": 0.34, "CAG": 0.66,
			"CAC": 0.43, "CAT": 0.57,
			"CCA": 0.20, "CCC": 0.12, "CCG": 0.52, "CCT": 0.16,
			"CTA": 0.04, "CTC": 0.10, "CTG": 0.50, "CTT": 0.10, "TTA": 0.13, "TTG": 0.13,
			"GAA": 0.68, "GAG": 0.32,
			"GAC": 0.37, "GAT": 0.63,
			"GCA": 0.21, "GCC": 0.27, "GCG": 0.36, "GCT": 0.16,
			"GGA": 0.11, "GGC": 0.41, "GGG": 0.15, "GGT": 0.34,
			"GTA": 0.15, "GTC": 0.20, "GTG": 0.37, "GTT": 0.28,
			"TAA": 0.61, "TAG": 0.09, "TGA": 0.30,
			"TAC": 0.57, "TAT": 0.43,
			"TGC": 0.55, "TGT": 0.45,
			"TGG": 1.00,
			"TTC": 0.58, "TTT": 0.42,
		},
	},
	OrganismYeast: {
		Organism: OrganismYeast,
		Name:     "Saccharomyces cerevisiae",
		Frequencies: map[string]float64{
			"GCA": 0.21, "GCC": 0.26, "GCG": 0.11, "GCT": 0.42,
			"AGA": 0.48, "AGG": 0.21, "CGA": 0.07, "CGC": 0.06, "CGG": 0.04, "CGT": 0.14,
			"AAC": 0.41, "AAT": 0.59, "GAC": 0.35, "GAT": 0.65, "TGC": 0.37, "TGT": 0.63,
			"GAA": 0.70, "GAG": 0.30, "CAA": 0.69, "CAG": 0.31,
			"GGA": 0.22, "GGC": 0.19, "GGG": 0.12, "GGT": 0.47,
			"CAC": 0.35, "CAT": 0.65, "ATA": 0.27, "ATC": 0.26, "ATT": 0.47,
			"CTA": 0.14, "CTC": 0.06, "CTG": 0.11, "CTT": 0.13, "TTA": 0.28, "TTG": 0.29,
			"AAA": 0.58, "AAG": 0.42, "ATG": 1.00,
			"TTC": 0.40, "TTT": 0.60, "CCA": 0.42, "CCC": 0.15, "CCG": 0.12, "CCT": 0.31,
			"AGC": 0.11, "AGT": 0.16, "TCA": 0.21, "TCC": 0.16, "TCG": 0.10, "TCT": 0.26,
			"ACA": 0.30, "ACC": 0.22, "ACG": 0.13, "ACT": 0.35, "TGG": 1.00,
			"TAC": 0.43, "TAT": 0.57,
			"GTA": 0.21, "GTC": 0.18, "GTG": 0.19, "GTT": 0.42,
			"TAA": 0.47, "TAG": 0.23, "TGA": 0.30,
		},
	},
	OrganismHuman: {
		Organism: OrganismHuman,
		Name:     "Homo sapiens",
		Frequencies: map[string]float64{
			"GCA": 0.23, "GCC": 0.40, "GCG": 0.11, "GCT": 0.26,
			"AGA": 0.20, "AGG": 0.20, "CGA": 0.11, "CGC": 0.19, "CGG": 0.21, "CGT": 0.08,
			"AAC": 0.53, "AAT": 0.47, "GAC": 0.54, "GAT": 0.46, "TGC": 0.55, "TGT": 0.45,
			"GAA": 0.42, "GAG": 0.58, "CAA": 0.27, "CAG": 0.73,
			"GGA": 0.25, "GGC": 0.34, "GGG": 0.25, "GGT": 0.16,
			"CAC": 0.58, "CAT": 0.42, "ATA": 0.16, "ATC": 0.48, "ATT": 0.36,
			"CTA": 0.07, "CTC": 0.20, "CTG": 0.41, "CTT": 0.13, "TTA": 0.07, "TTG": 0.13,
			"AAA": 0.42, "AAG": 0.58, "ATG": 1.00,
			"TTC": 0.54, "TTT": 0.46, "CCA": 0.27, "CCC": 0.33, "CCG": 0.11, "CCT": 0.29,
			"AGC": 0.24, "AGT": 0.15, "TCA": 0.15, "TCC": 0.22, "TCG": 0.06, "TCT": 0.18,
			"ACA": 0.28, "ACC": 0.36, "ACG": 0.12, "ACT": 0.24, "TGG": 1.00,
			"TAC": 0.56, "TAT": 0.44,
			"GTA": 0.11, "GTC": 0.24, "GTG": 0.47, "GTT": 0.18,
			"TAA": 0.28, "TAG": 0.20, "TGA": 0.52,
		},
	},
}

// Builtin returns a copy of the reference table for organism (aliases
// accepted).
func Builtin(organism string) (UsageTable, bool) {
	table, ok := builtinTables[NormalizeOrganism(organism)]
	if !ok {
		return UsageTable{}, false
	}
	return table.Clone(), true
}

// BuiltinTables returns copies of every reference table ordered by organism.
func BuiltinTables() []UsageTable {
	keys := make([]string, 0, len(builtinTables))
	for k := range builtinTables {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]UsageTable, 0, len(keys))
	for _, k := range keys {
		out = append(out, builtinTables[k].Clone())
	}
	return out
}

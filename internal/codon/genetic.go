package codon

import (
	"sort"
	"strings"

	"github.com/koeng101/poly"
)

// Stop is the amino-acid symbol for stop codons.
const Stop = '*'

// StartCodon is the literal start triplet searched for before optimization.
const StartCodon = "ATG"

// standardTable is NCBI translation table 1.
const standardTable = 1

// geneticCode is the standard code, triplet to one-letter amino acid.
var geneticCode = buildGeneticCode(poly.GetCodonTable(standardTable))

func buildGeneticCode(table poly.CodonTable) map[string]byte {
	out := make(map[string]byte, 64)
	for _, aa := range table.AminoAcids {
		if aa.Letter == "" {
			continue
		}
		for _, c := range aa.Codons {
			out[strings.ToUpper(c.Triplet)] = aa.Letter[0]
		}
	}
	return out
}

// synonyms lists the codons of each amino acid in lexicographic order. The
// order is fixed so ties in usage frequency resolve the same way everywhere.
var synonyms = buildSynonyms()

func buildSynonyms() map[byte][]string {
	out := make(map[byte][]string, 21)
	for triplet, aa := range geneticCode {
		out[aa] = append(out[aa], triplet)
	}
	for aa := range out {
		sort.Strings(out[aa])
	}
	return out
}

// AminoAcid translates one upper-case triplet. ok is false for anything
// outside the standard code.
func AminoAcid(triplet string) (aa byte, ok bool) {
	aa, ok = geneticCode[triplet]
	return aa, ok
}

// SynonymousCodons returns the codons encoding aa in lexicographic order.
func SynonymousCodons(aa byte) []string {
	return append([]string(nil), synonyms[aa]...)
}

// Codons returns all 64 triplets in lexicographic order.
func Codons() []string {
	out := make([]string, 0, len(geneticCode))
	for triplet := range geneticCode {
		out = append(out, triplet)
	}
	sort.Strings(out)
	return out
}

// Translate converts complete codons of seq, starting at offset, into
// one-letter amino acids. Unknown triplets become 'X'.
func Translate(seq string, offset int) string {
	if offset < 0 {
		offset = 0
	}
	if offset > len(seq) {
		offset = len(seq)
	}
	out := make([]byte, 0, (len(seq)-offset)/3+1)
	for i := offset; i+3 <= len(seq); i += 3 {
		aa, ok := geneticCode[seq[i:i+3]]
		if !ok {
			aa = 'X'
		}
		out = append(out, aa)
	}
	return string(out)
}

// StartOffset returns the index of the first in-frame ATG (positions 0, 3,
// 6, ...) or 0 when there is none.
func StartOffset(seq string) int {
	for i := 0; i+3 <= len(seq); i += 3 {
		if seq[i:i+3] == StartCodon {
			return i
		}
	}
	return 0
}

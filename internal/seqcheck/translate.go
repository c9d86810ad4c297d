package seqcheck

import (
	"strings"

	"biodesigner/internal/codon"
)

type Translation struct {
	DNASequence     string `json:"dnaSequence"`
	ProteinSequence string `json:"proteinSequence"`
	Length          int    `json:"length"`
}

// Translate reads from the first occurrence of startCodon in any frame (or
// from position 0 when absent) up to the first stop codon. Unknown codons
// become 'X'. An empty startCodon means ATG.
func Translate(seq, startCodon string) Translation {
	upper := strings.ToUpper(seq)
	if startCodon == "" {
		startCodon = codon.StartCodon
	}
	start := strings.Index(upper, strings.ToUpper(startCodon))
	if start < 0 {
		start = 0
	}

	protein := codon.Translate(upper, start)
	if stop := strings.IndexByte(protein, codon.Stop); stop >= 0 {
		protein = protein[:stop]
	}
	return Translation{DNASequence: seq, ProteinSequence: protein, Length: len(protein)}
}

// Package seqcheck reports common problems in a DNA sequence before it is
// ordered or cloned: invalid bases, restriction sites, repeats and
// palindromes.
package seqcheck

import (
	"regexp"
	"strings"

	"github.com/koeng101/poly"

	"biodesigner/internal/codon"
)

const (
	RepeatLength        = 8
	MinPalindromeLength = 6
	MaxPalindromeLength = 12
)

var dnaPattern = regexp.MustCompile(`(?i)^[ATGC]+$`)

type Enzyme struct {
	Name    string `json:"name"`
	Pattern string `json:"pattern"`
}

// Enzymes is the restriction enzyme table scanned by Validate, in report
// order.
var Enzymes = []Enzyme{
	{Name: "EcoRI", Pattern: "GAATTC"},
	{Name: "BamHI", Pattern: "GGATCC"},
	{Name: "HindIII", Pattern: "AAGCTT"},
	{Name: "XbaI", Pattern: "TCTAGA"},
	{Name: "PstI", Pattern: "CTGCAG"},
	{Name: "SalI", Pattern: "GTCGAC"},
	{Name: "NotI", Pattern: "GCGGCCGC"},
	{Name: "XhoI", Pattern: "CTCGAG"},
}

// EnzymeByName looks name up in Enzymes, ignoring case.
func EnzymeByName(name string) (Enzyme, bool) {
	for _, enzyme := range Enzymes {
		if strings.EqualFold(enzyme.Name, strings.TrimSpace(name)) {
			return enzyme, true
		}
	}
	return Enzyme{}, false
}

type SiteHit struct {
	Name     string `json:"name"`
	Position int    `json:"position"`
	Pattern  string `json:"pattern"`
}

type Repeat struct {
	Pattern  string `json:"pattern"`
	Position int    `json:"position"`
	Length   int    `json:"length"`
}

type Palindrome struct {
	Sequence string `json:"sequence"`
	Position int    `json:"position"`
	Length   int    `json:"length"`
}

type Report struct {
	IsValidDNA        bool         `json:"isValidDNA"`
	Length            int          `json:"length"`
	GCContent         float64      `json:"gcContent"`
	RestrictionSites  []SiteHit    `json:"restrictionSites"`
	RepeatedSequences []Repeat     `json:"repeatedSequences"`
	Palindromes       []Palindrome `json:"palindromes"`
}

// Validate scans seq case-insensitively. Positions are 0-based.
func Validate(seq string) Report {
	upper := strings.ToUpper(seq)
	return Report{
		IsValidDNA:        IsValidDNA(seq),
		Length:            len(seq),
		GCContent:         codon.GCContent(upper),
		RestrictionSites:  RestrictionSites(upper, Enzymes),
		RepeatedSequences: Repeats(upper),
		Palindromes:       Palindromes(upper),
	}
}

func IsValidDNA(seq string) bool {
	return dnaPattern.MatchString(seq)
}

// RestrictionSites reports every occurrence of every enzyme pattern,
// overlapping occurrences included.
func RestrictionSites(seq string, enzymes []Enzyme) []SiteHit {
	seq = strings.ToUpper(seq)
	hits := make([]SiteHit, 0)
	for _, enzyme := range enzymes {
		for _, pos := range occurrences(seq, enzyme.Pattern) {
			hits = append(hits, SiteHit{Name: enzyme.Name, Position: pos, Pattern: enzyme.Pattern})
		}
	}
	return hits
}

// Repeats finds every RepeatLength-mer that occurs again after itself and
// reports all of its occurrences, each (pattern, position) once.
func Repeats(seq string) []Repeat {
	seq = strings.ToUpper(seq)
	repeats := make([]Repeat, 0)
	reported := make(map[string]bool)
	for i := 0; i < len(seq)-RepeatLength; i++ {
		pattern := seq[i : i+RepeatLength]
		if reported[pattern] || !strings.Contains(seq[i+RepeatLength:], pattern) {
			continue
		}
		reported[pattern] = true
		for _, pos := range occurrences(seq, pattern) {
			repeats = append(repeats, Repeat{Pattern: pattern, Position: pos, Length: RepeatLength})
		}
	}
	return repeats
}

// Palindromes reports even-length windows between MinPalindromeLength and
// MaxPalindromeLength that equal their own reverse complement.
func Palindromes(seq string) []Palindrome {
	seq = strings.ToUpper(seq)
	out := make([]Palindrome, 0)
	for i := 0; i < len(seq)-MinPalindromeLength; i++ {
		for n := MinPalindromeLength; n <= MaxPalindromeLength && i+n <= len(seq); n += 2 {
			window := seq[i : i+n]
			if window == poly.ReverseComplement(window) {
				out = append(out, Palindrome{Sequence: window, Position: i, Length: n})
			}
		}
	}
	return out
}

func occurrences(seq, pattern string) []int {
	if pattern == "" {
		return nil
	}
	var positions []int
	for from := 0; ; {
		idx := strings.Index(seq[from:], pattern)
		if idx < 0 {
			return positions
		}
		positions = append(positions, from+idx)
		from += idx + 1
	}
}

package seqcheck

import (
	"math"
	"reflect"
	"testing"

	"github.com/koeng101/poly"
)

func TestIsValidDNA(t *testing.T) {
	for _, seq := range []string{"ATGC", "atgc", "AaTtGgCc"} {
		if !IsValidDNA(seq) {
			t.Fatalf("expected %q to be valid", seq)
		}
	}
	for _, seq := range []string{"", "ATGN", "AUGC", "ATG C"} {
		if IsValidDNA(seq) {
			t.Fatalf("expected %q to be invalid", seq)
		}
	}
}

func TestRestrictionSites(t *testing.T) {
	hits := RestrictionSites("ttGAATTCggatccGAATTC", Enzymes)
	want := []SiteHit{
		{Name: "EcoRI", Position: 2, Pattern: "GAATTC"},
		{Name: "EcoRI", Position: 14, Pattern: "GAATTC"},
		{Name: "BamHI", Position: 8, Pattern: "GGATCC"},
	}
	if !reflect.DeepEqual(hits, want) {
		t.Fatalf("unexpected hits: %+v", hits)
	}
}

func TestRestrictionSitesOverlapping(t *testing.T) {
	hits := RestrictionSites("GCGGCCGCGGCCGC", []Enzyme{{Name: "NotI", Pattern: "GCGGCCGC"}})
	if len(hits) != 2 || hits[0].Position != 0 || hits[1].Position != 6 {
		t.Fatalf("expected overlapping NotI hits at 0 and 6, got %+v", hits)
	}
}

func TestRepeats(t *testing.T) {
	seq := "ACGTACGTTTACGTACGTCC"
	repeats := Repeats(seq)
	want := []Repeat{
		{Pattern: "ACGTACGT", Position: 0, Length: 8},
		{Pattern: "ACGTACGT", Position: 10, Length: 8},
	}
	if !reflect.DeepEqual(repeats, want) {
		t.Fatalf("unexpected repeats: %+v", repeats)
	}
	if got := Repeats("ACGTACGT"); len(got) != 0 {
		t.Fatalf("expected no repeats in a single 8-mer, got %+v", got)
	}
}

func TestPalindromes(t *testing.T) {
	got := Palindromes("TTGAATTCTT")
	want := []Palindrome{
		{Sequence: "GAATTC", Position: 2, Length: 6},
		{Sequence: "TTGAATTCAA", Position: 0, Length: 10},
	}
	found := map[Palindrome]bool{}
	for _, p := range got {
		found[p] = true
	}
	if !found[want[0]] {
		t.Fatalf("expected %+v in %+v", want[0], got)
	}
	if found[want[1]] {
		t.Fatalf("did not expect %+v", want[1])
	}
	for _, p := range got {
		if p.Sequence != poly.ReverseComplement(p.Sequence) || p.Length%2 != 0 {
			t.Fatalf("not a palindrome: %+v", p)
		}
	}
}

func TestPalindromesIgnoreCase(t *testing.T) {
	got := Palindromes("ccgaattccc")
	want := []Palindrome{
		{Sequence: "CGAATTCG", Position: 1, Length: 8},
		{Sequence: "GAATTC", Position: 2, Length: 6},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestValidateReport(t *testing.T) {
	report := Validate("atgGAATTCgc")
	if !report.IsValidDNA || report.Length != 11 {
		t.Fatalf("unexpected report header: %+v", report)
	}
	if math.Abs(report.GCContent-500.0/11) > 1e-9 {
		t.Fatalf("unexpected gc content: %f", report.GCContent)
	}
	if len(report.RestrictionSites) != 1 || report.RestrictionSites[0].Name != "EcoRI" {
		t.Fatalf("unexpected sites: %+v", report.RestrictionSites)
	}
	if report.RepeatedSequences == nil || report.Palindromes == nil {
		t.Fatal("expected empty slices, not nil, for JSON output")
	}
}

func TestEnzymeByName(t *testing.T) {
	enzyme, ok := EnzymeByName(" ecori ")
	if !ok || enzyme.Pattern != "GAATTC" {
		t.Fatalf("expected EcoRI lookup, got %+v ok=%t", enzyme, ok)
	}
	if _, ok := EnzymeByName("BsaI"); ok {
		t.Fatal("expected unknown enzyme to be missing")
	}
}

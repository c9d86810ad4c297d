package sim

import (
	"math"

	"biodesigner/internal/model"
)

// LeakageFloor bounds the uninduced level from below when computing fold
// change.
const LeakageFloor = 0.1

type ReporterProfile struct {
	ID         string  `json:"id"`
	Induced    float64 `json:"induced"`
	Uninduced  float64 `json:"uninduced"`
	FoldChange float64 `json:"foldChange"`
}

type Profile struct {
	Induced   Levels            `json:"induced"`
	Uninduced Levels            `json:"uninduced"`
	Reporters []ReporterProfile `json:"reporters"`
}

// ProfileOf simulates both induction states and summarizes every reporter
// gene in node order.
func ProfileOf(design model.Design) Profile {
	induced := Simulate(design, true)
	uninduced := Simulate(design, false)

	reporters := make([]ReporterProfile, 0)
	for _, node := range design.Nodes {
		gene, ok := node.Part.(model.Gene)
		if !ok || gene.Function != model.GeneReporter {
			continue
		}
		on := induced[node.ID]
		off := uninduced[node.ID]
		reporters = append(reporters, ReporterProfile{
			ID:         node.ID,
			Induced:    on,
			Uninduced:  off,
			FoldChange: on / math.Max(off, LeakageFloor),
		})
	}
	return Profile{Induced: induced, Uninduced: uninduced, Reporters: reporters}
}

type Complexity struct {
	Nodes      int `json:"nodeCount"`
	Edges      int `json:"edgeCount"`
	Promoters  int `json:"promoterCount"`
	Genes      int `json:"geneCount"`
	Regulatory int `json:"regulatoryCount"`
}

func ComplexityOf(design model.Design) Complexity {
	c := Complexity{Nodes: len(design.Nodes), Edges: len(design.Edges)}
	for _, node := range design.Nodes {
		switch node.Part.(type) {
		case model.Promoter:
			c.Promoters++
		case model.Gene:
			c.Genes++
		case model.Regulatory:
			c.Regulatory++
		}
	}
	return c
}

package model

import (
	"encoding/json"
	"fmt"
)

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

type NodeKind string

const (
	KindPromoter   NodeKind = "promoter"
	KindGene       NodeKind = "gene"
	KindRegulatory NodeKind = "regulatory"
)

// Strength is one rung of the four-level strength ladder shared by promoters
// and regulatory elements.
type Strength string

const (
	StrengthLow      Strength = "low"
	StrengthMedium   Strength = "medium"
	StrengthHigh     Strength = "high"
	StrengthVeryHigh Strength = "very_high"
)

// wireVeryHigh is the circuit editor's spelling of the top rung.
const wireVeryHigh = "very high"

// StrengthLadder lists the strength levels in ascending order.
var StrengthLadder = []Strength{StrengthLow, StrengthMedium, StrengthHigh, StrengthVeryHigh}

// ParseStrength accepts the canonical names plus the "very high" spelling used
// by the circuit editor. An empty value means medium.
func ParseStrength(raw string) (Strength, error) {
	switch raw {
	case "":
		return StrengthMedium, nil
	case "low":
		return StrengthLow, nil
	case "medium":
		return StrengthMedium, nil
	case "high":
		return StrengthHigh, nil
	case "very_high", "very high", "veryHigh":
		return StrengthVeryHigh, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStrength, raw)
	}
}

// WireName returns the spelling written back to the circuit editor.
func (s Strength) WireName() string {
	if s == StrengthVeryHigh {
		return wireVeryHigh
	}
	return string(s)
}

// Index returns the position of s on the ladder, or -1.
func (s Strength) Index() int {
	for i, level := range StrengthLadder {
		if level == s {
			return i
		}
	}
	return -1
}

type GeneFunction string

const (
	GeneReporter  GeneFunction = "reporter"
	GeneRepressor GeneFunction = "repressor"
	GeneOther     GeneFunction = "other"
)

// FunctionTranslation marks a regulatory element that scales translation of
// the genes it connects to (an RBS).
const FunctionTranslation = "translation"

// Part is the kind-specific payload of a circuit node. The set of
// implementations is closed: Promoter, Gene, Regulatory and Passthrough.
type Part interface {
	Kind() NodeKind
	isPart()
}

type Promoter struct {
	Strength  Strength
	Inducible bool
	Inducer   string
}

type Gene struct {
	Function GeneFunction
	Targets  []string
}

type Regulatory struct {
	Function string
	Strength Strength
}

// Passthrough is a node type the engine does not model, such as the
// editor's terminators. It stays in the graph but is never simulated,
// scored or mutated.
type Passthrough struct {
	Type NodeKind
}

func (Promoter) Kind() NodeKind      { return KindPromoter }
func (Gene) Kind() NodeKind          { return KindGene }
func (Regulatory) Kind() NodeKind    { return KindRegulatory }
func (p Passthrough) Kind() NodeKind { return p.Type }

func (Promoter) isPart()    {}
func (Gene) isPart()        {}
func (Regulatory) isPart()  {}
func (Passthrough) isPart() {}

// Represses reports whether the gene is a repressor listing promoterID among
// its targets.
func (g Gene) Represses(promoterID string) bool {
	if g.Function != GeneRepressor {
		return false
	}
	for _, target := range g.Targets {
		if target == promoterID {
			return true
		}
	}
	return false
}

// Node is one element of a circuit. Extra and DataExtra keep fields the engine
// does not interpret (editor position, labels) so designs round-trip.
type Node struct {
	ID        string
	Part      Part
	Extra     map[string]json.RawMessage
	DataExtra map[string]json.RawMessage
}

func (n Node) Kind() NodeKind {
	if n.Part == nil {
		return ""
	}
	return n.Part.Kind()
}

type Edge struct {
	ID     string `json:"id,omitempty"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// Design is a circuit graph. It is treated as a value: operators clone it
// before changing anything.
type Design struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Clone returns a deep copy that shares no mutable state with d.
func (d Design) Clone() Design {
	out := Design{
		Nodes: make([]Node, len(d.Nodes)),
		Edges: make([]Edge, len(d.Edges)),
	}
	copy(out.Edges, d.Edges)
	for i, node := range d.Nodes {
		out.Nodes[i] = node.clone()
	}
	return out
}

func (n Node) clone() Node {
	out := Node{ID: n.ID, Part: n.Part}
	if gene, ok := n.Part.(Gene); ok {
		gene.Targets = append([]string(nil), gene.Targets...)
		out.Part = gene
	}
	out.Extra = cloneRaw(n.Extra)
	out.DataExtra = cloneRaw(n.DataExtra)
	return out
}

func cloneRaw(in map[string]json.RawMessage) map[string]json.RawMessage {
	if in == nil {
		return nil
	}
	out := make(map[string]json.RawMessage, len(in))
	for k, v := range in {
		out[k] = append(json.RawMessage(nil), v...)
	}
	return out
}

// NodeIndex returns the position of the node with the given id, or -1.
func (d Design) NodeIndex(id string) int {
	for i := range d.Nodes {
		if d.Nodes[i].ID == id {
			return i
		}
	}
	return -1
}

func (d Design) HasEdge(source, target string) bool {
	for _, edge := range d.Edges {
		if edge.Source == source && edge.Target == target {
			return true
		}
	}
	return false
}

func (d Design) CountGenes(function GeneFunction) int {
	count := 0
	for _, node := range d.Nodes {
		if gene, ok := node.Part.(Gene); ok && gene.Function == function {
			count++
		}
	}
	return count
}

// Validate checks the structural invariants callers must uphold before a
// design enters the engine.
func (d Design) Validate() error {
	seen := make(map[string]struct{}, len(d.Nodes))
	for i, node := range d.Nodes {
		if node.ID == "" {
			return fmt.Errorf("%w: node %d", ErrEmptyNodeID, i)
		}
		if node.Part == nil {
			return fmt.Errorf("%w: node %s has no payload", ErrUnknownNodeKind, node.ID)
		}
		if _, exists := seen[node.ID]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicateNodeID, node.ID)
		}
		seen[node.ID] = struct{}{}
	}
	for _, edge := range d.Edges {
		if _, ok := seen[edge.Source]; !ok {
			return fmt.Errorf("%w: source %q", ErrDanglingEdge, edge.Source)
		}
		if _, ok := seen[edge.Target]; !ok {
			return fmt.Errorf("%w: target %q", ErrDanglingEdge, edge.Target)
		}
	}
	return nil
}

type Goal string

const (
	GoalMaxExpression Goal = "maxExpression"
	GoalMinLeakage    Goal = "minLeakage"
	GoalStability     Goal = "stability"
)

var Goals = []Goal{GoalMaxExpression, GoalMinLeakage, GoalStability}

func ParseGoal(raw string) (Goal, error) {
	for _, goal := range Goals {
		if string(goal) == raw {
			return goal, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownGoal, raw)
}

type OptimizationResult struct {
	OriginalDesign  Design    `json:"original_design"`
	OptimizedDesign Design    `json:"optimized_design"`
	OriginalScore   float64   `json:"original_score"`
	OptimizedScore  float64   `json:"optimized_score"`
	Iterations      int       `json:"iterations"`
	Goal            Goal      `json:"goal"`
	Accepted        int       `json:"accepted"`
	Restarts        int       `json:"restarts,omitempty"`
	Trace           []float64 `json:"trace,omitempty"`
}

// CodonUsageRecord is the persisted form of an organism's codon usage table.
type CodonUsageRecord struct {
	VersionedRecord
	Organism    string             `json:"organism"`
	Name        string             `json:"name"`
	Frequencies map[string]float64 `json:"frequencies"`
}

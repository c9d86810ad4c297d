package model

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

const editorDesign = `{
  "nodes": [
    {"id": "p1", "type": "promoter", "position": {"x": 10, "y": 20},
     "data": {"label": "pTac", "strength": "very high", "inducible": true, "inducer": "IPTG"}},
    {"id": "r1", "type": "regulatory", "data": {"function": "translation", "strength": "high"}},
    {"id": "g1", "type": "gene", "data": {"function": "repressor", "targets": ["p1"]}},
    {"id": "g2", "type": "gene", "data": {}}
  ],
  "edges": [{"id": "e1", "source": "p1", "target": "g1"}]
}`

func TestDecodeEditorDesign(t *testing.T) {
	var design Design
	if err := json.Unmarshal([]byte(editorDesign), &design); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(design.Nodes) != 4 || len(design.Edges) != 1 {
		t.Fatalf("unexpected shape: %d nodes %d edges", len(design.Nodes), len(design.Edges))
	}

	promoter, ok := design.Nodes[0].Part.(Promoter)
	if !ok {
		t.Fatalf("expected promoter, got %T", design.Nodes[0].Part)
	}
	if promoter != (Promoter{Strength: StrengthVeryHigh, Inducible: true, Inducer: "IPTG"}) {
		t.Fatalf("unexpected promoter: %+v", promoter)
	}
	if string(design.Nodes[0].Extra["position"]) != `{"x": 10, "y": 20}` {
		t.Fatalf("expected position passthrough, got %s", design.Nodes[0].Extra["position"])
	}
	if string(design.Nodes[0].DataExtra["label"]) != `"pTac"` {
		t.Fatalf("expected label passthrough, got %s", design.Nodes[0].DataExtra["label"])
	}

	if rbs := design.Nodes[1].Part.(Regulatory); rbs.Function != FunctionTranslation || rbs.Strength != StrengthHigh {
		t.Fatalf("unexpected regulatory: %+v", rbs)
	}
	if gene := design.Nodes[2].Part.(Gene); !gene.Represses("p1") {
		t.Fatalf("expected repressor of p1: %+v", gene)
	}
	if gene := design.Nodes[3].Part.(Gene); gene.Function != GeneOther {
		t.Fatalf("expected default gene function, got %q", gene.Function)
	}
}

func TestNodeRoundTripKeepsPassthrough(t *testing.T) {
	var design Design
	if err := json.Unmarshal([]byte(editorDesign), &design); err != nil {
		t.Fatalf("decode: %v", err)
	}
	encoded, err := json.Marshal(design)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.Contains(string(encoded), `"strength":"very high"`) {
		t.Fatalf("expected the editor's strength spelling in %s", encoded)
	}
	if !strings.Contains(string(encoded), `"label":"pTac"`) {
		t.Fatalf("expected label in %s", encoded)
	}

	var again Design
	if err := json.Unmarshal(encoded, &again); err != nil {
		t.Fatalf("decode again: %v", err)
	}
	if again.Nodes[0].Part != design.Nodes[0].Part {
		t.Fatalf("promoter changed across round trip: %+v vs %+v", again.Nodes[0].Part, design.Nodes[0].Part)
	}
}

func TestDecodeRejectsUnknownValues(t *testing.T) {
	var node Node
	err := json.Unmarshal([]byte(`{"id":"x","data":{}}`), &node)
	if !errors.Is(err, ErrUnknownNodeKind) {
		t.Fatalf("expected ErrUnknownNodeKind, got %v", err)
	}
	err = json.Unmarshal([]byte(`{"id":"x","type":"promoter","data":{"strength":"loud"}}`), &node)
	if !errors.Is(err, ErrUnknownStrength) {
		t.Fatalf("expected ErrUnknownStrength, got %v", err)
	}
}

func TestDecodeMissingStrengthIsMedium(t *testing.T) {
	var node Node
	if err := json.Unmarshal([]byte(`{"id":"p","type":"promoter"}`), &node); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if node.Part.(Promoter).Strength != StrengthMedium {
		t.Fatalf("expected medium, got %+v", node.Part)
	}
}

func TestStrengthWireNames(t *testing.T) {
	for _, raw := range []string{"very_high", "very high", "veryHigh"} {
		var node Node
		if err := json.Unmarshal([]byte(`{"id":"r","type":"regulatory","data":{"function":"translation","strength":"`+raw+`"}}`), &node); err != nil {
			t.Fatalf("%s: decode: %v", raw, err)
		}
		encoded, err := json.Marshal(node)
		if err != nil {
			t.Fatalf("%s: encode: %v", raw, err)
		}
		if !strings.Contains(string(encoded), `"strength":"very high"`) {
			t.Fatalf("%s: expected very high in %s", raw, encoded)
		}
	}
	for _, s := range []Strength{StrengthLow, StrengthMedium, StrengthHigh} {
		if s.WireName() != string(s) {
			t.Fatalf("expected %q to keep its name, got %q", s, s.WireName())
		}
	}
}

func TestUnmodelledNodeTypeRoundTrips(t *testing.T) {
	const body = `{"id":"t1","type":"terminator","position":{"x":5,"y":6},"data":{"label":"T7 term","efficiency":0.9}}`
	var node Node
	if err := json.Unmarshal([]byte(body), &node); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if node.Part != (Passthrough{Type: "terminator"}) || node.Kind() != "terminator" {
		t.Fatalf("unexpected part %+v", node.Part)
	}
	encoded, err := json.Marshal(node)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var want, got map[string]any
	if err := json.Unmarshal([]byte(body), &want); err != nil {
		t.Fatalf("decode want: %v", err)
	}
	if err := json.Unmarshal(encoded, &got); err != nil {
		t.Fatalf("decode got: %v", err)
	}
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("round trip changed node:\nwant %v\ngot  %v", want, got)
	}

	design := Design{Nodes: []Node{node, {ID: "g1", Part: Gene{Function: GeneReporter}}}, Edges: []Edge{{Source: "g1", Target: "t1"}}}
	if err := design.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

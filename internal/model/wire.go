package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// The editor sends nodes as {"id", "type", "data": {...}}. Known data fields
// are decoded into the typed Part; everything else is preserved verbatim.

var (
	nodeKeys       = map[string]struct{}{"id": {}, "type": {}, "data": {}}
	promoterKeys   = map[string]struct{}{"strength": {}, "inducible": {}, "inducer": {}}
	geneKeys       = map[string]struct{}{"function": {}, "targets": {}}
	regulatoryKeys = map[string]struct{}{"function": {}, "strength": {}}
)

type promoterData struct {
	Strength  string `json:"strength"`
	Inducible bool   `json:"inducible"`
	Inducer   string `json:"inducer"`
}

type geneData struct {
	Function string   `json:"function"`
	Targets  []string `json:"targets"`
}

type regulatoryData struct {
	Function string `json:"function"`
	Strength string `json:"strength"`
}

func (n *Node) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var id, kind string
	if v, ok := raw["id"]; ok {
		if err := json.Unmarshal(v, &id); err != nil {
			return fmt.Errorf("node id: %w", err)
		}
	}
	if v, ok := raw["type"]; ok {
		if err := json.Unmarshal(v, &kind); err != nil {
			return fmt.Errorf("node %s type: %w", id, err)
		}
	}

	payload := raw["data"]
	if len(payload) == 0 || bytes.Equal(payload, []byte("null")) {
		payload = []byte("{}")
	}
	var dataFields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &dataFields); err != nil {
		return fmt.Errorf("node %s data: %w", id, err)
	}

	var (
		part  Part
		known map[string]struct{}
	)
	switch NodeKind(kind) {
	case KindPromoter:
		var d promoterData
		if err := json.Unmarshal(payload, &d); err != nil {
			return fmt.Errorf("node %s promoter data: %w", id, err)
		}
		strength, err := ParseStrength(d.Strength)
		if err != nil {
			return fmt.Errorf("node %s: %w", id, err)
		}
		part = Promoter{Strength: strength, Inducible: d.Inducible, Inducer: d.Inducer}
		known = promoterKeys
	case KindGene:
		var d geneData
		if err := json.Unmarshal(payload, &d); err != nil {
			return fmt.Errorf("node %s gene data: %w", id, err)
		}
		function := GeneFunction(d.Function)
		if function == "" {
			function = GeneOther
		}
		part = Gene{Function: function, Targets: d.Targets}
		known = geneKeys
	case KindRegulatory:
		var d regulatoryData
		if err := json.Unmarshal(payload, &d); err != nil {
			return fmt.Errorf("node %s regulatory data: %w", id, err)
		}
		strength, err := ParseStrength(d.Strength)
		if err != nil {
			return fmt.Errorf("node %s: %w", id, err)
		}
		part = Regulatory{Function: d.Function, Strength: strength}
		known = regulatoryKeys
	case "":
		return fmt.Errorf("%w: node %s has no type", ErrUnknownNodeKind, id)
	default:
		part = Passthrough{Type: NodeKind(kind)}
	}

	*n = Node{
		ID:        id,
		Part:      part,
		Extra:     leftover(raw, nodeKeys),
		DataExtra: leftover(dataFields, known),
	}
	return nil
}

func (n Node) MarshalJSON() ([]byte, error) {
	data := make(map[string]any, len(n.DataExtra)+3)
	for k, v := range n.DataExtra {
		data[k] = v
	}
	switch p := n.Part.(type) {
	case Promoter:
		data["strength"] = p.Strength.WireName()
		data["inducible"] = p.Inducible
		if p.Inducer != "" {
			data["inducer"] = p.Inducer
		}
	case Gene:
		data["function"] = p.Function
		if len(p.Targets) > 0 {
			data["targets"] = p.Targets
		}
	case Regulatory:
		data["function"] = p.Function
		data["strength"] = p.Strength.WireName()
	case Passthrough:
		if p.Type == "" {
			return nil, fmt.Errorf("%w: node %s has no type", ErrUnknownNodeKind, n.ID)
		}
	default:
		return nil, fmt.Errorf("%w: node %s", ErrUnknownNodeKind, n.ID)
	}

	out := make(map[string]any, len(n.Extra)+3)
	for k, v := range n.Extra {
		out[k] = v
	}
	out["id"] = n.ID
	out["type"] = n.Part.Kind()
	out["data"] = data
	return json.Marshal(out)
}

func leftover(fields map[string]json.RawMessage, known map[string]struct{}) map[string]json.RawMessage {
	var extra map[string]json.RawMessage
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, ok := known[k]; ok {
			continue
		}
		if extra == nil {
			extra = make(map[string]json.RawMessage)
		}
		extra[k] = fields[k]
	}
	return extra
}

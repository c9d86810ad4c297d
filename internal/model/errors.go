package model

import "errors"

var (
	ErrEmptyNodeID     = errors.New("node id is required")
	ErrDuplicateNodeID = errors.New("duplicate node id")
	ErrDanglingEdge    = errors.New("edge references unknown node")
	ErrUnknownNodeKind = errors.New("unknown node type")
	ErrUnknownStrength = errors.New("unknown strength")
	ErrUnknownGoal     = errors.New("unknown optimization goal")
)

package domain

import (
	"errors"

	"go.trai.ch/zerr"
)

var (
	// ErrEmptyNodeID is returned when a node has an empty identifier.
	ErrEmptyNodeID = zerr.New("node id cannot be empty")

	// ErrNodeIDTooLong is returned when a node identifier exceeds the configured maximum length.
	ErrNodeIDTooLong = zerr.New("node id exceeds maximum length")

	// ErrEmptyNodeType is returned when a node has an empty type tag.
	ErrEmptyNodeType = zerr.New("node type cannot be empty")

	// ErrDuplicateNodeID is returned when two nodes in a pipeline share an identifier.
	ErrDuplicateNodeID = zerr.New("duplicate node id")

	// ErrTooManyNodes is returned when a pipeline exceeds the configured node limit.
	ErrTooManyNodes = zerr.New("pipeline exceeds maximum node count")

	// ErrTooManyEdges is returned when a pipeline exceeds the configured edge limit.
	ErrTooManyEdges = zerr.New("pipeline exceeds maximum edge count")

	// ErrEmptyEdgeRef is returned when an edge has an empty source or target reference.
	ErrEmptyEdgeRef = zerr.New("edge references cannot be empty")

	// ErrEdgeRefTooLong is returned when an edge reference exceeds the configured maximum length.
	ErrEdgeRefTooLong = zerr.New("edge reference exceeds maximum length")

	// ErrSelfLoop is returned when an edge's source and target are the same node.
	ErrSelfLoop = zerr.New("self-loop on node")

	// ErrUnknownNode is returned when an edge references a node absent from the node list.
	ErrUnknownNode = zerr.New("unknown node")

	// ErrInternal is the opaque fault reported for any unanticipated failure
	// inside the analysis path. The underlying cause is logged, never surfaced.
	ErrInternal = zerr.New("internal error during pipeline analysis")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidConfig is returned when a config value is out of range.
	ErrInvalidConfig = zerr.New("invalid configuration value")
)

// ErrorKind partitions analysis failures for the transport layer.
type ErrorKind int

const (
	// KindInternal covers anything not explicitly client-attributable.
	KindInternal ErrorKind = iota
	// KindValidation covers malformed input shape, detected before graph construction.
	KindValidation
	// KindStructural covers well-formed input that is not a valid graph.
	KindStructural
)

var validationErrs = []error{
	ErrEmptyNodeID,
	ErrNodeIDTooLong,
	ErrEmptyNodeType,
	ErrDuplicateNodeID,
	ErrTooManyNodes,
	ErrTooManyEdges,
	ErrEmptyEdgeRef,
	ErrEdgeRefTooLong,
}

var structuralErrs = []error{
	ErrSelfLoop,
	ErrUnknownNode,
}

// KindOf classifies err into the taxonomy above. The orchestrator is the only
// producer of these errors, so an unrecognized error is an internal fault.
func KindOf(err error) ErrorKind {
	for _, sentinel := range validationErrs {
		if errors.Is(err, sentinel) {
			return KindValidation
		}
	}
	for _, sentinel := range structuralErrs {
		if errors.Is(err, sentinel) {
			return KindStructural
		}
	}
	return KindInternal
}

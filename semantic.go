package gltfdraco

import (
	"fmt"
	"strconv"
	"strings"
)

type SemanticKind int

const (
	SemanticPosition SemanticKind = iota
	SemanticNormal
	SemanticTangent
	SemanticTexCoord
	SemanticColor
	SemanticJoints
	SemanticWeights
)

// Semantic is a parsed glTF attribute name. Set is the trailing index
// of multi-set attributes (TEXCOORD_1 -> 1) and zero otherwise.
type Semantic struct {
	Kind SemanticKind
	Set  int
}

func ParseSemantic(name string) (Semantic, bool) {
	switch name {
	case "POSITION":
		return Semantic{Kind: SemanticPosition}, true
	case "NORMAL":
		return Semantic{Kind: SemanticNormal}, true
	case "TANGENT":
		return Semantic{Kind: SemanticTangent}, true
	}

	kind, setString, found := strings.Cut(name, "_")
	if !found {
		return Semantic{}, false
	}
	set, err := strconv.Atoi(setString)
	if err != nil || set < 0 {
		return Semantic{}, false
	}

	switch kind {
	case "TEXCOORD":
		return Semantic{Kind: SemanticTexCoord, Set: set}, true
	case "COLOR":
		return Semantic{Kind: SemanticColor, Set: set}, true
	case "JOINTS":
		return Semantic{Kind: SemanticJoints, Set: set}, true
	case "WEIGHTS":
		return Semantic{Kind: SemanticWeights, Set: set}, true
	}
	return Semantic{}, false
}

func (s Semantic) String() string {
	switch s.Kind {
	case SemanticPosition:
		return "POSITION"
	case SemanticNormal:
		return "NORMAL"
	case SemanticTangent:
		return "TANGENT"
	case SemanticTexCoord:
		return fmt.Sprintf("TEXCOORD_%d", s.Set)
	case SemanticColor:
		return fmt.Sprintf("COLOR_%d", s.Set)
	case SemanticJoints:
		return fmt.Sprintf("JOINTS_%d", s.Set)
	case SemanticWeights:
		return fmt.Sprintf("WEIGHTS_%d", s.Set)
	}
	return fmt.Sprintf("UNKNOWN_%d", int(s.Kind))
}

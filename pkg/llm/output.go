package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"

	"github.com/umputun/feedguard/pkg/domain"
)

// verdictOutput is the answer shape expected from the model
type verdictOutput struct {
	Contains bool     `json:"contains" jsonschema:"description=True if the entry contains any of the requested content types"`
	Types    []string `json:"types" jsonschema:"description=Requested content types found in the entry; empty if none"`
}

// outputSchema returns JSON schema of verdictOutput for structured output requests
func outputSchema() *jsonschema.Schema {
	r := &jsonschema.Reflector{DoNotReference: true, ExpandedStruct: true}
	schema := r.Reflect(&verdictOutput{})
	schema.Version = ""
	return schema
}

// parseVerdict extracts a verdict from the model answer and validates it against requested types.
// The json object may be wrapped with text or code fences.
func parseVerdict(content string, requested []string) (domain.Verdict, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return domain.Verdict{}, errors.New("empty answer")
	}

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || start >= end {
		return domain.Verdict{}, errors.New("no json object found in answer")
	}

	var out struct {
		Contains *bool    `json:"contains"`
		Types    []string `json:"types"`
	}
	if err := json.Unmarshal([]byte(content[start:end+1]), &out); err != nil {
		return domain.Verdict{}, fmt.Errorf("parse json answer: %w", err)
	}
	if out.Contains == nil {
		return domain.Verdict{}, errors.New("field contains is missing")
	}

	return normalizeVerdict(*out.Contains, out.Types, requested)
}

// normalizeVerdict keeps only requested types, deduplicated, in request order and in requested spelling.
// Negative verdict never has types. Positive verdict must have at least one requested type.
func normalizeVerdict(contains bool, types, requested []string) (domain.Verdict, error) {
	if !contains {
		return domain.Verdict{Contains: false, Types: []string{}}, nil
	}

	matched := make([]string, 0, len(requested))
	seen := make(map[string]bool, len(requested))
	for _, r := range requested {
		key := strings.ToLower(strings.TrimSpace(r))
		if seen[key] {
			continue
		}
		for _, t := range types {
			if strings.ToLower(strings.TrimSpace(t)) == key {
				matched = append(matched, r)
				seen[key] = true
				break
			}
		}
	}

	if len(matched) == 0 {
		return domain.Verdict{}, fmt.Errorf("contains is true but none of types %q were requested", types)
	}
	return domain.Verdict{Contains: true, Types: matched}, nil
}

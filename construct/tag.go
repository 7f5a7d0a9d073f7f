// Package construct is the construction tagging engine: rule-based
// detectors over one dependency-parsed sentence, producing tags with
// spans, confidence and a trigger record.
package construct

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/cours-de-latin/constructio/predicate"
)

// Construction types.
const (
	TypeCumClause           = "cum_clause"
	TypeAblAbs              = "abl_abs"
	TypeIndirectStatement   = "indirect_statement"
	TypePurposeClause       = "purpose_clause"
	TypeResultClause        = "result_clause"
	TypeSubjunctiveRelative = "subjunctive_relative_clause"
	TypeRelativeClause      = "relative_clause"
	TypeGerund              = "gerund"
	TypeGerundive           = "gerundive"
	TypeGerundGerundiveFlip = "gerund_gerundive_flip"
	TypeConditionalProtasis = "conditional_protasis"
	TypeConditionalApodosis = "conditional_apodosis"
)

// Types lists every construction type the engine can emit, in the
// driver's detector order.
func Types() []string {
	return []string{
		TypeCumClause,
		TypeAblAbs,
		TypeIndirectStatement,
		TypePurposeClause,
		TypeResultClause,
		TypeSubjunctiveRelative,
		TypeRelativeClause,
		TypeGerund,
		TypeGerundive,
		TypeGerundGerundiveFlip,
		TypeConditionalProtasis,
		TypeConditionalApodosis,
	}
}

// Span is an inclusive token index pair, serialized as [start, end].
type Span struct {
	Start int
	End   int
}

func (s Span) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{s.Start, s.End})
}

func (s *Span) UnmarshalJSON(data []byte) error {
	var pair [2]int
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	s.Start, s.End = pair[0], pair[1]
	return nil
}

// Ref names one token index that participated in a trigger.
type Ref struct {
	Name  string
	Index int
}

// Trigger records which rule fired and on which token indices, for
// diagnostics and deduplication.
type Trigger struct {
	// Rule names the heuristic path, e.g. "mark+subj".
	Rule string

	// Refs are the participating indices, in detector order.
	Refs []Ref
}

// NewTrigger builds a trigger for rule with the given refs.
func NewTrigger(rule string, refs ...Ref) Trigger {
	return Trigger{Rule: rule, Refs: refs}
}

// Get returns the index recorded under name.
func (t Trigger) Get(name string) (int, bool) {
	for _, r := range t.Refs {
		if r.Name == name {
			return r.Index, true
		}
	}
	return 0, false
}

// key is the canonical form used for deduplication: rule plus the refs
// sorted by name.
func (t Trigger) key() string {
	parts := make([]string, 0, len(t.Refs)+1)
	for _, r := range t.Refs {
		parts = append(parts, fmt.Sprintf("%s=%d", r.Name, r.Index))
	}
	sort.Strings(parts)
	return t.Rule + "|" + strings.Join(parts, ",")
}

// MarshalJSON flattens the trigger into one object:
// {"rule":"mark+subj","marker_index":3,"verb_index":7}.
func (t Trigger) MarshalJSON() ([]byte, error) {
	obj := make(map[string]any, len(t.Refs)+1)
	if t.Rule != "" {
		obj["rule"] = t.Rule
	}
	for _, r := range t.Refs {
		obj[r.Name] = r.Index
	}
	return json.Marshal(obj)
}

// UnmarshalJSON restores the flat object form. Ref order is not
// preserved; refs come back sorted by name.
func (t *Trigger) UnmarshalJSON(data []byte) error {
	obj := map[string]any{}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	t.Rule = ""
	t.Refs = nil
	names := make([]string, 0, len(obj))
	for name := range obj {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		v := obj[name]
		if name == "rule" {
			if s, ok := v.(string); ok {
				t.Rule = s
			}
			continue
		}
		if f, ok := v.(float64); ok {
			t.Refs = append(t.Refs, Ref{Name: name, Index: int(f)})
		}
	}
	return nil
}

// PredInfo is one side of a conditional: the predicate index plus its
// normalized signature. Form and InfTime are filled for the apodosis.
type PredInfo struct {
	VerbIndex int                 `json:"verb_index"`
	Mood      string              `json:"mood,omitempty"`
	Tense     string              `json:"tense,omitempty"`
	Aspect    string              `json:"aspect,omitempty"`
	VerbForm  string              `json:"verbForm,omitempty"`
	Compound  *predicate.Compound `json:"compound,omitempty"`
	Form      string              `json:"form,omitempty"`
	InfTime   string              `json:"inf_time,omitempty"`
}

// Conditional is the shared classification metadata carried by both tags
// of a resolved protasis/apodosis pair.
type Conditional struct {
	Label         string   `json:"label"`
	Discourse     string   `json:"discourse"`
	Sequence      string   `json:"sequence,omitempty"`
	Statement     string   `json:"statement"`
	HeadVerbIndex int      `json:"head_verb_index"`
	HeadVerbTense string   `json:"head_verb_tense,omitempty"`
	Protasis      PredInfo `json:"protasis"`
	Apodosis      PredInfo `json:"apodosis"`
}

// Tag is one detected construction. Tags are pure outputs: detectors
// never mutate the input tokens, and a tag is never updated after
// creation.
type Tag struct {
	Type    string `json:"type"`
	Subtype string `json:"subtype,omitempty"`

	// Start/End are inclusive token indices into the owning sentence.
	Start int `json:"start"`
	End   int `json:"end"`

	// Highlights marks the salient sub-tokens inside the full span.
	Highlights []Span `json:"highlight_spans,omitempty"`

	// Confidence in [0,1] reflects rule specificity, not probability.
	Confidence float64 `json:"confidence"`

	Trigger Trigger `json:"trigger"`

	// Conditional is set only on conditional_protasis/_apodosis tags.
	Conditional *Conditional `json:"conditional,omitempty"`
}

// Valid reports whether the tag's span and highlights reference valid
// token positions of a sentence with n tokens.
func (t Tag) Valid(n int) bool {
	if t.Start < 0 || t.End >= n || t.Start > t.End {
		return false
	}
	for _, h := range t.Highlights {
		if h.Start < 0 || h.End >= n || h.Start > h.End {
			return false
		}
	}
	return true
}

// Dedup removes tags that are structurally identical: same type, subtype,
// highlight spans and trigger. First seen wins, order is preserved
// otherwise. Running it twice yields the same list.
func Dedup(tags []Tag) []Tag {
	seen := make(map[string]bool, len(tags))
	out := make([]Tag, 0, len(tags))
	for _, t := range tags {
		var hb strings.Builder
		for _, h := range t.Highlights {
			fmt.Fprintf(&hb, "[%d:%d]", h.Start, h.End)
		}
		key := t.Type + "|" + t.Subtype + "|" + hb.String() + "|" + t.Trigger.key()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}
	return out
}

// Package review is the offline QC pass over a tagged corpus: it
// counts tags by type and type+subtype, validates spans and highlight
// spans against the owning sentence, and prints a capped set of
// examples per construction type.
package review

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/cours-de-latin/constructio/construct"
	"github.com/cours-de-latin/constructio/render"
	sent "github.com/cours-de-latin/constructio/sentence"
)

// MaxPerType caps the number of example tags printed per type.
const MaxPerType = 10

// Problem is one tag that failed validation.
type Problem struct {
	Sid     string
	Type    string
	Subtype string
	Reasons []string
}

// Census aggregates counts and validation problems over a tagged
// corpus.
type Census struct {
	Tags      int
	Sentences int
	Missing   []string
	ByType    map[string]int
	BySubtype map[string]int
	Problems  []Problem
}

// NewCensus returns an empty census.
func NewCensus() *Census {
	return &Census{
		ByType:    map[string]int{},
		BySubtype: map[string]int{},
	}
}

// Aggregate folds one sentence's tags into the census. A sid with no
// matching sentence is recorded under Missing and its tags are skipped.
func (c *Census) Aggregate(s sent.Sentence, tags []construct.Tag) {
	c.Sentences++
	n := len(s.Tokens)
	for _, tag := range tags {
		c.Tags++
		c.ByType[tag.Type]++
		if tag.Subtype != "" {
			c.BySubtype[tag.Type+"/"+tag.Subtype]++
		}
		if reasons := validate(n, tag); len(reasons) > 0 {
			c.Problems = append(c.Problems, Problem{
				Sid:     s.Sid,
				Type:    tag.Type,
				Subtype: tag.Subtype,
				Reasons: reasons,
			})
		}
	}
}

// AggregateAll runs the census over a full sid-to-tags mapping,
// resolving sentences through lookup.
func (c *Census) AggregateAll(bySid map[string][]construct.Tag, lookup func(sid string) (sent.Sentence, error)) {
	sids := make([]string, 0, len(bySid))
	for sid := range bySid {
		sids = append(sids, sid)
	}
	sort.Strings(sids)
	for _, sid := range sids {
		s, err := lookup(sid)
		if err != nil {
			c.Missing = append(c.Missing, sid)
			continue
		}
		c.Aggregate(s, bySid[sid])
	}
}

func validate(n int, tag construct.Tag) []string {
	var reasons []string
	if tag.Start < 0 || tag.Start >= n {
		reasons = append(reasons, fmt.Sprintf("start out of range: %d", tag.Start))
	}
	if tag.End < 0 || tag.End >= n {
		reasons = append(reasons, fmt.Sprintf("end out of range: %d", tag.End))
	}
	if tag.Start > tag.End {
		reasons = append(reasons, fmt.Sprintf("start > end (%d > %d)", tag.Start, tag.End))
	}
	for _, h := range tag.Highlights {
		if h.Start < 0 || h.Start >= n || h.End < 0 || h.End >= n {
			reasons = append(reasons, fmt.Sprintf("highlight span out of range: [%d,%d]", h.Start, h.End))
			continue
		}
		if h.Start > h.End {
			reasons = append(reasons, fmt.Sprintf("highlight span reversed: [%d,%d]", h.Start, h.End))
		}
	}
	return reasons
}

// Summary writes the count and validation tables.
func (c *Census) Summary(w io.Writer) {
	rule := strings.Repeat("=", 90)

	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "TAG COUNTS BY TYPE (%d tags, %d sentences)\n", c.Tags, c.Sentences)
	for _, kv := range sortedCounts(c.ByType) {
		fmt.Fprintf(w, "%-28s  %d\n", kv.key, kv.count)
	}

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "TAG COUNTS BY TYPE + SUBTYPE")
	for _, kv := range sortedCounts(c.BySubtype) {
		fmt.Fprintf(w, "%-48s  %d\n", kv.key, kv.count)
	}

	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "VALIDATION: %d tags with problems\n", len(c.Problems))
	for i, p := range c.Problems {
		if i >= 30 {
			fmt.Fprintf(w, "... and %d more\n", len(c.Problems)-30)
			break
		}
		st := ""
		if p.Subtype != "" {
			st = " subtype=" + p.Subtype
		}
		fmt.Fprintf(w, "- %s :: %s%s -> %s\n", p.Sid, p.Type, st, strings.Join(p.Reasons, ", "))
	}
	if len(c.Missing) > 0 {
		fmt.Fprintf(w, "MISSING SENTENCES: %d sids without a corpus sentence\n", len(c.Missing))
	}
}

type countEntry struct {
	key   string
	count int
}

// sortedCounts orders a counter by count descending, then key.
func sortedCounts(m map[string]int) []countEntry {
	out := make([]countEntry, 0, len(m))
	for k, v := range m {
		out = append(out, countEntry{k, v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].key < out[j].key
	})
	return out
}

// Examples prints up to MaxPerType example tags per construction type,
// iterating sids in sorted order so output is stable across runs.
// Returns how many examples were printed per type.
func Examples(w io.Writer, bySid map[string][]construct.Tag, lookup func(sid string) (sent.Sentence, error), withTokens bool) map[string]int {
	printed := map[string]int{}
	sids := make([]string, 0, len(bySid))
	for sid := range bySid {
		sids = append(sids, sid)
	}
	sort.Strings(sids)
	for _, sid := range sids {
		s, err := lookup(sid)
		if err != nil {
			continue
		}
		for _, tag := range bySid[sid] {
			if printed[tag.Type] >= MaxPerType {
				continue
			}
			printExample(w, s, tag, withTokens)
			printed[tag.Type]++
		}
	}
	return printed
}

func printExample(w io.Writer, s sent.Sentence, tag construct.Tag, withTokens bool) {
	fmt.Fprintln(w, strings.Repeat("-", 90))
	head := fmt.Sprintf("SID: %s   TYPE: %s", s.Sid, tag.Type)
	if tag.Subtype != "" {
		head += "  SUBTYPE: " + tag.Subtype
	}
	head += fmt.Sprintf("   CONF: %.2f", tag.Confidence)
	fmt.Fprintln(w, head)
	fmt.Fprintf(w, "Sentence: %s\n", strings.ReplaceAll(s.Text, "\n", " "))
	fmt.Fprintf(w, "Span: %s\n", spanLine(s.Tokens, tag.Start, tag.End))
	for _, h := range tag.Highlights {
		fmt.Fprintf(w, "Highlight: %s\n", spanLine(s.Tokens, h.Start, h.End))
	}
	if tag.Conditional != nil {
		m := tag.Conditional
		fmt.Fprintf(w, "Conditional: label=%s discourse=%s\n", m.Label, m.Discourse)
		fmt.Fprintf(w, "  protasis verb_index=%d mood=%s tense=%s\n", m.Protasis.VerbIndex, m.Protasis.Mood, m.Protasis.Tense)
		fmt.Fprintf(w, "  apodosis verb_index=%d mood=%s tense=%s\n", m.Apodosis.VerbIndex, m.Apodosis.Mood, m.Apodosis.Tense)
	}
	if tag.Trigger.Rule != "" {
		fmt.Fprintf(w, "Trigger: %s\n", tag.Trigger.Rule)
	}
	for _, ref := range tag.Trigger.Refs {
		if ref.Index >= 0 && ref.Index < len(s.Tokens) {
			t := s.Tokens[ref.Index]
			fmt.Fprintf(w, "  %s @ %d: %s  lemma=%s  upos=%s\n", ref.Name, ref.Index, t.Text, t.Lemma, t.Upos)
		}
	}
	if withTokens {
		fmt.Fprintln(w, "Tokens:")
		for _, line := range render.TokenLines(s.Tokens) {
			fmt.Fprintf(w, "  %s\n", line)
		}
	}
}

// spanLine clamps [a,b] to the sentence and joins the covered tokens.
func spanLine(tokens []sent.Token, a, b int) string {
	a = max(a, 0)
	b = min(b, len(tokens)-1)
	if a > b {
		return fmt.Sprintf("[%d:%d]", a, b)
	}
	parts := make([]string, 0, b-a+1)
	for _, t := range tokens[a : b+1] {
		parts = append(parts, t.Text)
	}
	return fmt.Sprintf("[%d:%d] %s", a, b, strings.Join(parts, " "))
}

// Package render prints tagged sentences for the terminal: the sentence
// text with construction spans colored, plus optional per-token detail
// lines.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cours-de-latin/constructio/construct"

	sent "github.com/cours-de-latin/constructio/sentence"
)

var (
	Black   = "\033[1;30m"
	Red     = "\033[1;31m"
	Green   = "\033[1;32m"
	Yellow  = "\033[0;33m"
	Purple  = "\033[1;34m"
	Magenta = "\033[1;35m"
	Teal    = "\033[1;36m"
	Gray    = "\033[0;37m"
	White   = "\033[1;37m"
	Off     = "\033[0m"

	Yellow256 = "\033[1;38;5;130m"
	Grey256   = "\033[1;38;5;145m"
	Green256  = "\033[1;38;5;70m"
)

// typeColors assigns each construction family a stable color; unknown
// types fall back to green.
var typeColors = map[string]string{
	construct.TypeCumClause:           Teal,
	construct.TypeAblAbs:              Magenta,
	construct.TypeIndirectStatement:   Yellow256,
	construct.TypePurposeClause:       Green256,
	construct.TypeResultClause:        Green256,
	construct.TypeSubjunctiveRelative: Purple,
	construct.TypeRelativeClause:      Purple,
	construct.TypeGerund:              Red,
	construct.TypeGerundive:           Red,
	construct.TypeGerundGerundiveFlip: Red,
	construct.TypeConditionalProtasis: Yellow,
	construct.TypeConditionalApodosis: Yellow,
}

// Renderer prints sentences and tags.
type Renderer struct {
	HasColor bool

	// HasDetail adds the per-token lines under each sentence.
	HasDetail bool

	W io.Writer
}

func NewRenderer() *Renderer {
	return &Renderer{HasColor: true, W: os.Stdout}
}

// NextDetail toggles the token detail lines.
func (r *Renderer) NextDetail() {
	r.HasDetail = !r.HasDetail
}

// Sentence prints one tagged sentence: the sid, the sentence with
// highlighted tokens, one line per tag, and the token detail block when
// enabled.
func (r *Renderer) Sentence(s sent.Sentence, tags []construct.Tag) {
	fmt.Fprintf(r.W, "%s %s\n", r.sid(s.Sid), r.SentenceString(s.Tokens, tags))
	for _, tag := range tags {
		fmt.Fprintf(r.W, "    %s\n", r.TagString(tag))
	}
	if r.HasDetail {
		for _, line := range TokenLines(s.Tokens) {
			fmt.Fprintf(r.W, "    %s\n", line)
		}
	}
}

// SentenceString joins the tokens, coloring every token covered by a
// highlight span (or, for tags without highlights, by the tag span).
func (r *Renderer) SentenceString(tokens []sent.Token, tags []construct.Tag) string {
	covered := coveredIndices(tags, len(tokens))

	parts := make([]string, 0, len(tokens))
	for i, tok := range tokens {
		text := tok.Text
		if r.HasColor {
			if c, ok := covered[i]; ok {
				text = c + text + Off
			}
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, " ")
}

// TagString formats one tag as a single line:
// cum_clause [0,4] 0.90 cum+subj.
func (r *Renderer) TagString(tag construct.Tag) string {
	name := tag.Type
	if tag.Subtype != "" {
		name += "/" + tag.Subtype
	}
	if r.HasColor {
		color := typeColors[tag.Type]
		if color == "" {
			color = Green
		}
		name = color + name + Off
	}
	line := fmt.Sprintf("%s [%d,%d] %.2f %s", name, tag.Start, tag.End, tag.Confidence, tag.Trigger.Rule)
	if tag.Conditional != nil {
		line += fmt.Sprintf(" (%s, %s)", tag.Conditional.Label, tag.Conditional.Discourse)
	}
	return line
}

// TokenLines formats each token as
// i:text<lemma>/upos[feats] deprel->head.
func TokenLines(tokens []sent.Token) []string {
	lines := make([]string, 0, len(tokens))
	for i, t := range tokens {
		lines = append(lines, fmt.Sprintf("%d:%s<%s>/%s[%s] %s->%d",
			i, t.Text, t.Lemma, t.Upos, t.Feats.String(), t.Deprel, t.Head))
	}
	return lines
}

func (r *Renderer) sid(sid string) string {
	if r.HasColor {
		return Grey256 + sid + Off
	}
	return sid
}

// coveredIndices maps token index to the color of the first tag covering
// it. Highlight spans win over the full tag span.
func coveredIndices(tags []construct.Tag, n int) map[int]string {
	covered := map[int]string{}

	mark := func(start, end int, color string) {
		for i := start; i <= end && i < n; i++ {
			if i < 0 {
				continue
			}
			if _, ok := covered[i]; !ok {
				covered[i] = color
			}
		}
	}

	for _, tag := range tags {
		color := typeColors[tag.Type]
		if color == "" {
			color = Green
		}
		if len(tag.Highlights) > 0 {
			for _, h := range tag.Highlights {
				mark(h.Start, h.End, color)
			}
			continue
		}
		mark(tag.Start, tag.End, color)
	}
	return covered
}

// Package query is the interactive prompt over a tagged corpus. An
// input line is resolved in order: sentence id ("1.12"), construction
// type ("cum_clause"), then lemma lookup.
package query

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/c-bata/go-prompt"

	"github.com/cours-de-latin/constructio/construct"
	"github.com/cours-de-latin/constructio/render"
	"github.com/cours-de-latin/constructio/storage"
)

// lemmaLimit caps lemma search results so a frequent word does not
// flood the terminal.
const lemmaLimit = 20

type Handler struct {
	Corpus   storage.CorpusReader
	Tags     storage.TagReader
	Renderer *render.Renderer
}

func NewHandler(cr storage.CorpusReader, tr storage.TagReader, r *render.Renderer) *Handler {
	return &Handler{
		Corpus:   cr,
		Tags:     tr,
		Renderer: r,
	}
}

func (h *Handler) Run() error {

	fmt.Println("🔑 sid, construction type or lemma. Ctrl+F: toggle token detail, quit to exit")

	history := []string{}

	for {

		in := prompt.Input("      🏛  ", h.completer(),
			prompt.OptionTitle("constructio query"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionMaxSuggestion(12),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionHistory(history),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlF,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.NextDetail()
					fmt.Println("Token detail set to: " + fmt.Sprintf("%t", h.Renderer.HasDetail))
				}}),
		)

		if in == "quit" {
			return nil
		}

		history = append(history, in)

		if err := h.dispatch(in); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}
}

// dispatch resolves one input line and renders the matching sentences.
func (h *Handler) dispatch(in string) error {
	in = strings.TrimSpace(in)
	if in == "" {
		return errors.New("empty query")
	}

	if isSid(in) {
		return h.bySid(in)
	}

	for _, t := range construct.Types() {
		if t == in {
			return h.byType(in)
		}
	}

	return h.byLemma(in)
}

func (h *Handler) bySid(sid string) error {
	s, err := h.Corpus.Sentence(sid)
	if err != nil {
		return err
	}
	tags, err := h.Tags.Tags(sid)
	if err != nil {
		tags = nil
	}
	h.Renderer.Sentence(s, tags)
	return nil
}

func (h *Handler) byType(typ string) error {
	all, err := h.Tags.All()
	if err != nil {
		return err
	}

	sids := make([]string, 0, len(all))
	for sid, tags := range all {
		for _, tag := range tags {
			if tag.Type == typ {
				sids = append(sids, sid)
				break
			}
		}
	}
	if len(sids) == 0 {
		return fmt.Errorf("no sentences tagged %s", typ)
	}
	sort.Slice(sids, func(i, j int) bool { return sidLess(sids[i], sids[j]) })

	for _, sid := range sids {
		s, err := h.Corpus.Sentence(sid)
		if err != nil {
			continue
		}
		matching := make([]construct.Tag, 0, len(all[sid]))
		for _, tag := range all[sid] {
			if tag.Type == typ {
				matching = append(matching, tag)
			}
		}
		h.Renderer.Sentence(s, matching)
	}
	return nil
}

func (h *Handler) byLemma(lemma string) error {
	sentences, err := h.Corpus.FindByLemma(lemma, lemmaLimit)
	if err != nil {
		return err
	}
	if len(sentences) == 0 {
		return fmt.Errorf("no sentences with lemma %q", lemma)
	}
	for _, s := range sentences {
		tags, err := h.Tags.Tags(s.Sid)
		if err != nil {
			tags = nil
		}
		h.Renderer.Sentence(s, tags)
	}
	return nil
}

func (h *Handler) completer() func(in prompt.Document) []prompt.Suggest {
	return func(in prompt.Document) []prompt.Suggest {

		s := []prompt.Suggest{}
		befCursor := in.TextBeforeCursor()

		if "" == befCursor {
			return s
		}

		for _, t := range construct.Types() {
			if strings.HasPrefix(t, befCursor) {
				s = append(s, prompt.Suggest{Text: t, Description: "construction type"})
			}
		}

		// Chapter prefixes complete to "chapter." so sids are easy to
		// reach without remembering the index range.
		chapters, err := h.Corpus.Chapters()
		if err == nil {
			for _, ch := range chapters {
				if strings.HasPrefix(ch+".", befCursor) {
					s = append(s, prompt.Suggest{Text: ch + ".", Description: "chapter " + ch})
				}
			}
		}

		return s
	}
}

// isSid reports whether in looks like a "chapter.index" sentence id.
func isSid(in string) bool {
	dot := strings.IndexByte(in, '.')
	if dot <= 0 || dot == len(in)-1 {
		return false
	}
	return allDigits(in[:dot]) && allDigits(in[dot+1:])
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// sidLess orders sids numerically by chapter then index.
func sidLess(a, b string) bool {
	ac, ai := splitSid(a)
	bc, bi := splitSid(b)
	if ac != bc {
		return ac < bc
	}
	return ai < bi
}

func splitSid(sid string) (int, int) {
	var c, i int
	fmt.Sscanf(sid, "%d.%d", &c, &i)
	return c, i
}

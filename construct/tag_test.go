package construct

import (
	"encoding/json"
	"testing"
)

func TestTriggerJSONFlat(t *testing.T) {
	tr := NewTrigger("cum+subj", Ref{"cum_index", 0}, Ref{"verb_index", 4})

	data, err := json.Marshal(tr)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		t.Fatalf("unmarshal into map: %v", err)
	}
	if obj["rule"] != "cum+subj" {
		t.Errorf("rule = %v", obj["rule"])
	}
	if obj["cum_index"] != float64(0) || obj["verb_index"] != float64(4) {
		t.Errorf("refs flattened wrong: %v", obj)
	}

	var back Trigger
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Rule != "cum+subj" {
		t.Errorf("rule = %q", back.Rule)
	}
	if vi, ok := back.Get("verb_index"); !ok || vi != 4 {
		t.Errorf("verb_index = %d, %v", vi, ok)
	}
}

func TestSpanJSON(t *testing.T) {
	data, err := json.Marshal(Span{Start: 2, End: 5})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "[2,5]" {
		t.Errorf("span = %s", data)
	}

	var s Span
	if err := json.Unmarshal([]byte("[3,7]"), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if s.Start != 3 || s.End != 7 {
		t.Errorf("span = %+v", s)
	}
}

func TestTagValid(t *testing.T) {
	good := Tag{Start: 0, End: 4, Highlights: []Span{{1, 1}, {3, 4}}}
	if !good.Valid(5) {
		t.Error("in-bounds tag should be valid")
	}
	if good.Valid(4) {
		t.Error("end past the sentence must be invalid")
	}

	inverted := Tag{Start: 3, End: 1}
	if inverted.Valid(5) {
		t.Error("inverted span must be invalid")
	}

	badHighlight := Tag{Start: 0, End: 4, Highlights: []Span{{2, 9}}}
	if badHighlight.Valid(5) {
		t.Error("out-of-bounds highlight must be invalid")
	}
}

func TestDedup(t *testing.T) {
	a := Tag{Type: TypeCumClause, Start: 0, End: 4,
		Trigger: NewTrigger("cum+subj", Ref{"cum_index", 0}, Ref{"verb_index", 4})}
	b := a // structural duplicate
	c := Tag{Type: TypeCumClause, Start: 0, End: 4,
		Trigger: NewTrigger("cum+subj", Ref{"cum_index", 0}, Ref{"verb_index", 2})}

	out := Dedup([]Tag{a, b, c})
	if len(out) != 2 {
		t.Fatalf("got %d tags, want 2", len(out))
	}
	if vi, _ := out[0].Trigger.Get("verb_index"); vi != 4 {
		t.Error("first seen must win")
	}

	again := Dedup(out)
	if len(again) != len(out) {
		t.Errorf("dedup is not idempotent: %d then %d", len(out), len(again))
	}
}

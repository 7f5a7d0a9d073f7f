package sentence

import (
	"encoding/json"
	"sort"
	"strings"
)

// Feats is a morphological feature bag (Case, Gender, Number, Mood, Tense,
// Aspect, VerbForm, Voice, PronType, ...).
//
// Upstream pipelines encode feats either as a UD pipe string
// ("Case=Abl|Gender=Fem|Number=Sing"), as a JSON object, or as null.
// All three unmarshal into the same map; a nil Feats is valid and means
// everything is unspecified.
type Feats map[string]string

// Get returns the value for key. The second return is false when the bag
// is nil or the key is absent. It never fails.
func (f Feats) Get(key string) (string, bool) {
	if f == nil {
		return "", false
	}
	v, ok := f[key]
	return v, ok
}

// Has reports whether key is present with exactly value.
func (f Feats) Has(key, value string) bool {
	v, ok := f.Get(key)
	return ok && v == value
}

// UnmarshalJSON accepts null, a pipe-separated string or an object.
// Anything else (a number, an array) yields an empty bag rather than an
// error: malformed upstream annotation means unspecified, not failure.
func (f *Feats) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*f = nil
		return nil
	}

	if strings.HasPrefix(trimmed, "{") {
		m := map[string]string{}
		if err := json.Unmarshal(data, &m); err != nil {
			*f = nil
			return nil
		}
		*f = m
		return nil
	}

	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*f = nil
			return nil
		}
		*f = ParseFeats(s)
		return nil
	}

	*f = nil
	return nil
}

// MarshalJSON writes the bag back in the UD pipe-string form, keys sorted,
// so round-tripped corpora stay diffable.
func (f Feats) MarshalJSON() ([]byte, error) {
	if len(f) == 0 {
		return []byte("null"), nil
	}
	return json.Marshal(f.String())
}

// ParseFeats parses a UD pipe string. Parts without "=" are skipped.
func ParseFeats(s string) Feats {
	if s == "" {
		return nil
	}
	m := Feats{}
	for _, part := range strings.Split(s, "|") {
		k, v, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		m[k] = v
	}
	if len(m) == 0 {
		return nil
	}
	return m
}

func (f Feats) String() string {
	if len(f) == 0 {
		return ""
	}
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+f[k])
	}
	return strings.Join(parts, "|")
}

// AgreeGenderNumber reports whether two tokens agree in gender and number
// when both sides specify the feature. A missing value on either side
// counts as agreement here; detectors that need strict agreement check
// presence themselves.
func AgreeGenderNumber(a, b Token) bool {
	ga, gaOk := a.Feats.Get("Gender")
	gb, gbOk := b.Feats.Get("Gender")
	if gaOk && gbOk && ga != gb {
		return false
	}
	na, naOk := a.Feats.Get("Number")
	nb, nbOk := b.Feats.Get("Number")
	if naOk && nbOk && na != nb {
		return false
	}
	return true
}

// AgreeCaseNumberGender is AgreeGenderNumber plus the same soft check on
// Case.
func AgreeCaseNumberGender(a, b Token) bool {
	ca, caOk := a.Feats.Get("Case")
	cb, cbOk := b.Feats.Get("Case")
	if caOk && cbOk && ca != cb {
		return false
	}
	return AgreeGenderNumber(a, b)
}

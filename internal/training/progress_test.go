package training

import (
	"encoding/json"
	"testing"
)

// TestKeyRoundTrip verifies both key levels survive String → ParseKey.
func TestKeyRoundTrip(t *testing.T) {
	k := Key{Week: 3, Day: 1, Exercise: "ej-abc"}
	if k.String() != "3|1|ej-abc" {
		t.Errorf("key string = %q", k.String())
	}

	parsed, _, isSet, err := ParseKey("3|1|ej-abc")
	if err != nil || isSet {
		t.Fatalf("ParseKey: err=%v isSet=%v", err, isSet)
	}
	if parsed != k {
		t.Errorf("parsed = %+v, want %+v", parsed, k)
	}

	sk := k.Set(2)
	if sk.String() != "3|1|ej-abc|2" {
		t.Errorf("set key string = %q", sk.String())
	}
	_, parsedSet, isSet, err := ParseKey("3|1|ej-abc|2")
	if err != nil || !isSet {
		t.Fatalf("ParseKey set: err=%v isSet=%v", err, isSet)
	}
	if parsedSet != sk {
		t.Errorf("parsed set = %+v, want %+v", parsedSet, sk)
	}
}

// TestParseKeyMalformed verifies malformed strings error instead of
// producing a half-filled key.
func TestParseKeyMalformed(t *testing.T) {
	for _, s := range []string{"", "1", "1|2", "x|2|ej", "1|y|ej", "1|2|ej|z", "1|2|ej|3|4"} {
		if _, _, _, err := ParseKey(s); err == nil {
			t.Errorf("ParseKey(%q): expected error", s)
		}
	}
}

// TestStatusCanonical verifies the legacy OJ spelling reads back as OE.
func TestStatusCanonical(t *testing.T) {
	p := NewProgress()
	k := Key{Week: 1, Day: 0, Exercise: "ej-x"}
	p.SetStatus(k, "OJ")
	if got := p.Status(k); got != StatusSubstituted {
		t.Errorf("status = %q, want OE", got)
	}
}

// TestSetFieldMerge verifies recording reps then peso keeps both.
func TestSetFieldMerge(t *testing.T) {
	p := NewProgress()
	k := Key{Week: 1, Day: 0, Exercise: "ej-x"}.Set(0)
	p.SetField(k, FieldReps, "8")
	p.SetField(k, FieldPeso, "62.5")
	rec := p.Record(k)
	if rec.Reps != "8" || rec.Peso != "62.5" {
		t.Errorf("record = %+v", rec)
	}
}

// TestProgressJSONRoundTrip verifies the legacy flat encoding survives
// a round trip: status strings for exercise keys, objects for set keys.
func TestProgressJSONRoundTrip(t *testing.T) {
	p := NewProgress()
	k := Key{Week: 2, Day: 1, Exercise: "ej-a"}
	p.SetStatus(k, StatusCompleted)
	p.SetField(k.Set(0), FieldReps, "10")
	p.SetField(k.Set(0), FieldPeso, "40")

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	// The wire form is a flat object keyed by delimited strings.
	var flat map[string]json.RawMessage
	if err := json.Unmarshal(data, &flat); err != nil {
		t.Fatalf("wire form not a flat object: %v", err)
	}
	if string(flat["2|1|ej-a"]) != `"C"` {
		t.Errorf("status wire value = %s", flat["2|1|ej-a"])
	}

	back := NewProgress()
	if err := json.Unmarshal(data, back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Status(k) != StatusCompleted {
		t.Errorf("status lost in round trip")
	}
	if rec := back.Record(k.Set(0)); rec.Reps != "10" || rec.Peso != "40" {
		t.Errorf("set record lost: %+v", rec)
	}
}

// TestProgressJSONLegacyInput verifies a stored blob with an OJ status
// and stray malformed keys loads cleanly.
func TestProgressJSONLegacyInput(t *testing.T) {
	blob := `{
		"1|0|ej-a": "OJ",
		"1|0|ej-a|0": {"reps":"12","peso":"20"},
		"not-a-key": "junk",
		"1|0|ej-b": "weird",
		"1|x|ej-c|0": {"reps":"1"}
	}`
	p := NewProgress()
	if err := json.Unmarshal([]byte(blob), p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := p.Status(Key{Week: 1, Day: 0, Exercise: "ej-a"}); got != StatusSubstituted {
		t.Errorf("OJ status = %q, want OE", got)
	}
	if rec := p.Record(Key{Week: 1, Day: 0, Exercise: "ej-a"}.Set(0)); rec.Reps != "12" {
		t.Errorf("set record = %+v", rec)
	}
	// Stray entries are dropped, not fatal.
	if p.Len() != 2 {
		t.Errorf("len = %d, want 2", p.Len())
	}
}

// TestNotesJSONRoundTrip verifies the note map's flat encoding.
func TestNotesJSONRoundTrip(t *testing.T) {
	n := Notes{
		Key{Week: 1, Day: 0, Exercise: "ej-a"}.Set(1): {Value: NoteCustom, Text: "hombro molesto"},
	}
	data, err := json.Marshal(n)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Notes
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	note := back[Key{Week: 1, Day: 0, Exercise: "ej-a"}.Set(1)]
	if note.Value != NoteCustom || note.Text != "hombro molesto" {
		t.Errorf("note = %+v", note)
	}
}

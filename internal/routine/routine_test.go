package routine

import (
	"encoding/json"
	"reflect"
	"testing"
)

// TestMarshalPreservesDayOrder verifies the JSON object keys come out in
// routine order, not sorted.
func TestMarshalPreservesDayOrder(t *testing.T) {
	r := Routine{
		{Key: "day2"},
		{Key: "day10"},
		{Key: "day1"},
	}
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"day2":[],"day10":[],"day1":[]}`
	if string(data) != want {
		t.Errorf("marshal = %s, want %s", data, want)
	}
}

// TestUnmarshalPreservesDayOrder verifies document key order survives a
// decode. A map-based decode would shuffle the days.
func TestUnmarshalPreservesDayOrder(t *testing.T) {
	doc := `{"day3":[],"day1":[],"day2":[]}`
	var r Routine
	if err := json.Unmarshal([]byte(doc), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	got := r.Keys()
	want := []string{"day3", "day1", "day2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("keys = %v, want %v", got, want)
	}
}

// TestRoundTrip verifies a full document survives marshal → unmarshal
// unchanged, including set fields and catalog links.
func TestRoundTrip(t *testing.T) {
	dbID := "cat-42"
	r := Routine{
		{Key: "day1", Exercises: []Exercise{
			{
				ID: "ej-a", Musculo: "PECTORAL", Nombre: "Press banca",
				DBID: &dbID, Extra: "Ninguno",
				Series: []Set{
					{ID: "s-ej-a-0-x", RepMin: "6", RepMax: "8", Extra: "Ninguno"},
					{ID: "s-ej-a-1-y", RepMin: "fallo", RepMax: "fallo", Extra: "Mio Reps", Nota: "controlar bajada"},
				},
			},
		}},
		{Key: "day2"},
	}

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Routine
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	// Marshal normalizes nil exercise lists to empty; compare re-marshaled.
	data2, err := json.Marshal(back)
	if err != nil {
		t.Fatalf("re-marshal: %v", err)
	}
	if string(data) != string(data2) {
		t.Errorf("round trip changed document:\n %s\n %s", data, data2)
	}
}

// TestUnmarshalMalformedDayValue verifies a day whose value is not an
// exercise array decodes to an empty day instead of failing.
func TestUnmarshalMalformedDayValue(t *testing.T) {
	doc := `{"day1":"garbage","day2":[{"id":"ej-a"}]}`
	var r Routine
	if err := json.Unmarshal([]byte(doc), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(r) != 2 {
		t.Fatalf("len = %d, want 2", len(r))
	}
	if len(r[0].Exercises) != 0 {
		t.Errorf("day1 exercises = %d, want 0", len(r[0].Exercises))
	}
	if len(r[1].Exercises) != 1 || r[1].Exercises[0].ID != "ej-a" {
		t.Errorf("day2 exercises = %+v", r[1].Exercises)
	}
}

// TestUnmarshalNull verifies a JSON null decodes to a nil routine.
func TestUnmarshalNull(t *testing.T) {
	var r Routine
	if err := json.Unmarshal([]byte(`null`), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if r != nil {
		t.Errorf("routine = %v, want nil", r)
	}
}

// TestCloneIndependence verifies that editing a clone never reaches the
// original — the mutation API's purity rests on this.
func TestCloneIndependence(t *testing.T) {
	r := Normalize(Routine{
		{Key: "x", Exercises: []Exercise{{Nombre: "Sentadilla", Series: []Set{{}}}}},
	})
	c := r.Clone()
	c[0].Exercises[0].Nombre = "changed"
	c[0].Exercises[0].Series[0].RepMin = "99"

	if r[0].Exercises[0].Nombre != "Sentadilla" {
		t.Error("clone shares exercise backing array with original")
	}
	if r[0].Exercises[0].Series[0].RepMin != "6" {
		t.Error("clone shares series backing array with original")
	}
}

// TestIsFallo verifies the failure sentinel is matched case-insensitively
// on either bound.
func TestIsFallo(t *testing.T) {
	tests := []struct {
		min, max string
		want     bool
	}{
		{"6", "8", false},
		{"fallo", "8", true},
		{"6", "Fallo", true},
		{"FALLO", "FALLO", true},
		{" fallo ", "8", true},
		{"", "", false},
	}
	for _, tt := range tests {
		s := Set{RepMin: tt.min, RepMax: tt.max}
		if got := s.IsFallo(); got != tt.want {
			t.Errorf("IsFallo(%q,%q) = %v, want %v", tt.min, tt.max, got, tt.want)
		}
	}
}

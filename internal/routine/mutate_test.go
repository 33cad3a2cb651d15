package routine

import (
	"reflect"
	"testing"
)

// two-day fixture with one exercise on day1.
func fixture(t *testing.T) Routine {
	t.Helper()
	return Normalize(Routine{
		{Key: "a", Exercises: []Exercise{
			{ID: "ej-1", Nombre: "Press banca", Musculo: "PECTORAL",
				Series: []Set{{ID: "s-1"}, {ID: "s-2"}}},
		}},
		{Key: "b"},
	})
}

// TestMoveDay verifies neighbor swap and boundary no-ops.
func TestMoveDay(t *testing.T) {
	r := fixture(t)

	down := MoveDay(r, "day1", +1)
	if down[0].Key != "day2" || down[1].Key != "day1" {
		t.Errorf("after move: %v", down.Keys())
	}
	// Original untouched.
	if r[0].Key != "day1" {
		t.Error("MoveDay mutated its input")
	}

	if got := MoveDay(r, "day1", -1); !reflect.DeepEqual(got, r) {
		t.Error("move up at top boundary should be a no-op")
	}
	if got := MoveDay(r, "day2", +1); !reflect.DeepEqual(got, r) {
		t.Error("move down at bottom boundary should be a no-op")
	}
	if got := MoveDay(r, "day9", +1); !reflect.DeepEqual(got, r) {
		t.Error("missing key should be a no-op")
	}
}

// TestInsertDayAfter verifies positional insert with max-suffix+1 key
// assignment — deliberately not positional renumbering.
func TestInsertDayAfter(t *testing.T) {
	r := fixture(t)
	out, key := InsertDayAfter(r, "day1")
	if key != "day3" {
		t.Errorf("new key = %q, want day3", key)
	}
	if got := out.Keys(); !reflect.DeepEqual(got, []string{"day1", "day3", "day2"}) {
		t.Errorf("keys = %v, want [day1 day3 day2]", got)
	}

	// After a delete, the next key still scans the surviving maximum.
	r2 := DeleteDay(out, "day2")
	r3, key3 := InsertDayAfter(r2, "day3")
	if key3 != "day4" {
		t.Errorf("new key = %q, want day4", key3)
	}
	if got := r3.Keys(); !reflect.DeepEqual(got, []string{"day1", "day3", "day4"}) {
		t.Errorf("keys = %v", got)
	}

	// Unknown anchor appends at the end.
	out2, _ := InsertDayAfter(r, "nope")
	if got := out2.Keys(); !reflect.DeepEqual(got, []string{"day1", "day2", "day3"}) {
		t.Errorf("keys = %v, want append at end", got)
	}
}

// TestDeleteDay verifies removal and the missing-key no-op.
func TestDeleteDay(t *testing.T) {
	r := fixture(t)
	out := DeleteDay(r, "day1")
	if got := out.Keys(); !reflect.DeepEqual(got, []string{"day2"}) {
		t.Errorf("keys = %v, want [day2]", got)
	}
	if got := DeleteDay(r, "day9"); !reflect.DeepEqual(got, r) {
		t.Error("missing key should be a no-op")
	}
}

// TestIDPermanence verifies a freshly added exercise keeps its ID across
// any sequence of moves and stays reachable for field updates.
func TestIDPermanence(t *testing.T) {
	r := fixture(t)
	r, newID := AddExerciseAfter(r, "day1", "")
	if newID == "" {
		t.Fatal("no ID returned")
	}

	r = MoveExercise(r, "day1", newID, -1)
	r = MoveExercise(r, "day1", newID, +1)
	r = MoveExercise(r, "day1", newID, +1) // boundary no-op

	r = UpdateExerciseField(r, "day1", newID, "nombre", "Dominadas")
	ex, ok := r.FindExercise("day1", newID)
	if !ok {
		t.Fatalf("exercise %q not reachable after moves", newID)
	}
	if ex.Nombre != "Dominadas" {
		t.Errorf("nombre = %q, want Dominadas", ex.Nombre)
	}
}

// TestAddExerciseDefaults verifies a new exercise carries three default
// sets with the 6–8 prescription.
func TestAddExerciseDefaults(t *testing.T) {
	r := fixture(t)
	r, id := AddExerciseAtEnd(r, "day2")
	ex, ok := r.FindExercise("day2", id)
	if !ok {
		t.Fatal("new exercise not found")
	}
	if len(ex.Series) != 3 {
		t.Fatalf("series = %d, want 3", len(ex.Series))
	}
	for i, s := range ex.Series {
		if s.RepMin != "6" || s.RepMax != "8" || s.Extra != "Ninguno" {
			t.Errorf("set %d = %q/%q/%q, want 6/8/Ninguno", i, s.RepMin, s.RepMax, s.Extra)
		}
		if s.ID == "" {
			t.Errorf("set %d has no ID", i)
		}
	}
}

// TestEditCycle walks a full edit session: empty routine, add exercise,
// update one set's repMin past repMax — permitted, not validated.
func TestEditCycle(t *testing.T) {
	r := Normalize(nil)
	r, exID := AddExerciseAtEnd(r, "day1")
	serieID := r.Exercises("day1")[0].Series[0].ID

	r = UpdateSerieField(r, "day1", exID, serieID, "repMin", "10")
	s := r.Exercises("day1")[0].Series[0]
	if s.RepMin != "10" || s.RepMax != "8" {
		t.Errorf("set = %q/%q, want 10/8 (repMin > repMax is permitted)", s.RepMin, s.RepMax)
	}
}

// TestMutationNoOpOnMissingKey verifies every addressing miss returns a
// routine deep-equal to the input.
func TestMutationNoOpOnMissingKey(t *testing.T) {
	r := fixture(t)
	ops := map[string]Routine{
		"deleteSerie missing exercise": DeleteSerie(r, "day1", "ej-nope", "s-1"),
		"deleteSerie missing serie":    DeleteSerie(r, "day1", "ej-1", "s-nope"),
		"deleteSerie missing day":      DeleteSerie(r, "day9", "ej-1", "s-1"),
		"updateSerie missing":          UpdateSerieField(r, "day1", "ej-1", "s-nope", "repMin", "4"),
		"updateExercise missing":       UpdateExerciseField(r, "day1", "ej-nope", "nombre", "x"),
		"moveExercise missing":         MoveExercise(r, "day1", "ej-nope", +1),
		"deleteExercise missing":       DeleteExercise(r, "day2", "ej-1"),
		"toggleExtra missing":          ToggleSerieExtra(r, "day1", "ej-1", "s-nope"),
	}
	for name, got := range ops {
		if !reflect.DeepEqual(got, r) {
			t.Errorf("%s: routine changed", name)
		}
	}
}

// TestToggleSerieExtra verifies the fixed four-value cycle wraps.
func TestToggleSerieExtra(t *testing.T) {
	r := fixture(t)
	want := []string{"Descendentes", "Mio Reps", "Parciales", "Ninguno", "Descendentes"}
	for i, w := range want {
		r = ToggleSerieExtra(r, "day1", "ej-1", "s-1")
		got := r.Exercises("day1")[0].Series[0].Extra
		if got != w {
			t.Fatalf("toggle %d = %q, want %q", i+1, got, w)
		}
	}
}

// TestAddDeleteSerie verifies append with a fresh ID and removal by ID.
func TestAddDeleteSerie(t *testing.T) {
	r := fixture(t)
	r, sid := AddSerie(r, "day1", "ej-1")
	if sid == "" {
		t.Fatal("no set ID returned")
	}
	if n := len(r.Exercises("day1")[0].Series); n != 3 {
		t.Fatalf("series = %d, want 3", n)
	}
	r = DeleteSerie(r, "day1", "ej-1", sid)
	if n := len(r.Exercises("day1")[0].Series); n != 2 {
		t.Fatalf("series after delete = %d, want 2", n)
	}
}

// TestUpdateDBIDField verifies catalog link set and clear through the
// field-addressed update.
func TestUpdateDBIDField(t *testing.T) {
	r := fixture(t)
	r = UpdateExerciseField(r, "day1", "ej-1", "dbId", "cat-7")
	ex, _ := r.FindExercise("day1", "ej-1")
	if ex.DBID == nil || *ex.DBID != "cat-7" {
		t.Fatalf("dbId = %v, want cat-7", ex.DBID)
	}
	r = UpdateExerciseField(r, "day1", "ej-1", "dbId", "")
	ex, _ = r.FindExercise("day1", "ej-1")
	if ex.DBID != nil {
		t.Errorf("dbId = %v, want nil after clear", ex.DBID)
	}
}

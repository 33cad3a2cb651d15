package export

import (
	"strings"
	"testing"

	"github.com/meltforce/repbook/internal/routine"
	"github.com/meltforce/repbook/internal/training"
)

// TestWeekCSVLayout verifies the header row, set rows, and day
// separator for a two-day routine.
func TestWeekCSVLayout(t *testing.T) {
	r := routine.Routine{
		{Key: "day1", Exercises: []routine.Exercise{
			{ID: "ej-a", Musculo: "Pecho", Nombre: "Press banca"},
		}},
		{Key: "day2", Exercises: []routine.Exercise{
			{ID: "ej-b", Musculo: "Espalda", Nombre: "Remo"},
		}},
	}

	p := training.NewProgress()
	slot := training.Key{Week: 3, Day: 0, Exercise: "ej-a"}
	p.SetField(slot.Set(0), training.FieldReps, "10")
	p.SetField(slot.Set(0), training.FieldPeso, "80")
	p.SetField(slot.Set(2), training.FieldReps, "8")

	var buf strings.Builder
	if err := WeekCSV(&buf, r, p, 3); err != nil {
		t.Fatalf("WeekCSV: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	// 1 header + 5 sets per exercise, one blank separator between days.
	if len(lines) != 13 {
		t.Fatalf("got %d lines, want 13:\n%s", len(lines), buf.String())
	}

	if lines[0] != "Pecho - Press banca,REPS,CARGA" {
		t.Fatalf("header = %q", lines[0])
	}
	if lines[1] != ",10,80" {
		t.Fatalf("first set row = %q", lines[1])
	}
	if lines[2] != ",," {
		t.Fatalf("unrecorded set row = %q", lines[2])
	}
	if lines[3] != ",8," {
		t.Fatalf("third set row = %q", lines[3])
	}
	if lines[6] != "" {
		t.Fatalf("day separator = %q", lines[6])
	}
	if lines[7] != "Espalda - Remo,REPS,CARGA" {
		t.Fatalf("second day header = %q", lines[7])
	}
}

// TestWeekCSVOtherWeekInvisible verifies records from other weeks do
// not leak into the export.
func TestWeekCSVOtherWeekInvisible(t *testing.T) {
	r := routine.Routine{
		{Key: "day1", Exercises: []routine.Exercise{
			{ID: "ej-a", Musculo: "Pecho", Nombre: "Press"},
		}},
	}

	p := training.NewProgress()
	p.SetField(training.Key{Week: 2, Day: 0, Exercise: "ej-a"}.Set(0), training.FieldReps, "12")

	var buf strings.Builder
	if err := WeekCSV(&buf, r, p, 3); err != nil {
		t.Fatalf("WeekCSV: %v", err)
	}
	if strings.Contains(buf.String(), "12") {
		t.Fatalf("week 2 data leaked into week 3 export:\n%s", buf.String())
	}
}

// TestWeekFilename verifies the filename convention.
func TestWeekFilename(t *testing.T) {
	if got := WeekFilename(7); got != "semana-7.csv" {
		t.Fatalf("WeekFilename = %q", got)
	}
}

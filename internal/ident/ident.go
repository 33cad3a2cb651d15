// Package ident generates the short string IDs used to address days,
// exercises, and sets within a routine document. IDs combine a random
// base-36 fragment with a time-based base-36 fragment; collisions are
// accepted as negligible for single-device editing.
package ident

import (
	"math/rand/v2"
	"strconv"
	"time"
)

// now is swappable for tests.
var now = time.Now

// New returns a fresh short ID. Call once per new entity; never reuse.
func New() string {
	r := strconv.FormatUint(rand.Uint64(), 36)
	if len(r) > 6 {
		r = r[:6]
	}
	t := strconv.FormatInt(now().UnixMilli(), 36)
	if len(t) > 4 {
		t = t[len(t)-4:]
	}
	return r + t
}

// Exercise returns a new exercise ID.
func Exercise() string {
	return "ej-" + New()
}

// Set returns a new set ID tied to its parent exercise and position.
// The readable prefix helps when inspecting persisted documents; the
// random suffix carries the uniqueness.
func Set(exerciseID string, pos int) string {
	return "s-" + exerciseID + "-" + strconv.Itoa(pos) + "-" + New()
}

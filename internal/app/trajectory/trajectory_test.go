package trajectory

import (
	"errors"
	"math"
	"testing"

	"github.com/timf34/cpr-appropriation/internal/domain/commons"
)

func step(reward float64) Timestep {
	return Timestep{
		State:       []float64{0},
		Action:      int(commons.StandStill),
		ActionProbs: []float64{0.125, 0.125, 0.125, 0.125, 0.125, 0.125, 0.125, 0.125},
		Reward:      reward,
		NextState:   []float64{1},
	}
}

func TestAddFillsLegalActionsMask(t *testing.T) {
	tr := New()
	tr.Add(step(1))
	ts, err := tr.At(0)
	if err != nil {
		t.Fatalf("At: %v", err)
	}
	if len(ts.LegalActions) != commons.ActionCount {
		t.Fatalf("legal mask length = %d, want %d", len(ts.LegalActions), commons.ActionCount)
	}
	for i, legal := range ts.LegalActions {
		if !legal {
			t.Fatalf("action %d marked illegal by default", i)
		}
	}
}

func TestUndiscountedReturnsToGo(t *testing.T) {
	tr := New()
	for _, r := range []float64{1, -1, 1} {
		tr.Add(step(r))
	}
	toGo, err := tr.ReturnsToGo(0, 1)
	if err != nil {
		t.Fatalf("ReturnsToGo: %v", err)
	}
	want := []float64{1, 0, 1}
	for i := range want {
		if toGo[i] != want[i] {
			t.Fatalf("toGo[%d] = %v, want %v", i, toGo[i], want[i])
		}
	}
}

func TestDiscountedReturnsWeightFromEpisodeStart(t *testing.T) {
	// G[t] = sum_{k>=t} d^k r[k], with the discount indexed from the
	// episode start, matching the reference bookkeeping.
	tr := New()
	for _, r := range []float64{2, 4} {
		tr.Add(step(r))
	}
	d := 0.5
	toGo, err := tr.ReturnsToGo(0, d)
	if err != nil {
		t.Fatalf("ReturnsToGo: %v", err)
	}
	want1 := d * 4    // 2
	want0 := 2 + want1 // 4
	if math.Abs(toGo[0]-want0) > 1e-12 || math.Abs(toGo[1]-want1) > 1e-12 {
		t.Fatalf("toGo = %v, want [%v %v]", toGo, want0, want1)
	}
}

func TestFiniteHorizonTruncates(t *testing.T) {
	tr := New()
	for i := 0; i < 5; i++ {
		tr.Add(step(1))
	}
	toGo, err := tr.ReturnsToGo(3, 1)
	if err != nil {
		t.Fatalf("ReturnsToGo: %v", err)
	}
	if len(toGo) != 3 {
		t.Fatalf("horizon length = %d, want 3", len(toGo))
	}
	if toGo[0] != 3 {
		t.Fatalf("truncated return = %v, want 3", toGo[0])
	}
}

func TestReturnRejectsBadDiscount(t *testing.T) {
	tr := New()
	tr.Add(step(1))
	if _, err := tr.ReturnsToGo(0, 0); !errors.Is(err, ErrBadDiscount) {
		t.Fatalf("discount 0 gave %v", err)
	}
	if _, err := tr.ReturnsToGo(0, 1.5); !errors.Is(err, ErrBadDiscount) {
		t.Fatalf("discount 1.5 gave %v", err)
	}
}

func TestReturnOfEmptyTrajectoryIsZero(t *testing.T) {
	got, err := New().Return(0, 1)
	if err != nil {
		t.Fatalf("Return: %v", err)
	}
	if got != 0 {
		t.Fatalf("empty return = %v, want 0", got)
	}
}

func TestFlattenObservationRowMajor(t *testing.T) {
	obs := commons.Observation{
		{commons.ColorEmpty, commons.ColorResource},
		{commons.ColorAgent, commons.ColorSelf},
	}
	flat := FlattenObservation(obs)
	if len(flat) != 12 {
		t.Fatalf("flat length = %d, want 12", len(flat))
	}
	// Second cell of the first row is the resource green channel.
	if flat[4] != 0.5 {
		t.Fatalf("flat[4] = %v, want 0.5", flat[4])
	}
	// First cell of the second row is agent red.
	if flat[6] != 1 {
		t.Fatalf("flat[6] = %v, want 1", flat[6])
	}
}

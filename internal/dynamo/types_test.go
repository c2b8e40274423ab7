package dynamo

import (
	"errors"
	"math"
	"testing"
)

func TestNewBody(t *testing.T) {
	tests := []struct {
		name   string
		radius float64
		mass   float64
		valid  bool
	}{
		{"unit", 1, 1, true},
		{"small", 0.01, 0.5, true},
		{"zero radius", 0, 1, false},
		{"negative mass", 1, -1, false},
		{"NaN radius", math.NaN(), 1, false},
		{"+Inf mass", 1, math.Inf(1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewBody(Vec2{}, Vec2{}, tt.radius, tt.mass)
			if tt.valid {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if b.Radius() != tt.radius || b.Mass() != tt.mass {
					t.Errorf("got radius=%v mass=%v", b.Radius(), b.Mass())
				}
				return
			}
			if !errors.Is(err, ErrInvalidBody) {
				t.Errorf("expected ErrInvalidBody, got %v", err)
			}
		})
	}
}

func TestNewUniformBody(t *testing.T) {
	b, err := NewUniformBody(Vec2{}, Vec2{}, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(b.Mass()-4*math.Pi) > 1e-12 {
		t.Errorf("mass = %v, want %v", b.Mass(), 4*math.Pi)
	}
}

func TestWorld_Validate(t *testing.T) {
	tests := []struct {
		name  string
		world World
		valid bool
	}{
		{"no gravity", World{Bounds: Vec2{20, 20}}, true},
		{"gravity", World{Bounds: Vec2{10, 10}, Gravity: 9.81}, true},
		{"zero bounds", World{Bounds: Vec2{0, 10}}, false},
		{"negative gravity", World{Bounds: Vec2{10, 10}, Gravity: -1}, false},
		{"inf bounds", World{Bounds: Vec2{math.Inf(1), 10}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.world.Validate()
			if tt.valid && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalidWorld) {
				t.Errorf("expected ErrInvalidWorld, got %v", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	good, _ := NewBody(Vec2{}, Vec2{1, 1}, 1, 1)
	bad := good
	bad.Velocity.X = math.NaN()

	if err := Validate([]Body{good, good}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Validate(nil); err != nil {
		t.Fatalf("empty store should validate: %v", err)
	}

	err := Validate([]Body{good, bad})
	var be *BodyError
	if !errors.As(err, &be) {
		t.Fatalf("expected *BodyError, got %v", err)
	}
	if be.Index != 1 {
		t.Errorf("index = %d, want 1", be.Index)
	}
	if !errors.Is(err, ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", err)
	}

	if err := Validate([]Body{{}}); !errors.Is(err, ErrInvalidBody) {
		t.Errorf("zero body should be invalid, got %v", err)
	}
}

func TestVec2_Arithmetic(t *testing.T) {
	a := Vec2{1, 2}
	b := Vec2{3, 4}

	if got := a.Add(b); got != (Vec2{4, 6}) {
		t.Errorf("Add failed: got %v", got)
	}
	if got := b.Sub(a); got != (Vec2{2, 2}) {
		t.Errorf("Sub failed: got %v", got)
	}
	if got := a.Scale(2); got != (Vec2{2, 4}) {
		t.Errorf("Scale failed: got %v", got)
	}
	if got := a.Dot(b); got != 11 {
		t.Errorf("Dot = %v, want 11", got)
	}
	if got := b.Length(); math.Abs(got-5) > 1e-12 {
		t.Errorf("Length = %v, want 5", got)
	}
}

func TestClone(t *testing.T) {
	b, _ := NewBody(Vec2{1, 1}, Vec2{}, 1, 1)
	src := []Body{b}
	c := Clone(src)
	c[0].Position.X = 99
	if src[0].Position.X == 99 {
		t.Error("Clone did not create independent copy")
	}
}

package core

import (
	"math"
	"testing"
)

func TestVec3_Arithmetic(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(2, 3, 4)

	tests := []struct {
		name     string
		result   Vec3
		expected Vec3
	}{
		{"add", a.Add(b), NewVec3(3, 5, 7)},
		{"subtract", a.Subtract(b), NewVec3(-1, -1, -1)},
		{"negate", a.Negate(), NewVec3(-1, -2, -3)},
		{"double negate", a.Negate().Negate(), a},
		{"scalar multiply", a.Multiply(2), NewVec3(2, 4, 6)},
		{"component multiply", a.MultiplyVec(b), NewVec3(2, 6, 12)},
		{"scalar divide", NewVec3(2, 4, 6).Divide(2), a},
		{"component divide", NewVec3(2, 8, 24).DivideVec(NewVec3(2, 4, 8)), a},
		{"cross", a.Cross(b), NewVec3(-1, 2, -1)},
		{"reverse cross", b.Cross(a), NewVec3(1, -2, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.result.Equals(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, tt.result)
			}
		})
	}
}

func TestVec3_OperandsUnchanged(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, 5, 6)
	_ = a.Add(b)
	_ = a.Multiply(10)
	_ = a.Normalize()

	if a != NewVec3(1, 2, 3) || b != NewVec3(4, 5, 6) {
		t.Errorf("Operands were mutated: a=%v b=%v", a, b)
	}
}

func TestVec3_AlgebraLaws(t *testing.T) {
	vectors := []Vec3{
		NewVec3(1, 2, 3),
		NewVec3(-0.5, 7, 0.25),
		NewVec3(1e3, -1e-3, 42),
	}

	for _, a := range vectors {
		for _, b := range vectors {
			if !a.Add(b).Equals(b.Add(a)) {
				t.Errorf("a+b != b+a for %v, %v", a, b)
			}
			if a.Dot(b) != b.Dot(a) {
				t.Errorf("dot(a,b) != dot(b,a) for %v, %v", a, b)
			}
			if !a.Cross(b).Equals(b.Cross(a).Negate()) {
				t.Errorf("cross(a,b) != -cross(b,a) for %v, %v", a, b)
			}
		}

		if !a.Add(a.Negate()).Equals(Vec3{}) {
			t.Errorf("a + (-a) != 0 for %v", a)
		}
		if !a.Multiply(2).Equals(NewVec3(2, 2, 2).MultiplyVec(a)) {
			t.Errorf("2*a != a*2 for %v", a)
		}
		if length := a.Normalize().Length(); math.Abs(length-1) > 1e-12 {
			t.Errorf("length(unit(%v)) = %v, expected 1", a, length)
		}
	}
}

func TestVec3_Length(t *testing.T) {
	tests := []struct {
		vector   Vec3
		expected float64
	}{
		{NewVec3(1, 1, 1), math.Sqrt(3)},
		{NewVec3(-1, 1, -1), math.Sqrt(3)},
		{NewVec3(1, 2, 3), math.Sqrt(14)},
		{NewVec3(1, -2, 3), math.Sqrt(14)},
	}

	for _, tt := range tests {
		if got := tt.vector.Length(); got != tt.expected {
			t.Errorf("Length(%v) = %v, expected %v", tt.vector, got, tt.expected)
		}
		if got := tt.vector.LengthSquared(); math.Abs(got-tt.expected*tt.expected) > 1e-12 {
			t.Errorf("LengthSquared(%v) = %v, expected %v", tt.vector, got, tt.expected*tt.expected)
		}
	}
}

func TestVec3_Normalize(t *testing.T) {
	a := NewVec3(1, 2, 3)
	length := a.Length()
	expected := NewVec3(1/length, 2/length, 3/length)

	if a.Normalize().Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected %v, got %v", expected, a.Normalize())
	}
}

func TestVec3_NormalizeZeroPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic when normalizing a zero vector")
		}
	}()
	Vec3{}.Normalize()
}

func TestVec3_NearZero(t *testing.T) {
	if !NewVec3(1e-9, -1e-9, 0).NearZero() {
		t.Error("Expected tiny vector to be near zero")
	}
	if NewVec3(1e-9, 1e-7, 0).NearZero() {
		t.Error("Expected vector with a 1e-7 component not to be near zero")
	}
}

func TestVec3_String(t *testing.T) {
	if got := NewVec3(1, 2.5, -3).String(); got != "1 2.5 -3" {
		t.Errorf("Expected \"1 2.5 -3\", got %q", got)
	}
}

func TestReflect(t *testing.T) {
	v := NewVec3(1, -1, 0)
	n := NewVec3(0, 1, 0)

	got := Reflect(v, n)
	expected := NewVec3(1, 1, 0)
	if !got.Equals(expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestRefract(t *testing.T) {
	n := NewVec3(0, 1, 0)

	t.Run("normal incidence passes straight through", func(t *testing.T) {
		uv := NewVec3(0, -1, 0)
		got := Refract(uv, n, 1/1.5)
		if got.Subtract(uv).Length() > 1e-12 {
			t.Errorf("Expected %v, got %v", uv, got)
		}
	})

	t.Run("obeys snell's law", func(t *testing.T) {
		theta := math.Pi / 6
		uv := NewVec3(math.Sin(theta), -math.Cos(theta), 0)
		eta := 1 / 1.5

		got := Refract(uv, n, eta)
		if math.Abs(got.Length()-1) > 1e-12 {
			t.Errorf("Refracted unit vector should stay unit length, got %v", got.Length())
		}

		sinOut := got.X
		if math.Abs(sinOut-eta*math.Sin(theta)) > 1e-12 {
			t.Errorf("Expected sin(theta') = %v, got %v", eta*math.Sin(theta), sinOut)
		}
		if got.Y >= 0 {
			t.Errorf("Refracted ray should continue through the surface, got %v", got)
		}
	})

	t.Run("unit eta ratio leaves direction unchanged", func(t *testing.T) {
		uv := NewVec3(0.6, -0.8, 0)
		got := Refract(uv, n, 1.0)
		if got.Subtract(uv).Length() > 1e-12 {
			t.Errorf("Expected %v, got %v", uv, got)
		}
	})
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(0, 3, 0), NewVec3(2, 0, -2))

	tests := []struct {
		t        float64
		expected Vec3
	}{
		{5.25, NewVec3(10.5, 3, -10.5)},
		{-10, NewVec3(-20, 3, 20)},
		{0, NewVec3(0, 3, 0)},
	}

	for _, tt := range tests {
		if got := ray.At(tt.t); !got.Equals(tt.expected) {
			t.Errorf("At(%v): expected %v, got %v", tt.t, tt.expected, got)
		}
	}
}

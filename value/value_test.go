package value_test

import (
	"testing"

	"patternscript/value"
)

func TestText(t *testing.T) {
	if got, want := value.Int64(42).Text(), "42"; got != want {
		t.Errorf("Int64(42).Text() = %q, want %q", got, want)
	}
	if got, want := value.Int64(-3).Text(), "-3"; got != want {
		t.Errorf("Int64(-3).Text() = %q, want %q", got, want)
	}
	if got, want := value.String("hi").Text(), "hi"; got != want {
		t.Errorf("String(\"hi\").Text() = %q, want %q", got, want)
	}
}

func TestTruthy(t *testing.T) {
	if value.Int64(0).Truthy() {
		t.Errorf("Int64(0) should not be truthy")
	}
	if !value.Int64(1).Truthy() {
		t.Errorf("Int64(1) should be truthy")
	}
	if value.String("").Truthy() {
		t.Errorf("an empty string should not be truthy")
	}
}

func TestEqual(t *testing.T) {
	cases := []struct {
		a, b value.Value
		want bool
	}{
		{value.Int64(1), value.Int64(1), true},
		{value.Int64(1), value.Int64(2), false},
		{value.String("a"), value.String("a"), true},
		{value.String("a"), value.String("b"), false},
		{value.Int64(1), value.String("1"), false},
	}
	for _, c := range cases {
		if got := c.a.Equal(c.b); got != c.want {
			t.Errorf("%+v.Equal(%+v) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

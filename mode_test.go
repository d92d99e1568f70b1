package enquo

import "testing"

func TestNewModeCollapsesFlags(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name              string
		unsafe, noQuery   bool
		orderPrefixLength *int
		want              Mode
	}{
		{name: "default", want: ModeDefault},
		{name: "no_query", noQuery: true, want: ModeNoQuery},
		{name: "unsafe", unsafe: true, want: ModeUnsafe},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, err := NewMode(c.unsafe, c.noQuery, c.orderPrefixLength)
			if err != nil {
				t.Fatal(err)
			}

			if got != c.want {
				t.Errorf("NewMode() = %+v, want %+v", got, c.want)
			}
		})
	}
}

func TestNewModeRejectsConflictingFlags(t *testing.T) {
	t.Parallel()

	if _, err := NewMode(true, true, nil); err == nil {
		t.Fatal("expected error for unsafe+no_query")
	}

	n := 8
	if _, err := NewMode(false, false, &n); err == nil {
		t.Fatal("expected error for order_prefix_length without unsafe")
	}

	if _, err := NewMode(true, true, &n); err == nil {
		t.Fatal("expected error for order_prefix_length with no_query")
	}
}

func TestModeOrderableRejectsOutOfRangeLengths(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, -1, 256, 1000} {
		if _, err := ModeOrderable(n); err == nil {
			t.Errorf("ModeOrderable(%d): expected error", n)
		}
	}

	for _, n := range []int{1, 16, 255} {
		if _, err := ModeOrderable(n); err != nil {
			t.Errorf("ModeOrderable(%d): unexpected error %v", n, err)
		}
	}
}

func TestModeOrderableCollapsesFromFlags(t *testing.T) {
	t.Parallel()

	n := 16

	got, err := NewMode(true, false, &n)
	if err != nil {
		t.Fatal(err)
	}

	want, err := ModeOrderable(16)
	if err != nil {
		t.Fatal(err)
	}

	if got != want {
		t.Errorf("NewMode() = %+v, want %+v", got, want)
	}
}

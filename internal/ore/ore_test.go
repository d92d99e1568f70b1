package ore

import (
	"testing"
)

func TestCompareOrdersMatchPlaintextOrder(t *testing.T) {
	t.Parallel()

	key := []byte("0123456789abcdef0123456789abcdef")

	values := []byte{0, 1, 5, 127, 128, 200, 255}

	for _, a := range values {
		for _, b := range values {
			ta, err := Encrypt(key, []byte{a}, true)
			if err != nil {
				t.Fatal(err)
			}

			tb, err := Encrypt(key, []byte{b}, false)
			if err != nil {
				t.Fatal(err)
			}

			got, err := Compare(ta, tb)
			if err != nil {
				t.Fatal(err)
			}

			want := Ordering(sign(int(a) - int(b)))
			if got != want {
				t.Errorf("Compare(%d, %d) = %v, want %v", a, b, got, want)
			}
		}
	}
}

func TestCompareIsAntisymmetric(t *testing.T) {
	t.Parallel()

	key := []byte("key-material-for-antisymmetry-xx")

	ta, err := Encrypt(key, []byte{3, 200}, true)
	if err != nil {
		t.Fatal(err)
	}

	tb, err := Encrypt(key, []byte{3, 201}, false)
	if err != nil {
		t.Fatal(err)
	}

	ab, err := Compare(ta, tb)
	if err != nil {
		t.Fatal(err)
	}

	ba, err := Compare(tb, ta)
	if err != nil {
		t.Fatal(err)
	}

	if ab != -ba {
		t.Errorf("Compare(a,b) = %v, Compare(b,a) = %v; want opposites", ab, ba)
	}
}

func TestEncryptIsDeterministic(t *testing.T) {
	t.Parallel()

	key := []byte("deterministic-key-material-here")

	t1, err := Encrypt(key, []byte{1, 2, 3}, true)
	if err != nil {
		t.Fatal(err)
	}

	t2, err := Encrypt(key, []byte{1, 2, 3}, true)
	if err != nil {
		t.Fatal(err)
	}

	if string(t1.Right) != string(t2.Right) {
		t.Errorf("Right sides differ across identical encryptions")
	}

	for i := range t1.Left {
		if t1.Left[i] != t2.Left[i] {
			t.Errorf("Left[%d] differs across identical encryptions", i)
		}
	}
}

func TestCompareRejectsMismatchedLengths(t *testing.T) {
	t.Parallel()

	key := []byte("mismatched-length-key-material-x")

	a, err := Encrypt(key, []byte{1, 2}, true)
	if err != nil {
		t.Fatal(err)
	}

	b, err := Encrypt(key, []byte{1, 2, 3}, false)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := Compare(a, b); err != ErrIncomparable {
		t.Errorf("Compare() error = %v, want ErrIncomparable", err)
	}
}

func TestCompareRequiresALeftSide(t *testing.T) {
	t.Parallel()

	key := []byte("no-left-side-key-material-herexx")

	a, err := Encrypt(key, []byte{1}, false)
	if err != nil {
		t.Fatal(err)
	}

	b, err := Encrypt(key, []byte{2}, false)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := Compare(a, b); err != ErrIncomparable {
		t.Errorf("Compare() error = %v, want ErrIncomparable", err)
	}
}

func TestMultiBlockOrderFollowsMostSignificantBlockFirst(t *testing.T) {
	t.Parallel()

	key := []byte("multi-block-order-key-material-x")

	// 0x01FF < 0x0200 even though the second byte of the first value is larger.
	a, err := Encrypt(key, []byte{0x01, 0xFF}, true)
	if err != nil {
		t.Fatal(err)
	}

	b, err := Encrypt(key, []byte{0x02, 0x00}, false)
	if err != nil {
		t.Fatal(err)
	}

	got, err := Compare(a, b)
	if err != nil {
		t.Fatal(err)
	}

	if got != Less {
		t.Errorf("Compare() = %v, want Less", got)
	}
}

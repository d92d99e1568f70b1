package enquo

import (
	"testing"

	"github.com/enquo-project/enquo-core-go/internal/wire"
)

func TestTextRoundTrip(t *testing.T) {
	t.Parallel()

	field, err := testRoot(t).Field("users", "email")
	if err != nil {
		t.Fatal(err)
	}

	for _, v := range []string{"alice@example.com", "", "héllo wörld", "é"} {
		ct, err := field.EncryptText(v, []byte("ctx"), ModeDefault)
		if err != nil {
			t.Fatal(err)
		}

		got, err := field.DecryptText(ct, []byte("ctx"))
		if err != nil {
			t.Fatal(err)
		}

		if got != v {
			t.Errorf("DecryptText() = %q, want %q", got, v)
		}
	}
}

// "é" (e + combining acute accent) and "é" (precomposed é) are the same text
// under NFC; the payload is sealed after normalization, so both round-trip to the same string.
func TestTextNormalizesBeforeSealing(t *testing.T) {
	t.Parallel()

	field, err := testRoot(t).Field("users", "email")
	if err != nil {
		t.Fatal(err)
	}

	decomposed := "é"
	precomposed := "é"

	ctA, err := field.EncryptText(decomposed, nil, ModeDefault)
	if err != nil {
		t.Fatal(err)
	}

	ctB, err := field.EncryptText(precomposed, nil, ModeDefault)
	if err != nil {
		t.Fatal(err)
	}

	gotA, err := field.DecryptText(ctA, nil)
	if err != nil {
		t.Fatal(err)
	}

	gotB, err := field.DecryptText(ctB, nil)
	if err != nil {
		t.Fatal(err)
	}

	if gotA != precomposed || gotB != precomposed {
		t.Errorf("DecryptText() = (%q, %q), want both %q", gotA, gotB, precomposed)
	}
}

func TestTextEqualityHashRevealsEqualityAfterNormalization(t *testing.T) {
	t.Parallel()

	field, err := testRoot(t).Field("users", "email")
	if err != nil {
		t.Fatal(err)
	}

	a, err := field.EncryptText("é", nil, ModeDefault)
	if err != nil {
		t.Fatal(err)
	}

	b, err := field.EncryptText("é", nil, ModeDefault)
	if err != nil {
		t.Fatal(err)
	}

	c, err := field.EncryptText("different", nil, ModeDefault)
	if err != nil {
		t.Fatal(err)
	}

	ba, err := decodeTextBody(a)
	if err != nil {
		t.Fatal(err)
	}

	bb, err := decodeTextBody(b)
	if err != nil {
		t.Fatal(err)
	}

	bc, err := decodeTextBody(c)
	if err != nil {
		t.Fatal(err)
	}

	if string(ba.E) != string(bb.E) {
		t.Errorf("equal (post-normalization) texts produced different equality hashes")
	}

	if string(ba.E) == string(bc.E) {
		t.Errorf("different texts produced the same equality hash")
	}
}

func TestTextRejectsInvalidUTF8(t *testing.T) {
	t.Parallel()

	field, err := testRoot(t).Field("users", "email")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := field.EncryptText(string([]byte{0xff, 0xfe}), nil, ModeDefault); err == nil {
		t.Fatal("expected error for invalid UTF-8")
	} else if e, ok := err.(*Error); !ok || e.Kind != Encoding {
		t.Errorf("error = %v, want Encoding", err)
	}
}

func TestTextModesGateTokens(t *testing.T) {
	t.Parallel()

	field, err := testRoot(t).Field("users", "email")
	if err != nil {
		t.Fatal(err)
	}

	noQuery, err := field.EncryptText("value", nil, ModeNoQuery)
	if err != nil {
		t.Fatal(err)
	}

	def, err := field.EncryptText("value", nil, ModeDefault)
	if err != nil {
		t.Fatal(err)
	}

	unsafe, err := field.EncryptText("value", nil, ModeUnsafe)
	if err != nil {
		t.Fatal(err)
	}

	orderable, err := ModeOrderable(8)
	if err != nil {
		t.Fatal(err)
	}

	order, err := field.EncryptText("value", nil, orderable)
	if err != nil {
		t.Fatal(err)
	}

	bNoQuery, _ := decodeTextBody(noQuery)
	bDefault, _ := decodeTextBody(def)
	bUnsafe, _ := decodeTextBody(unsafe)
	bOrder, _ := decodeTextBody(order)

	if bNoQuery.E != nil || bNoQuery.L != nil || bNoQuery.H != nil || bNoQuery.O != nil {
		t.Errorf("ModeNoQuery emitted an index token")
	}

	if bDefault.E == nil || bDefault.L == nil || bDefault.H != nil || bDefault.O != nil {
		t.Errorf("ModeDefault emitted the wrong set of tokens: %+v", bDefault)
	}

	if bUnsafe.E == nil || bUnsafe.L == nil || bUnsafe.H == nil || bUnsafe.O != nil {
		t.Errorf("ModeUnsafe emitted the wrong set of tokens: %+v", bUnsafe)
	}

	if bOrder.E == nil || bOrder.L == nil || bOrder.H != nil || bOrder.O == nil {
		t.Errorf("orderable mode emitted the wrong set of tokens: %+v", bOrder)
	}
}

func TestCompareTextLengthMatchesPlaintextOrder(t *testing.T) {
	t.Parallel()

	field, err := testRoot(t).Field("users", "email")
	if err != nil {
		t.Fatal(err)
	}

	short, err := field.EncryptText("hi", nil, ModeDefault)
	if err != nil {
		t.Fatal(err)
	}

	long, err := field.EncryptText("hello there friend", nil, ModeDefault)
	if err != nil {
		t.Fatal(err)
	}

	bs, err := decodeTextBody(short)
	if err != nil {
		t.Fatal(err)
	}

	bl, err := decodeTextBody(long)
	if err != nil {
		t.Fatal(err)
	}

	sWire, err := wire.Marshal(bs.L)
	if err != nil {
		t.Fatal(err)
	}

	lWire, err := wire.Marshal(bl.L)
	if err != nil {
		t.Fatal(err)
	}

	got, err := CompareTextLength(sWire, lWire)
	if err != nil {
		t.Fatal(err)
	}

	if got != -1 {
		t.Errorf("CompareTextLength() = %d, want -1", got)
	}
}

func TestEncryptTextLengthQueryMatchesEncryptedLength(t *testing.T) {
	t.Parallel()

	field, err := testRoot(t).Field("users", "email")
	if err != nil {
		t.Fatal(err)
	}

	ct, err := field.EncryptText("hello", nil, ModeDefault)
	if err != nil {
		t.Fatal(err)
	}

	body, err := decodeTextBody(ct)
	if err != nil {
		t.Fatal(err)
	}

	lenWire, err := wire.Marshal(body.L)
	if err != nil {
		t.Fatal(err)
	}

	query, err := field.EncryptTextLengthQuery(5)
	if err != nil {
		t.Fatal(err)
	}

	got, err := CompareTextLength(lenWire, query)
	if err != nil {
		t.Fatal(err)
	}

	if got != 0 {
		t.Errorf("CompareTextLength() = %d, want 0 (equal length)", got)
	}
}

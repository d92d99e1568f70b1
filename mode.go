package enquo

import "fmt"

type modeKind int

const (
	modeDefault modeKind = iota
	modeNoQuery
	modeUnsafe
	modeOrderable
)

// Mode controls which index tokens an Encrypt call emits alongside a value's sealed payload.
//
//   - ModeDefault emits the tokens needed for equality and range queries, but nothing that
//     leaks more than that.
//   - ModeNoQuery emits no index tokens at all; the ciphertext can only be decrypted, never
//     queried.
//   - ModeUnsafe additionally emits tokens that leak more (a truncated hash code for text), in
//     exchange for faster or richer queries.
//   - A mode built by ModeOrderable additionally emits an ordering index over the first N bytes
//     of a text value's sort key, letting a store sort or range-query on the ciphertext directly.
//     N counts bytes, not code points. It is only meaningful for Text.
type Mode struct {
	kind              modeKind
	orderPrefixLength int
}

// ModeDefault is the safety mode used when no other mode is specified.
var ModeDefault = Mode{kind: modeDefault}

// ModeNoQuery emits no index tokens.
var ModeNoQuery = Mode{kind: modeNoQuery}

// ModeUnsafe emits the ModeDefault tokens plus ones that leak more than equality and range
// comparisons require (the text hash code). It does not emit the text ordering index; only a mode
// built by ModeOrderable does.
var ModeUnsafe = Mode{kind: modeUnsafe}

// ModeOrderable returns a mode that emits an ordering index over the first n bytes of a Text
// value's sort key (its NFC-normalized UTF-8 bytes), in addition to the tokens ModeUnsafe would
// emit except for the hash code. n counts bytes, not code points, so the prefix can end partway
// through a multi-byte character; shorter keys are zero-padded. n must be in [1, 255].
func ModeOrderable(n int) (Mode, error) {
	if n < 1 || n > 255 {
		return Mode{}, newError(BadArgument, "ModeOrderable",
			fmt.Errorf("order prefix length %d out of range [1, 255]", n))
	}

	return Mode{kind: modeOrderable, orderPrefixLength: n}, nil
}

// NewMode collapses the {unsafe, no_query, order_prefix_length} keyword-flag idiom a host binding
// typically exposes into a single Mode, rejecting combinations the core does not support.
func NewMode(unsafe, noQuery bool, orderPrefixLength *int) (Mode, error) {
	if orderPrefixLength != nil {
		switch {
		case noQuery:
			return Mode{}, newError(BadArgument, "NewMode",
				fmt.Errorf("order_prefix_length is incompatible with no_query"))
		case !unsafe:
			return Mode{}, newError(BadArgument, "NewMode",
				fmt.Errorf("order_prefix_length requires unsafe"))
		default:
			return ModeOrderable(*orderPrefixLength)
		}
	}

	switch {
	case noQuery && unsafe:
		return Mode{}, newError(BadArgument, "NewMode",
			fmt.Errorf("no_query and unsafe are mutually exclusive"))
	case noQuery:
		return ModeNoQuery, nil
	case unsafe:
		return ModeUnsafe, nil
	default:
		return ModeDefault, nil
	}
}

func (m Mode) emitsEquality() bool {
	return m.kind != modeNoQuery
}

func (m Mode) emitsHashCode() bool {
	return m.kind == modeUnsafe
}

func (m Mode) emitsOrder() bool {
	return m.kind == modeOrderable
}

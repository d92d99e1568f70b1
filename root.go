package enquo

// Root is the entry point of the key hierarchy: one Root per deployment, holding (indirectly, via
// its KeyProvider) the single secret all field keys are derived from. A Root itself never
// encrypts or decrypts anything; it only hands out Fields.
type Root struct {
	provider KeyProvider
}

// NewRoot constructs a Root backed by provider.
func NewRoot(provider KeyProvider) (*Root, error) {
	if provider == nil {
		return nil, newError(BadArgument, "NewRoot", errNilKeyProvider)
	}

	return &Root{provider: provider}, nil
}

// Field derives the Field for the given relation and name. The pair is the field's identity:
// deriving the same (relation, name) against the same Root always yields a Field with the same
// key material. The pair is encoded as relation, a single NUL byte, then name, so distinct pairs
// yield independent Fields unless they encode to the same bytes, which can happen only when
// relation or name itself contains a NUL byte (("a\x00b", "c") and ("a", "b\x00c") share a Field).
func (r *Root) Field(relation, name string) (*Field, error) {
	return newField(r, []byte(relation), []byte(name))
}

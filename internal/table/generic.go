package table

// GenericDecoder is used by sites whose titles carry nothing but the
// table name in front of the first " - ".
type GenericDecoder struct{}

// Decode implements Decoder.
func (GenericDecoder) Decode(c Candidate) (Identity, error) {
	return c.base(NormalizeName(firstSegment(c.Window.Title))), nil
}

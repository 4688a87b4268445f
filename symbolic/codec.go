package symbolic

// DecodeSCV decodes a YAML-encoded SCV back into its concrete backend
// type. It is nil until a concrete backend package (symbolic/naive is the
// one shipped in this module) registers itself via its init function;
// restoring an SCV-carrying state without importing such a package, even
// transitively, panics with a nil function call, which is the chosen
// failure mode: serialization is backend
// bound, and there is no way to decode bytes without knowing which
// backend wrote them.
var DecodeSCV func(data []byte) (SCV, error)

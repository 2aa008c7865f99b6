package mom

// Payload is the discriminated payload of a wire envelope. Exactly one
// concrete type exists per payload-carrying kind and consumers type-switch
// on it, so reading the wrong member is impossible by construction.
type Payload interface {
	momPayload()

	// ClonePayload returns a field-complete copy. Broadcast fan-out clones
	// per target so one consumer's mutation never reaches another.
	ClonePayload() Payload
}

// Request is the outbound envelope: a kind plus its payload. Control
// signals carry a nil payload.
type Request struct {
	Kind    Kind
	Payload Payload
}

// Response is the inbound envelope. IsLast marks the final message of a
// multi-part reply. Seq is the per-stream position counter for pushes.
type Response struct {
	Kind    Kind
	IsLast  bool
	Seq     uint32
	Payload Payload
}

// Clone copies the envelope and its payload.
func (r *Response) Clone() *Response {
	cp := &Response{Kind: r.Kind, IsLast: r.IsLast, Seq: r.Seq}
	if r.Payload != nil {
		cp.Payload = r.Payload.ClonePayload()
	}
	return cp
}

package types

// Envelope is the uniform response shape of every write action. Result
// structs embed it so their fields flatten alongside success/error.
type Envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// OK is the bare success envelope.
func OK() Envelope {
	return Envelope{Success: true}
}

// Fail wraps a public error message.
func Fail(message string) Envelope {
	return Envelope{Success: false, Error: message}
}

// Succeeded reports the envelope outcome; embedding promotes it onto every
// result struct.
func (e Envelope) Succeeded() bool {
	return e.Success
}

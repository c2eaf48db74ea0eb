package types

// SuccessEnvelope wraps the result of a CLI command.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

type CommandError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable,omitempty"`
	Details   any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error CommandError `json:"error"`
}

package types

// SuccessEnvelope wraps every 2xx JSON body. Reads carry the record(s) in
// Data; mutating endpoints carry a message/payload pair.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the public error shape. Code is one of the taxonomy values in
// pkg/errors; Details is only populated for codes that allow it, such as the
// conflicting record on ALREADY_EXISTS.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps every non-2xx JSON body.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

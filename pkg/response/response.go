package response

// ErrorBody carries a machine-readable code plus a user-facing message
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Envelope is the uniform result shape consumed by the presentation
// layer: {ok:true, data} on success, {ok:false, error} on rejection.
type Envelope struct {
	OK    bool        `json:"ok"`
	Data  interface{} `json:"data,omitempty"`
	Error *ErrorBody  `json:"error,omitempty"`
}

// OK wraps a successful payload
func OK(data interface{}) Envelope {
	return Envelope{OK: true, Data: data}
}

// Err wraps a rejection
func Err(code, message string) Envelope {
	return Envelope{OK: false, Error: &ErrorBody{Code: code, Message: message}}
}

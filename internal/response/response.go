package response

// Envelope is the uniform response shape returned by every API endpoint.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
}

func OK(data interface{}, message string) Envelope {
	return Envelope{Success: true, Data: data, Message: message}
}

func Fail(message string) Envelope {
	return Envelope{Success: false, Data: nil, Message: message}
}

package commons

type Response[T any] struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    *T       `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Success: true,
		Message: message,
		Data:    &data,
	}
}

func ErrorResponse[T any](message string, errors ...string) Response[T] {
	return Response[T]{
		Success: false,
		Message: message,
		Errors:  errors,
	}
}

// RejectedResponse reports a failed outcome that still carries data, such as
// the unchanged account after a rule rejection.
func RejectedResponse[T any](message string, data T, errors ...string) Response[T] {
	return Response[T]{
		Success: false,
		Message: message,
		Data:    &data,
		Errors:  errors,
	}
}

const (
	MessageValidationFailed   = "validation failed"
	MessageAccountNotFound    = "Account not found"
	MessageRejected           = "transaction rejected"
	MessageConcurrentUpdate   = "Account was modified concurrently"
	MessageTransactionFailed  = "Transaction failed"
	MessageProcessingFailed   = "failed to process transaction"
	MessageUnableToProcessNow = "Unable to process transaction right now"
)

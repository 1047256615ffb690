package v1

// Errors
const (
	UnknownErrorCode    = 0
	UnknownErrorMessage = "unknown error"

	UserAlreadyExistsCode     = 1001
	UserAlreadyExistsMessage  = "user already exists"
	UserNotFoundCode          = 1002
	UserNotFoundMessage       = "user not found"
	InvalidCredentialsCode    = 1003
	InvalidCredentialsMessage = "invalid email or password"
	RoleNotAllowedCode        = 1004
	RoleNotAllowedMessage     = "role can not be chosen at registration"

	UnauthorizedCode    = 2001
	UnauthorizedMessage = "unauthorized"
	ForbiddenCode       = 2002
	ForbiddenMessage    = "forbidden"

	NotificationNotFoundCode    = 3001
	NotificationNotFoundMessage = "notification not found"

	InvalidRequestCode    = 4001
	InvalidRequestMessage = "invalid request"

	ValidationErrorCode    = 6000
	ValidationErrorMessage = "Validation error"
)

type ErrorCode int
type ErrorMessage string

type ErrorStruct struct {
	ErrorCode    `json:"error_code"`
	ErrorMessage `json:"error_message"`
} // @name ErrorStruct

type ValidationErrorStruct struct {
	Success      bool              `json:"success"`
	ErrorCode    int               `json:"error_code"`
	ErrorMessage string            `json:"error_message"`
	Errors       []ValidationError `json:"validation_errors"`
} // @name ValidationErrorStruct

type ValidationError struct {
	FieldKey     string `json:"field_key"`
	ErrorMessage string `json:"error_message"`
}

func getErrorStruct(code ErrorCode) *ErrorStruct {
	errorStruct := &ErrorStruct{
		ErrorCode:    UnknownErrorCode,
		ErrorMessage: UnknownErrorMessage,
	}

	switch code {
	case UserAlreadyExistsCode:
		errorStruct.ErrorCode = UserAlreadyExistsCode
		errorStruct.ErrorMessage = UserAlreadyExistsMessage
	case UserNotFoundCode:
		errorStruct.ErrorCode = UserNotFoundCode
		errorStruct.ErrorMessage = UserNotFoundMessage
	case InvalidCredentialsCode:
		errorStruct.ErrorCode = InvalidCredentialsCode
		errorStruct.ErrorMessage = InvalidCredentialsMessage
	case RoleNotAllowedCode:
		errorStruct.ErrorCode = RoleNotAllowedCode
		errorStruct.ErrorMessage = RoleNotAllowedMessage
	case UnauthorizedCode:
		errorStruct.ErrorCode = UnauthorizedCode
		errorStruct.ErrorMessage = UnauthorizedMessage
	case ForbiddenCode:
		errorStruct.ErrorCode = ForbiddenCode
		errorStruct.ErrorMessage = ForbiddenMessage
	case NotificationNotFoundCode:
		errorStruct.ErrorCode = NotificationNotFoundCode
		errorStruct.ErrorMessage = NotificationNotFoundMessage
	case InvalidRequestCode:
		errorStruct.ErrorCode = InvalidRequestCode
		errorStruct.ErrorMessage = InvalidRequestMessage
	}

	return errorStruct
}

package error

import "net/http"

// AlreadyCompleteError signals that every post in a batch has already been
// published. Informational terminal condition, not a real failure.
type AlreadyCompleteError string

func (err AlreadyCompleteError) Error() string {
	return string(err)
}

func (err AlreadyCompleteError) ErrCode() string {
	return "ALREADY_COMPLETE_ERROR"
}

func (err AlreadyCompleteError) StatusCode() int {
	return http.StatusConflict
}

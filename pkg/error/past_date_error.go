package error

import "net/http"

// PastDateError rejects a freshly submitted batch that contains publish dates
// already in the past. New batches must be wholly in the future.
type PastDateError string

func (err PastDateError) Error() string {
	return string(err)
}

func (err PastDateError) ErrCode() string {
	return "PAST_DATE_ERROR"
}

func (err PastDateError) StatusCode() int {
	return http.StatusUnprocessableEntity
}

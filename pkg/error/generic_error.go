package error

// GenericError is implemented by every typed error in this package so callers
// can branch on ErrCode without type-switching over each concrete type.
type GenericError interface {
	Error() string
	ErrCode() string
	StatusCode() int
}

package domain

// DomainError signals a violated domain invariant. The HTTP layer maps it to
// a 400-class response; everything else is treated as an upstream failure.
type DomainError struct {
	msg string
}

func NewDomainError(msg string) *DomainError {
	return &DomainError{msg: msg}
}

func (e *DomainError) Error() string {
	return e.msg
}

package pricing

// ErrorCode classifies pricing failures.
type ErrorCode string

const (
	CodeRegionRequired ErrorCode = "REGION_REQUIRED"
	CodeRegionInvalid  ErrorCode = "REGION_INVALID"
)

// Error is returned by CalculateTotals when the input cannot be priced.
// Message is meant to be shown to the user as-is.
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is reports whether target is a pricing error with the same code,
// so errors.Is(err, ErrRegionInvalid) matches any invalid region.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t == nil {
		return false
	}
	return t.Code == e.Code
}

var (
	ErrRegionRequired = &Error{Code: CodeRegionRequired, Message: "Region selection is required."}
	ErrRegionInvalid  = &Error{Code: CodeRegionInvalid, Message: "region is not supported"}
)

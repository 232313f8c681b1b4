package preview

import "errors"

// ErrDataParse marks data text that is not a JSON object.
var ErrDataParse = errors.New("preview: invalid template data")

// DataError carries the JSON parser message for invalid data text.
type DataError struct {
	Err error
}

func (e *DataError) Error() string {
	return e.Err.Error()
}

func (e *DataError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrDataParse.
func (e *DataError) Is(target error) bool {
	return target == ErrDataParse
}

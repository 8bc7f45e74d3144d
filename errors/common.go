package errors

import "fmt"

func ValidationFailedErr(err error) error {
	return E(Invalid, "validation failed", err)
}

func EmptyParamErr(field string) error {
	ve := ValidationErrs()
	ve.Add(field, "cannot be empty")
	return E(Invalid, "validation failed", ve.Err())
}

// UnsupportedFormatErr returns a formatted error for a record format the printer cannot decode
func UnsupportedFormatErr(format string) error {
	return E(Invalid, "unsupported format", fmt.Errorf("%q", format))
}

// DecodeErr returns a formatted error for a record whose value does not match its declared format
func DecodeErr(topic string, partition int32, offset int64, err error) error {
	msg := fmt.Sprintf("cannot decode record %s/%d@%d", topic, partition, offset)
	return E(Invalid, msg, err)
}

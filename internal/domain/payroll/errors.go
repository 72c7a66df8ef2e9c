package payroll

import "errors"

var (
	ErrUnknownJurisdiction = errors.New("unknown jurisdiction")
)

package entity

import "errors"

// Domain errors for check reports
var (
	ErrReportNotFound = errors.New("check report not found")
	ErrRunInProgress  = errors.New("a check run is already in progress")
)

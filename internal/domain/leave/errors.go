package leave

import "errors"

var (
	ErrLeaveRequestNotFound            = errors.New("leave request not found")
	ErrLeaveRequestAlreadyProcessed    = errors.New("leave request already processed")
	ErrLeaveRequestNotFoundOrImmutable = errors.New("leave request not found or no longer pending")
	ErrInvalidDateRange                = errors.New("end_date must not be before start_date")
	ErrLeaveRangeTooLong               = errors.New("leave request must not cover more than 366 days")
	ErrCannotProcessToPending          = errors.New("a leave request cannot be processed back to pending")
	ErrNotDirectReport                 = errors.New("leave request does not belong to one of your direct reports")
)

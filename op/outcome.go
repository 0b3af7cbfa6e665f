package op

import "syscall"

// Outcome is the result of a Cancel or PollRemove completion: the kernel
// reports whether it found and cancelled the target, found it already
// completed, or never found it at all.
type Outcome int

const (
	OutcomeCancelled Outcome = iota
	OutcomeAlreadyCompleted
	OutcomeNotFound
)

func outcomeFromRes(res int32) (Outcome, error) {
	if res == 0 {
		return OutcomeCancelled, nil
	}
	switch syscall.Errno(-res) {
	case syscall.ENOENT:
		return OutcomeNotFound, nil
	case syscall.EALREADY:
		return OutcomeAlreadyCompleted, nil
	default:
		return OutcomeNotFound, syscall.Errno(-res)
	}
}

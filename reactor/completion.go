package reactor

// completionFlagMore mirrors IORING_CQE_F_MORE: set on a completion when
// further completions are still expected for the same operation
// (multishot). Kept as a local constant rather than importing it from the
// ring binding so the slot state machine in this file has no compile-time
// dependency on which Ring implementation is in use.
const completionFlagMore = uint32(1) << 1

// Completion is a reactor-owned copy of one kernel completion queue entry.
// Consumers only ever see copies; the reactor never hands out a pointer
// into ring memory.
type Completion struct {
	UserData uint64
	Res      int32
	Flags    uint32
}

// More reports whether the kernel indicated additional completions are
// still coming for the operation this entry belongs to.
func (c Completion) More() bool {
	return c.Flags&completionFlagMore != 0
}

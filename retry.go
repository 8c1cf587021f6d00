package spindle

import "time"

// Retry runs a function up to a fixed number of times, sleeping between
// attempts. Used for sqlite writes that can fail transiently under
// contention.
type Retry struct {
	sleepDuration time.Duration
	RetryFunc     func() error
	numTries      int
}

func NewRetry(numTries int, sleepDuration time.Duration, retryFunc func() error) *Retry {
	// the function always runs at least once
	if numTries < 1 {
		numTries = 1
	}

	return &Retry{
		sleepDuration: sleepDuration,
		RetryFunc:     retryFunc,
		numTries:      numTries,
	}
}

// Do returns nil after the first successful attempt, or the last error once
// the attempts are exhausted. It sleeps between attempts, never after the
// last one.
func (r *Retry) Do() error {
	var err error
	for i := 0; i < r.numTries; i++ {
		if i > 0 {
			time.Sleep(r.sleepDuration)
		}

		err = r.RetryFunc()
		if err == nil {
			break
		}
	}

	return err
}

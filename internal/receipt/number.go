package receipt

import (
	"fmt"
	"sync"
	"time"
)

var (
	numberMu   sync.Mutex
	lastNumber int64
)

// nextNumber derives a receipt number from the issuance clock. The value is
// strictly increasing within a process run, so two issuances can never share
// a number even inside the same nanosecond.
func nextNumber() string {
	numberMu.Lock()
	defer numberMu.Unlock()

	n := time.Now().UnixNano()
	if n <= lastNumber {
		n = lastNumber + 1
	}

	lastNumber = n

	return fmt.Sprintf("RCP-%d", n)
}

package deadlock

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// Outcome classifies a failed transfer by MySQL error number.
type Outcome string

const (
	OutcomeDeadlock    Outcome = "deadlock_detected" // ER_LOCK_DEADLOCK, the victim tx
	OutcomeLockTimeout Outcome = "lock_wait_timeout" // ER_LOCK_WAIT_TIMEOUT
	OutcomeOther       Outcome = "error"
)

const (
	mysqlErrLockWaitTimeout = 1205
	mysqlErrLockDeadlock    = 1213
)

// Classify maps a transfer error to its outcome. The database resolves
// the deadlock itself by aborting one transaction; this only names what
// happened.
func Classify(err error) Outcome {
	var me *mysql.MySQLError
	if !errors.As(err, &me) {
		return OutcomeOther
	}
	switch me.Number {
	case mysqlErrLockDeadlock:
		return OutcomeDeadlock
	case mysqlErrLockWaitTimeout:
		return OutcomeLockTimeout
	default:
		return OutcomeOther
	}
}

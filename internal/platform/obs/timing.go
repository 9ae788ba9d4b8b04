package obs

import (
	"context"
	"log"
	"time"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

// Planning operations are expected to stay interactive; anything slower
// gets flagged in the log line.
const slowThreshold = 2 * time.Second

// Time measures one named operation and logs its outcome when the
// returned func runs. Pass a pointer to the operation's error variable
// so deferred calls see the final value.
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	reqID, _ := ctx.Value(RequestIDKey).(string)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			log.Printf("req_id=%s op=%s dur=%dms err=%v", reqID, name, dur.Milliseconds(), *errp)
			return
		}
		if dur >= slowThreshold {
			log.Printf("req_id=%s op=%s dur=%dms slow=true", reqID, name, dur.Milliseconds())
			return
		}
		log.Printf("req_id=%s op=%s dur=%dms", reqID, name, dur.Milliseconds())
	}
}

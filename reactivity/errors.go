package reactivity

import (
	"github.com/vincenthirtz/pulse-js-framework-sub000/logutil"
	"github.com/vincenthirtz/pulse-js-framework-sub000/pulseerr"
)

// logError is the fallback path for effect errors that have no onError
// handler: log and keep draining.
func logError(err error) {
	logutil.Logf("[reactivity] %v\n", err)
}

// recoverToError turns a recovered panic value into a *pulseerr.Error.
func recoverToError(r any) *pulseerr.Error {
	if err, ok := r.(error); ok {
		return pulseerr.New(pulseerr.ReactivityError, err.Error())
	}
	return pulseerr.Newf(pulseerr.ReactivityError, "%v", r)
}

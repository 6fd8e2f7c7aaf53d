package iologger

import (
	"fmt"
	"runtime"

	"github.com/gnames/faunamap/pkg/errcode"
	"github.com/gnames/gn"
)

// CreateLogFileError is returned when LogFile cannot be created in the
// log directory. Check that the directory exists and is writable.
func CreateLogFileError(logDir string, err error) error {
	msg := "Cannot create <em>%s</em> in log directory <em>%s</em>"
	vars := []any{LogFile, logDir}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CreateLogFileError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot create %s in %s: %w",
			fn, LogFile, logDir, err),
	}
}

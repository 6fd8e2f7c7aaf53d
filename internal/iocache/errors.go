package iocache

import (
	"fmt"
	"runtime"

	"github.com/gnames/faunamap/pkg/errcode"
	"github.com/gnames/gn"
)

func WriteCacheError(path string, err error) error {
	msg := "Cannot write cache file <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.WriteFileError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot write cache %s: %w",
			fn, path, err),
	}
}

package iolocaldb

import (
	"fmt"
	"runtime"

	"github.com/gnames/faunamap/pkg/errcode"
	"github.com/gnames/gn"
)

func LocalDBError(err error) error {
	msg := "Cannot load the built-in local species database"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.LocalDBError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: cannot parse local database: %w", fn, err),
	}
}

package ioexport

import (
	"fmt"
	"runtime"

	"github.com/gnames/faunamap/pkg/errcode"
	"github.com/gnames/gn"
)

func ExportOpenError(path string, err error) error {
	msg := "Cannot open export file <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ExportOpenError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot open '%s': %w", fn, path, err),
	}
}

func ExportWriteError(path string, err error) error {
	msg := "Cannot write region features to <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ExportWriteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot write '%s': %w", fn, path, err),
	}
}

func ExportLoadError(key string) error {
	msg := "Cannot read stored region <em>%s</em>"
	vars := []any{key}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ExportLoadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot load region '%s'", fn, key),
	}
}

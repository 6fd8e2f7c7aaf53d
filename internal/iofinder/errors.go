package iofinder

import (
	"fmt"
	"runtime"

	"github.com/gnames/faunamap/pkg/errcode"
	"github.com/gnames/gn"
)

func RegionNotResolvedError(native string) error {
	msg := "Cannot determine region <em>%s</em>"
	vars := []any{native}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.RegionNotResolvedError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot resolve region '%s'", fn, native),
	}
}

func InvalidCoordinatesError(lat, lon float64) error {
	msg := "Coordinates <em>%.4f, %.4f</em> are out of range"
	vars := []any{lat, lon}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.InvalidCoordinatesError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: invalid coordinates %f, %f",
			fn, lat, lon),
	}
}

func CancelledError(err error) error {
	msg := "Search was cancelled"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CancelledError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: cancelled: %w", fn, err),
	}
}

func CoordinatesFormatError(lat, lon string) error {
	msg := "Cannot read coordinates <em>%s, %s</em>"
	vars := []any{lat, lon}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.InvalidCoordinatesError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: coordinates are not numbers: '%s', '%s'",
			fn, lat, lon),
	}
}

package iostore

import (
	"fmt"
	"runtime"

	"github.com/gnames/faunamap/pkg/errcode"
	"github.com/gnames/gn"
)

func RegionSaveError(key, path string, err error) error {
	msg := "Cannot save region <em>%s</em> to %s"
	vars := []any{key, path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.RegionSaveError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot save region %s to %s: %w",
			fn, key, path, err),
	}
}

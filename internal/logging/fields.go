package logging

import (
	"go.uber.org/zap"
	"golang.org/x/exp/constraints"
)

func Int[S ~string, T constraints.Signed](s S, v T) Field {
	return zap.Int64(string(s), int64(v))
}

func Bool[S ~string](s S, v bool) Field {
	return zap.Bool(string(s), v)
}

func Error(err error) Field {
	return zap.Error(err)
}

func String[U, V ~string](s U, v V) Field {
	return zap.String(string(s), string(v))
}

func Strings[S ~string](s S, v []string) Field {
	return zap.Strings(string(s), v)
}

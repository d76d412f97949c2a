package resource

import "github.com/fyerfyer/fyer-resmodel/resource/internal/ferr"

// 对外暴露的错误类型，调用方可以用 errors.Is 判断
var (
	ErrInvalidArgument       = ferr.ErrInvalidArgument
	ErrNotFound              = ferr.ErrNotFound
	ErrUnsupportedExpression = ferr.ErrUnsupportedExpression
	ErrMissingField          = ferr.ErrMissingField
	ErrInternalConsistency   = ferr.ErrInternalConsistency
)

package cleaner

import "errors"

var (
	// ErrInvalidInput 输入不是合法的表格，未进行任何交互
	ErrInvalidInput = errors.New("input is not a valid table")
	// ErrAborted 用户在最终确认时拒绝
	ErrAborted = errors.New("cleaning aborted by user")
	// ErrInputClosed 等待回答时输入流已结束
	ErrInputClosed = errors.New("input closed while waiting for an answer")
	// ErrReadInput 读取回答失败(如单行超过 maxAnswerSize)
	ErrReadInput = errors.New("failed to read answer")

	ErrUnknownType         = errors.New("unknown column type")
	ErrIncompatibleData    = errors.New("column cannot be recast as selected type")
	ErrUnknownConfirmation = errors.New("unknown confirmation mode")
)

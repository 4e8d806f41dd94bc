// Package usecase は台帳（保有銘柄・取引・設定）のビジネスロジックを実装します。
package usecase

import "errors"

var (
	// ErrValidation は不正な変更リクエストの基底エラーです。errors.Is で判定します。
	// 検証はすべての書き込みの前に行われ、部分的な変更は発生しません。
	ErrValidation = errors.New("validation failed")

	// ErrHoldingNotFound は対象の保有銘柄が存在しない場合に返されます。
	ErrHoldingNotFound = errors.New("holding not found")

	// ErrTransactionNotFound は対象の取引が存在しない場合に返されます。
	ErrTransactionNotFound = errors.New("transaction not found")
)

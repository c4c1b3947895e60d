package reconciliation

import "errors"

var (
	// ErrRecordNotFound возвращается, когда запись сверки не найдена
	ErrRecordNotFound = errors.New("reconciliation.repository: record not found")

	// ErrAlreadyClosed возвращается при попытке закрыть уже закрытую запись
	ErrAlreadyClosed = errors.New("reconciliation.repository: record already closed")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reconciliation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reconciliation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reconciliation.repository: failed to scan row")
)

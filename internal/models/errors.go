package models

import "errors"

// ErrorKind - вид ошибки, передаваемый клиенту в событии onError
type ErrorKind string

const (
	KindUnauthenticated ErrorKind = "unauthenticated"
	KindSensorFault     ErrorKind = "sensor_fault"
	KindStorageFailure  ErrorKind = "storage_failure"
	KindNotFound        ErrorKind = "not_found"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrSensorFault     = errors.New("sensor fault")
	ErrStorageFailure  = errors.New("storage failure")
	ErrNotFound        = errors.New("not found")
	ErrNoActiveSession = errors.New("no active safety session")
)

// KindOf возвращает вид ошибки по цепочке обёрток
func KindOf(err error) (ErrorKind, bool) {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return KindUnauthenticated, true
	case errors.Is(err, ErrSensorFault):
		return KindSensorFault, true
	case errors.Is(err, ErrStorageFailure):
		return KindStorageFailure, true
	case errors.Is(err, ErrNotFound):
		return KindNotFound, true
	}
	return "", false
}

package change_availability

import "errors"

var (
	// ErrBarberNotFound возвращается, когда барбер не найден
	ErrBarberNotFound = errors.New("barber not found")

	// ErrBarberNotInShop возвращается, когда барбер не закреплен за барбершопом
	ErrBarberNotInShop = errors.New("barber does not work at this shop")

	// ErrAffectedAppointments возвращается, когда изменение расписания
	// затрагивает подтвержденные записи, а подтверждение отмены не передано.
	// Response при этом заполнен списком затронутых записей.
	ErrAffectedAppointments = errors.New("schedule change affects confirmed appointments")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)

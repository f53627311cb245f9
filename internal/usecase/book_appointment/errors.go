package book_appointment

import "errors"

var (
	// ErrBarberNotFound возвращается, когда барбер не найден
	ErrBarberNotFound = errors.New("barber not found")

	// ErrBarberNotInShop возвращается, когда барбер не закреплен за барбершопом
	ErrBarberNotInShop = errors.New("barber does not work at this shop")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrPastDate возвращается при попытке записи на прошедшую дату
	ErrPastDate = errors.New("cannot book on a past date")

	// ErrTooLateToBook возвращается, когда время начала сегодня уже недоступно
	// с учетом буфера до записи
	ErrTooLateToBook = errors.New("too late to book this time today")

	// ErrOutsideWorkingHours возвращается, когда время не попадает в рабочие
	// часы барбера (включая перерывы, выходной и ранний уход)
	ErrOutsideWorkingHours = errors.New("time is outside barber working hours")

	// ErrSlotConflict возвращается, когда время пересекается с другой записью
	ErrSlotConflict = errors.New("slot conflicts with an existing appointment")

	// ErrDuplicateService возвращается, когда у клиента уже есть подтвержденная
	// запись на эту же услугу на эту же дату
	ErrDuplicateService = errors.New("client already has this service booked on this date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)

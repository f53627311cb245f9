package get_available_slots

import (
	"github.com/BarberLinkDO/BookingService/internal/domain"
	"github.com/BarberLinkDO/BookingService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ShopID   int64  // ID барбершопа
	BarberID int64  // ID барбера
	Date     string // Дата в формате YYYY-MM-DD
	// ID услуги; nil означает, что услуга не выбрана - шаг сетки берется
	// по умолчанию, проверка занятости точечная
	ServiceID *int64
}

// Response модель ответа со списком доступных времен начала
type Response struct {
	Date            string             // Дата, на которую запрашивались слоты
	ShopID          int64              // ID барбершопа
	BarberID        int64              // ID барбера
	ServiceID       *int64             // ID услуги (если была указана)
	DurationMinutes int                // Длительность услуги (0, если не выбрана)
	Slots           []types.TimeString // Доступные времена начала, по возрастанию
	// Исключение расписания на эту дату (выходной / ранний уход), если есть
	Exception *ExceptionInfo
}

// ExceptionInfo информация об исключении расписания на дату
type ExceptionInfo struct {
	Kind       domain.ExceptionKind
	CutoffTime types.TimeString // только для leave_early
}

package domain

import "time"

// Service represents a bookable barbershop service.
// ShopID == nil означает общую услугу, доступную во всех барбершопах.
type Service struct {
	ID                  int64
	ShopID              *int64
	Name                string
	BasePrice           float64
	BaseDurationMinutes int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsGeneral returns true if the service is not bound to a specific shop
func (s *Service) IsGeneral() bool {
	return s.ShopID == nil
}

// DurationOrZero возвращает длительность услуги; nil-услуга деградирует до 0
// (запись с неразрешимой услугой блокирует только свою стартовую минуту)
func (s *Service) DurationOrZero() int {
	if s == nil || s.BaseDurationMinutes < 0 {
		return 0
	}
	return s.BaseDurationMinutes
}

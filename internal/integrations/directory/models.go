package directory

// Barber модель барбера из DirectoryService
type Barber struct {
	ID          int64   `json:"id"`
	DisplayName string  `json:"display_name"`
	ShopIDs     []int64 `json:"shop_ids"`
	IsActive    bool    `json:"is_active"`
}

// WorksAt проверяет, что барбер закреплен за барбершопом
func (b *Barber) WorksAt(shopID int64) bool {
	for _, id := range b.ShopIDs {
		if id == shopID {
			return true
		}
	}
	return false
}

// Shop модель барбершопа из DirectoryService
type Shop struct {
	ID      int64  `json:"id"`
	OwnerID int64  `json:"owner_id"`
	Name    string `json:"name"`
}

// ErrorResponse модель ошибки от DirectoryService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

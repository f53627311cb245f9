package schedule

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/BarberLinkDO/BookingService/internal/domain"
	"github.com/BarberLinkDO/BookingService/pkg/dbmetrics"
	"github.com/BarberLinkDO/BookingService/pkg/psqlbuilder"
)

// Repository репозиторий настроек доступности барбера: недельное расписание,
// окна перерывов и буфер до записи
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetWeekly получает недельное расписание барбера.
// Пустой слайс означает, что расписание не настроено.
func (r *Repository) GetWeekly(ctx context.Context, barberID int64) (domain.WeeklyAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("day_key", "start_time", "end_time").
		From("weekly_availability").
		Where(squirrel.Eq{"barber_id": barberID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWeekly - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeekly - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	weekly := make(domain.WeeklyAvailability, 0, 7)
	for rows.Next() {
		var entry domain.WeeklyEntry
		if err := rows.Scan(&entry.Day, &entry.StartTime, &entry.EndTime); err != nil {
			return nil, fmt.Errorf("%w: GetWeekly - scan row: %v", ErrScanRow, err)
		}
		weekly = append(weekly, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWeekly - rows error: %v", ErrScanRow, err)
	}

	return weekly, nil
}

// SaveWeekly заменяет недельное расписание барбера целиком.
// Вызывается внутри транзакции вместе с отменой затронутых записей,
// чтобы расписание и отмены применились атомарно.
func (r *Repository) SaveWeekly(ctx context.Context, barberID int64, weekly domain.WeeklyAvailability) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("weekly_availability").
		Where(squirrel.Eq{"barber_id": barberID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SaveWeekly - build delete query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SaveWeekly - delete old entries: %v", ErrExecQuery, err)
	}

	if len(weekly) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("weekly_availability").
		Columns("barber_id", "day_key", "start_time", "end_time")
	for _, entry := range weekly {
		insertBuilder = insertBuilder.Values(barberID, entry.Day, entry.StartTime, entry.EndTime)
	}

	query, args, err = insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: SaveWeekly - build insert query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SaveWeekly - insert entries: %v", ErrExecQuery, err)
	}

	return nil
}

// GetBreaks получает окна перерывов барбера (включая выключенные)
func (r *Repository) GetBreaks(ctx context.Context, barberID int64) ([]domain.BreakWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("day_key", "break_type", "start_time", "end_time", "enabled").
		From("break_windows").
		Where(squirrel.Eq{"barber_id": barberID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBreaks - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBreaks - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	breaks := make([]domain.BreakWindow, 0)
	for rows.Next() {
		var w domain.BreakWindow
		if err := rows.Scan(&w.Day, &w.Type, &w.StartTime, &w.EndTime, &w.Enabled); err != nil {
			return nil, fmt.Errorf("%w: GetBreaks - scan row: %v", ErrScanRow, err)
		}
		breaks = append(breaks, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBreaks - rows error: %v", ErrScanRow, err)
	}

	return breaks, nil
}

// SaveBreaks заменяет окна перерывов барбера целиком
func (r *Repository) SaveBreaks(ctx context.Context, barberID int64, breaks []domain.BreakWindow) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("break_windows").
		Where(squirrel.Eq{"barber_id": barberID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SaveBreaks - build delete query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SaveBreaks - delete old windows: %v", ErrExecQuery, err)
	}

	if len(breaks) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("break_windows").
		Columns("barber_id", "day_key", "break_type", "start_time", "end_time", "enabled")
	for _, w := range breaks {
		insertBuilder = insertBuilder.Values(barberID, w.Day, w.Type, w.StartTime, w.EndTime, w.Enabled)
	}

	query, args, err = insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: SaveBreaks - build insert query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SaveBreaks - insert windows: %v", ErrExecQuery, err)
	}

	return nil
}

// GetBuffer получает настройку буфера до записи.
// Отсутствие строки означает выключенный буфер.
func (r *Repository) GetBuffer(ctx context.Context, barberID int64) (domain.ArrivalBuffer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("enabled", "minutes").
		From("arrival_buffers").
		Where(squirrel.Eq{"barber_id": barberID}).
		ToSql()

	if err != nil {
		return domain.ArrivalBuffer{}, fmt.Errorf("%w: GetBuffer - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return domain.ArrivalBuffer{}, fmt.Errorf("%w: GetBuffer - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var buffer domain.ArrivalBuffer
	if rows.Next() {
		if err := rows.Scan(&buffer.Enabled, &buffer.Minutes); err != nil {
			return domain.ArrivalBuffer{}, fmt.Errorf("%w: GetBuffer - scan row: %v", ErrScanRow, err)
		}
	}

	if err := rows.Err(); err != nil {
		return domain.ArrivalBuffer{}, fmt.Errorf("%w: GetBuffer - rows error: %v", ErrScanRow, err)
	}

	return buffer, nil
}

// SaveBuffer сохраняет настройку буфера (upsert по барберу)
func (r *Repository) SaveBuffer(ctx context.Context, barberID int64, buffer domain.ArrivalBuffer) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("arrival_buffers").
		Columns("barber_id", "enabled", "minutes").
		Values(barberID, buffer.Enabled, buffer.Minutes).
		Suffix("ON CONFLICT (barber_id) DO UPDATE SET enabled = EXCLUDED.enabled, minutes = EXCLUDED.minutes").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SaveBuffer - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SaveBuffer - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetBarberSchedule собирает полный snapshot настроек доступности барбера
func (r *Repository) GetBarberSchedule(ctx context.Context, barberID int64) (*domain.BarberSchedule, error) {
	weekly, err := r.GetWeekly(ctx, barberID)
	if err != nil {
		return nil, err
	}

	breaks, err := r.GetBreaks(ctx, barberID)
	if err != nil {
		return nil, err
	}

	buffer, err := r.GetBuffer(ctx, barberID)
	if err != nil {
		return nil, err
	}

	return &domain.BarberSchedule{
		BarberID: barberID,
		Weekly:   weekly,
		Breaks:   breaks,
		Buffer:   buffer,
	}, nil
}

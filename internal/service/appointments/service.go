package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/BarberLinkDO/BookingService/internal/domain"
	appointmentRepo "github.com/BarberLinkDO/BookingService/internal/infra/storage/appointment"
	directoryClient "github.com/BarberLinkDO/BookingService/internal/integrations/directory"
	"github.com/BarberLinkDO/BookingService/internal/integrations/notify"
	"github.com/BarberLinkDO/BookingService/internal/service/appointments/models"
)

// Service сервис жизненного цикла записей: просмотр, отмена, завершение,
// неявка, скрытие из истории
type Service struct {
	appointmentRepo AppointmentRepository
	directory       DirectoryClient
	notifyClient    NotifyClient
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	directory DirectoryClient,
	notifyClient NotifyClient,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		directory:       directory,
		notifyClient:    notifyClient,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// GetByID получает запись по ID.
// Доступ: клиент записи, барбер записи или владелец барбершопа.
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d", id, userID)

	appt, err := s.getAppointment(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if err := s.checkUserAccess(ctx, appt, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", userID, id)
		return nil, err
	}

	return models.FromDomainAppointment(appt), nil
}

// GetClientAppointments получает историю записей клиента.
// Клиент видит только собственную историю; скрытые записи исключаются.
func (s *Service) GetClientAppointments(ctx context.Context, req *models.GetClientAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetClientAppointments: fetching appointments for client=%d, user=%d", req.ClientID, req.UserID)

	if req.UserID != req.ClientID {
		s.logger.Warn("GetClientAppointments: user=%d is not client=%d", req.UserID, req.ClientID)
		return nil, ErrAccessDenied
	}

	var domainStatus *domain.AppointmentStatus
	if req.Status != nil {
		status, err := models.ToDomainAppointmentStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetClientAppointments: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	appointments, err := s.appointmentRepo.GetByClientID(ctx, req.ClientID, req.IncludeHidden, domainStatus)
	if err != nil {
		s.logger.Error("GetClientAppointments: repository error for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: GetClientAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientAppointments: fetched %d appointments for client=%d", len(appointments), req.ClientID)
	return models.FromDomainAppointmentList(appointments), nil
}

// GetShopAppointments получает записи барбершопа с фильтрацией.
// Доступ: владелец барбершопа или барбер этого барбершопа.
func (s *Service) GetShopAppointments(ctx context.Context, req *models.GetShopAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetShopAppointments: fetching appointments for shop=%d, user=%d", req.ShopID, req.UserID)

	if err := s.checkShopAccess(ctx, req.ShopID, req.UserID); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetShopAppointments: invalid filter for shop=%d: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	appointments, err := s.appointmentRepo.GetByShopWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetShopAppointments: repository error for shop=%d: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: GetShopAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetShopAppointments: fetched %d appointments for shop=%d", len(appointments), req.ShopID)
	return models.FromDomainAppointmentList(appointments), nil
}

// Cancel отменяет запись.
// Клиент отменяет свою запись (cancelled_by_client), барбер или владелец -
// со статусом cancelled_by_barber и уведомлением клиента о переносе.
// Синтетические маркеры расписания удаляются физически.
func (s *Service) Cancel(ctx context.Context, appointmentID int64, req *models.CancelAppointmentRequest) error {
	s.logger.Info("Cancel: cancelling appointment id=%d by user=%d", appointmentID, req.UserID)

	appt, err := s.getAppointment(ctx, "Cancel", appointmentID)
	if err != nil {
		return err
	}

	if !appt.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%d cannot be cancelled, status=%s", appointmentID, appt.Status)
		return ErrCannotCancel
	}

	// Маркеры выходного / раннего ухода снимаются удалением строки
	if appt.Status.IsSynthetic() {
		if req.UserID != appt.BarberID {
			if err := s.checkShopAccess(ctx, appt.ShopID, req.UserID); err != nil {
				return ErrAccessDenied
			}
		}
		if err := s.appointmentRepo.Delete(ctx, appointmentID); err != nil {
			s.logger.Error("Cancel: failed to delete marker id=%d: %v", appointmentID, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}
		s.logger.Info("Cancel: removed %s marker id=%d", appt.Status, appointmentID)
		return nil
	}

	var cancelStatus domain.AppointmentStatus
	barberSide := false

	if appt.ClientID == req.UserID {
		cancelStatus = domain.StatusCancelledByClient
	} else {
		if err := s.checkShopAccess(ctx, appt.ShopID, req.UserID); err != nil {
			s.logger.Warn("Cancel: access denied for user=%d to cancel appointment id=%d", req.UserID, appointmentID)
			return ErrAccessDenied
		}
		cancelStatus = domain.StatusCancelledByBarber
		barberSide = true
	}

	if err := s.appointmentRepo.Cancel(ctx, appointmentID, cancelStatus); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Отмена барбером: предлагаем клиенту перенести визит.
	// Недоступность NotifyService отмену не откатывает.
	if barberSide {
		notifyErr := s.notifyClient.SendRescheduleProposal(ctx, notify.RescheduleProposalRequest{
			ClientID:      appt.ClientID,
			AppointmentID: appt.ID,
			ShopID:        appt.ShopID,
			BarberID:      appt.BarberID,
			Date:          appt.Date.Format(domain.DateFormat),
			StartTime:     appt.StartTime.String(),
			Reason:        "cancelled_by_barber",
		})
		if notifyErr != nil && !errors.Is(notifyErr, notify.ErrServiceDegraded) {
			s.logger.Error("Cancel: failed to notify client=%d: %v", appt.ClientID, notifyErr)
		}
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d with status=%s", appointmentID, cancelStatus)
	return nil
}

// Complete помечает запись выполненной.
// Доступ: барбер записи или владелец барбершопа. Клиенту после завершения
// отправляется предложение оставить отзыв.
func (s *Service) Complete(ctx context.Context, appointmentID int64, req *models.CompleteAppointmentRequest) error {
	s.logger.Info("Complete: completing appointment id=%d by user=%d", appointmentID, req.UserID)

	appt, err := s.getAppointment(ctx, "Complete", appointmentID)
	if err != nil {
		return err
	}

	if err := s.checkBarberSideAccess(ctx, appt, req.UserID); err != nil {
		s.logger.Warn("Complete: access denied for user=%d to appointment id=%d", req.UserID, appointmentID)
		return err
	}

	if !appt.CanBeCompleted() {
		s.logger.Warn("Complete: appointment id=%d cannot be completed, status=%s", appointmentID, appt.Status)
		return ErrCannotComplete
	}

	actualEnd := s.timeProvider.Now()
	if req.ActualEndTime != nil {
		actualEnd = *req.ActualEndTime
	}

	if err := s.appointmentRepo.Complete(ctx, appointmentID, actualEnd, req.NotesBarber); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("Complete: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Complete - repository error: %v", ErrInternal, err)
	}

	notifyErr := s.notifyClient.SendReviewPrompt(ctx, notify.ReviewPromptRequest{
		ClientID:      appt.ClientID,
		AppointmentID: appt.ID,
		ShopID:        appt.ShopID,
		BarberID:      appt.BarberID,
		ServiceName:   appt.ServiceName,
	})
	if notifyErr != nil && !errors.Is(notifyErr, notify.ErrServiceDegraded) {
		s.logger.Error("Complete: failed to send review prompt for client=%d: %v", appt.ClientID, notifyErr)
	}

	s.logger.Info("Complete: successfully completed appointment id=%d", appointmentID)
	return nil
}

// MarkNoShow помечает запись неявкой клиента.
// Доступ: барбер записи или владелец барбершопа.
func (s *Service) MarkNoShow(ctx context.Context, appointmentID int64, userID int64) error {
	s.logger.Info("MarkNoShow: marking appointment id=%d by user=%d", appointmentID, userID)

	appt, err := s.getAppointment(ctx, "MarkNoShow", appointmentID)
	if err != nil {
		return err
	}

	if err := s.checkBarberSideAccess(ctx, appt, userID); err != nil {
		s.logger.Warn("MarkNoShow: access denied for user=%d to appointment id=%d", userID, appointmentID)
		return err
	}

	if !appt.CanBeMarkedNoShow() {
		s.logger.Warn("MarkNoShow: appointment id=%d cannot be marked, status=%s", appointmentID, appt.Status)
		return ErrCannotMarkNoShow
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, appointmentID, domain.StatusNoShow); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("MarkNoShow: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: MarkNoShow - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("MarkNoShow: successfully marked appointment id=%d", appointmentID)
	return nil
}

// Hide скрывает завершенную запись из истории клиента.
// Только сам клиент и только для терминальных статусов.
func (s *Service) Hide(ctx context.Context, appointmentID int64, userID int64) error {
	s.logger.Info("Hide: hiding appointment id=%d for user=%d", appointmentID, userID)

	appt, err := s.getAppointment(ctx, "Hide", appointmentID)
	if err != nil {
		return err
	}

	if appt.ClientID != userID {
		s.logger.Warn("Hide: access denied for user=%d to appointment id=%d", userID, appointmentID)
		return ErrAccessDenied
	}

	if !appt.CanBeHidden() {
		s.logger.Warn("Hide: appointment id=%d is not terminal, status=%s", appointmentID, appt.Status)
		return ErrCannotHide
	}

	if err := s.appointmentRepo.SetHiddenForClient(ctx, appointmentID, true); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("Hide: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Hide - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Hide: successfully hid appointment id=%d", appointmentID)
	return nil
}

// Вспомогательные методы

func (s *Service) getAppointment(ctx context.Context, method string, id int64) (*domain.Appointment, error) {
	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found", method, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", method, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return appt, nil
}

// checkUserAccess проверяет, что пользователь имеет доступ к записи:
// клиент записи, барбер записи или владелец барбершопа
func (s *Service) checkUserAccess(ctx context.Context, appt *domain.Appointment, userID int64) error {
	if appt.ClientID == userID || appt.BarberID == userID {
		return nil
	}

	if err := s.checkShopAccess(ctx, appt.ShopID, userID); err != nil {
		return ErrAccessDenied
	}

	return nil
}

// checkBarberSideAccess проверяет, что пользователь - барбер записи
// или владелец барбершопа
func (s *Service) checkBarberSideAccess(ctx context.Context, appt *domain.Appointment, userID int64) error {
	if appt.BarberID == userID {
		return nil
	}

	if err := s.checkShopAccess(ctx, appt.ShopID, userID); err != nil {
		return ErrAccessDenied
	}

	return nil
}

// checkShopAccess проверяет, что пользователь - владелец барбершопа
// или барбер, закрепленный за ним
func (s *Service) checkShopAccess(ctx context.Context, shopID int64, userID int64) error {
	shop, err := s.directory.GetShop(ctx, shopID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrShopNotFound) {
			s.logger.Warn("checkShopAccess: shop id=%d not found", shopID)
			return ErrShopNotFound
		}
		s.logger.Error("checkShopAccess: failed to get shop id=%d: %v", shopID, err)
		return fmt.Errorf("%w: checkShopAccess - failed to get shop: %v", ErrInternal, err)
	}

	if shop.OwnerID == userID {
		return nil
	}

	barber, err := s.directory.GetBarber(ctx, userID)
	if err == nil && barber.WorksAt(shopID) {
		return nil
	}

	s.logger.Warn("checkShopAccess: user=%d has no access to shop=%d", userID, shopID)
	return ErrAccessDenied
}

package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ReservationEngine/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ReservationEngine/internal/service/reservations/models"
)

// Service чтение бронирований для административной части
type Service struct {
	repo    ReservationRepository
	catalog CatalogClient
	logger  Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(repo ReservationRepository, catalog CatalogClient, logger Logger) *Service {
	return &Service{
		repo:    repo,
		catalog: catalog,
		logger:  logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d", id)

	if id <= 0 {
		return nil, fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	names := newServiceNames(s.catalog, s.logger)
	return models.FromDomainReservation(res, names.lookup(ctx, res.ServiceID)), nil
}

// ListByDate бронирования даты по времени начала; отменённые только по запросу
func (s *Service) ListByDate(ctx context.Context, req *models.ListReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("ListByDate: date=%s, status=%v, include_inactive=%t",
		req.Date.Format(domain.DateFormat), req.Status, req.IncludeInactive)

	filter, status, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListByDate: invalid status=%v", req.Status)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	items, err := s.repo.ListByDate(ctx, filter)
	if err != nil {
		s.logger.Error("ListByDate: repository error for date=%s: %v", req.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: ListByDate - repository error: %v", ErrInternal, err)
	}

	names := newServiceNames(s.catalog, s.logger)
	result := &models.ReservationListResponse{
		Date:         req.Date.Format(domain.DateFormat),
		Reservations: make([]*models.ReservationResponse, 0, len(items)),
	}
	for _, item := range items {
		if status != nil && item.Status != *status {
			continue
		}
		result.Reservations = append(result.Reservations, models.FromDomainReservation(item, names.lookup(ctx, item.ServiceID)))
	}

	s.logger.Info("ListByDate: found %d reservations for date=%s", len(result.Reservations), result.Date)
	return result, nil
}

// serviceNames запоминает названия услуг в пределах одного запроса.
// Недоступный каталог не ломает выдачу: название остаётся пустым.
type serviceNames struct {
	catalog CatalogClient
	logger  Logger
	names   map[int64]string
}

func newServiceNames(catalog CatalogClient, logger Logger) *serviceNames {
	return &serviceNames{catalog: catalog, logger: logger, names: make(map[int64]string)}
}

func (n *serviceNames) lookup(ctx context.Context, serviceID int64) string {
	if name, ok := n.names[serviceID]; ok {
		return name
	}

	name := ""
	service, err := n.catalog.GetService(ctx, serviceID)
	if err != nil {
		n.logger.Warn("serviceNames: failed to get service id=%d: %v", serviceID, err)
	} else {
		name = service.Name
	}

	n.names[serviceID] = name
	return name
}

package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	catalogRepo "barbershop/database/repository/catalog"
	"barbershop/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrServiceNotFound      = errors.New("service not found")
	ErrProfessionalNotFound = errors.New("professional not found")
)

// ValidationError reports a rejected catalogue write.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// CatalogService serves the shop's services and professionals lists.
type CatalogService interface {
	Services(ctx context.Context, shopID string) ([]models.Service, error)
	FindService(ctx context.Context, shopID, serviceID string) (*models.Service, error)
	ReplaceServices(ctx context.Context, shopID string, services []models.Service) ([]models.Service, error)

	Professionals(ctx context.Context, shopID string) ([]models.Professional, error)
	FindProfessional(ctx context.Context, shopID, professionalID string) (*models.Professional, error)
	CreateProfessional(ctx context.Context, shopID string, p models.Professional) (*models.Professional, error)
	UpdateProfessional(ctx context.Context, shopID, professionalID string, p models.Professional) (*models.Professional, error)
	DeleteProfessional(ctx context.Context, shopID, professionalID string) error
}

type DefaultCatalogService struct {
	Repo   catalogRepo.CatalogRepository
	Logger *zap.Logger
}

func NewCatalogService(repo catalogRepo.CatalogRepository, logger *zap.Logger) *DefaultCatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultCatalogService{Repo: repo, Logger: logger}
}

// Services returns the shop's services, seeding the default menu the first
// time a shop is read.
func (s *DefaultCatalogService) Services(ctx context.Context, shopID string) ([]models.Service, error) {
	services, err := s.Repo.Services(ctx, shopID)
	if errors.Is(err, catalogRepo.ErrCatalogMissing) {
		services = DefaultServices()
		if err := s.Repo.SaveServices(ctx, shopID, services); err != nil {
			return nil, fmt.Errorf("seed services: %w", err)
		}
		s.Logger.Info("seeded default services", zap.String("shopID", shopID))
		return services, nil
	}
	if err != nil {
		return nil, err
	}
	return services, nil
}

func (s *DefaultCatalogService) FindService(ctx context.Context, shopID, serviceID string) (*models.Service, error) {
	services, err := s.Services(ctx, shopID)
	if err != nil {
		return nil, err
	}
	for i := range services {
		if services[i].ID == serviceID && services[i].Active {
			return &services[i], nil
		}
	}
	return nil, ErrServiceNotFound
}

// ReplaceServices overwrites the whole menu, as the owner screen saves it.
func (s *DefaultCatalogService) ReplaceServices(ctx context.Context, shopID string, services []models.Service) ([]models.Service, error) {
	seen := make(map[string]bool, len(services))
	for i := range services {
		svc := &services[i]
		svc.Name = strings.TrimSpace(svc.Name)
		if svc.Name == "" {
			return nil, &ValidationError{Field: "name", Message: "service name is required"}
		}
		if svc.Duration <= 0 {
			return nil, &ValidationError{Field: "duration", Message: fmt.Sprintf("service %q needs a positive duration", svc.Name)}
		}
		if svc.Price < 0 {
			return nil, &ValidationError{Field: "price", Message: fmt.Sprintf("service %q has a negative price", svc.Name)}
		}
		if svc.ID == "" {
			svc.ID = uuid.New().String()
		}
		if seen[svc.ID] {
			return nil, &ValidationError{Field: "id", Message: fmt.Sprintf("duplicate service id %q", svc.ID)}
		}
		seen[svc.ID] = true
	}
	if err := s.Repo.SaveServices(ctx, shopID, services); err != nil {
		return nil, err
	}
	return services, nil
}

func (s *DefaultCatalogService) Professionals(ctx context.Context, shopID string) ([]models.Professional, error) {
	professionals, err := s.Repo.Professionals(ctx, shopID)
	if errors.Is(err, catalogRepo.ErrCatalogMissing) {
		professionals = DefaultProfessionals()
		if err := s.Repo.SaveProfessionals(ctx, shopID, professionals); err != nil {
			return nil, fmt.Errorf("seed professionals: %w", err)
		}
		s.Logger.Info("seeded default professionals", zap.String("shopID", shopID))
		return professionals, nil
	}
	if err != nil {
		return nil, err
	}
	return professionals, nil
}

func (s *DefaultCatalogService) FindProfessional(ctx context.Context, shopID, professionalID string) (*models.Professional, error) {
	professionals, err := s.Professionals(ctx, shopID)
	if err != nil {
		return nil, err
	}
	for i := range professionals {
		if professionals[i].ID == professionalID {
			return &professionals[i], nil
		}
	}
	return nil, ErrProfessionalNotFound
}

func (s *DefaultCatalogService) CreateProfessional(ctx context.Context, shopID string, p models.Professional) (*models.Professional, error) {
	if err := validateProfessional(&p); err != nil {
		return nil, err
	}
	professionals, err := s.Professionals(ctx, shopID)
	if err != nil {
		return nil, err
	}
	p.ID = uuid.New().String()
	professionals = append(professionals, p)
	if err := s.Repo.SaveProfessionals(ctx, shopID, professionals); err != nil {
		return nil, err
	}
	s.Logger.Info("professional created", zap.String("shopID", shopID), zap.String("professionalID", p.ID))
	return &p, nil
}

func (s *DefaultCatalogService) UpdateProfessional(ctx context.Context, shopID, professionalID string, p models.Professional) (*models.Professional, error) {
	if err := validateProfessional(&p); err != nil {
		return nil, err
	}
	professionals, err := s.Professionals(ctx, shopID)
	if err != nil {
		return nil, err
	}
	for i := range professionals {
		if professionals[i].ID != professionalID {
			continue
		}
		p.ID = professionalID
		professionals[i] = p
		if err := s.Repo.SaveProfessionals(ctx, shopID, professionals); err != nil {
			return nil, err
		}
		return &p, nil
	}
	return nil, ErrProfessionalNotFound
}

func (s *DefaultCatalogService) DeleteProfessional(ctx context.Context, shopID, professionalID string) error {
	professionals, err := s.Professionals(ctx, shopID)
	if err != nil {
		return err
	}
	for i := range professionals {
		if professionals[i].ID != professionalID {
			continue
		}
		professionals = append(professionals[:i], professionals[i+1:]...)
		return s.Repo.SaveProfessionals(ctx, shopID, professionals)
	}
	return ErrProfessionalNotFound
}

func validateProfessional(p *models.Professional) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Email = strings.TrimSpace(p.Email)
	if p.Name == "" {
		return &ValidationError{Field: "name", Message: "professional name is required"}
	}
	if p.Email != "" && !strings.Contains(p.Email, "@") {
		return &ValidationError{Field: "email", Message: "invalid email"}
	}
	return nil
}

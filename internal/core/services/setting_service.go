package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/cari_ledger/internal/apperrors"
	"github.com/SscSPs/cari_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/cari_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cari_ledger/internal/core/ports/services"
	"github.com/SscSPs/cari_ledger/internal/dto"
	"github.com/shopspring/decimal"
)

// DefaultSettings are inserted by InitializeDefaults when missing.
var DefaultSettings = []domain.Setting{
	{Name: "company_name", Value: "", SettingType: domain.SettingString, Category: "company", Description: "Company name shown on documents"},
	{Name: "company_tax_number", Value: "", SettingType: domain.SettingString, Category: "company", Description: "Company tax number"},
	{Name: "company_tax_office", Value: "", SettingType: domain.SettingString, Category: "company", Description: "Company tax office"},
	{Name: "currency", Value: "TRY", SettingType: domain.SettingString, Category: "general", Description: "Display currency code"},
	{Name: "date_format", Value: "DD.MM.YYYY", SettingType: domain.SettingString, Category: "general", Description: "Display date format"},
	{Name: "decimal_places", Value: "2", SettingType: domain.SettingNumber, Category: "general", Description: "Decimal places used when displaying amounts"},
	{Name: "default_payment_method", Value: string(domain.Cash), SettingType: domain.SettingString, Category: "movements", Description: "Payment method preselected for new movements"},
	{Name: "allow_negative_balance", Value: "true", SettingType: domain.SettingBoolean, Category: "accounts", Description: "Whether account balances may go below zero"},
	{Name: "due_date_reminder_days", Value: "7", SettingType: domain.SettingNumber, Category: "movements", Description: "Days before a due date to flag a movement"},
	{Name: "dashboard_widgets", Value: `["balances","recent_movements","summary"]`, SettingType: domain.SettingJSON, Category: "ui", Description: "Widgets shown on the dashboard"},
}

type settingService struct {
	BaseService
	settingRepo portsrepo.SettingRepository
	cache       portsrepo.SettingCache
}

// SettingServiceOption is a functional option for configuring the setting service
type SettingServiceOption func(*settingService)

// WithSettingCache puts a read-through cache in front of the repository.
func WithSettingCache(cache portsrepo.SettingCache) SettingServiceOption {
	return func(s *settingService) {
		s.cache = cache
	}
}

// NewSettingService creates the settings store service.
func NewSettingService(repo portsrepo.SettingRepository, options ...SettingServiceOption) portssvc.SettingSvcFacade {
	svc := &settingService{settingRepo: repo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.SettingSvcFacade = (*settingService)(nil)

func (s *settingService) GetSetting(ctx context.Context, name string) (*domain.Setting, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, name)
		if err != nil {
			s.LogWarn(ctx, "Setting cache read failed", slog.String("name", name), slog.String("error", err.Error()))
		} else if ok {
			return cached, nil
		}
	}

	setting, err := s.settingRepo.FindSettingByName(ctx, name)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find setting", slog.String("name", name))
		}
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, *setting); err != nil {
			s.LogWarn(ctx, "Setting cache write failed", slog.String("name", name), slog.String("error", err.Error()))
		}
	}
	return setting, nil
}

func (s *settingService) SetSetting(ctx context.Context, req dto.SettingRequest) (*domain.Setting, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if req.SettingType == "" {
		req.SettingType = domain.SettingString
	}
	if err := checkSettingValue(req.SettingType, req.Value); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	setting := domain.Setting{
		Name:        req.Name,
		Value:       req.Value,
		SettingType: req.SettingType,
		Category:    req.Category,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if setting.Category == "" {
		setting.Category = "general"
	}

	if err := s.settingRepo.UpsertSetting(ctx, setting); err != nil {
		s.LogError(ctx, err, "Failed to save setting", slog.String("name", setting.Name))
		return nil, err
	}
	s.invalidate(ctx, setting.Name)

	stored, err := s.settingRepo.FindSettingByName(ctx, setting.Name)
	if err != nil {
		s.LogError(ctx, err, "Failed to reload setting", slog.String("name", setting.Name))
		return &setting, nil
	}
	s.LogInfo(ctx, "Setting saved", slog.String("name", setting.Name))
	return stored, nil
}

func (s *settingService) DeleteSetting(ctx context.Context, name string) error {
	if err := s.settingRepo.DeleteSetting(ctx, name); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete setting", slog.String("name", name))
		}
		return err
	}
	s.invalidate(ctx, name)
	s.LogInfo(ctx, "Setting deleted", slog.String("name", name))
	return nil
}

func (s *settingService) ListSettings(ctx context.Context) ([]domain.Setting, error) {
	settings, err := s.settingRepo.ListSettings(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list settings")
		return nil, err
	}
	if settings == nil {
		return []domain.Setting{}, nil
	}
	return settings, nil
}

func (s *settingService) ListSettingsByCategory(ctx context.Context, category string) ([]domain.Setting, error) {
	settings, err := s.settingRepo.ListSettingsByCategory(ctx, category)
	if err != nil {
		s.LogError(ctx, err, "Failed to list settings by category", slog.String("category", category))
		return nil, err
	}
	if settings == nil {
		return []domain.Setting{}, nil
	}
	return settings, nil
}

func (s *settingService) BulkSetSettings(ctx context.Context, reqs []dto.SettingRequest) []domain.BulkSettingResult {
	results := make([]domain.BulkSettingResult, 0, len(reqs))
	for _, req := range reqs {
		result := domain.BulkSettingResult{Name: req.Name, Success: true}
		if _, err := s.SetSetting(ctx, req); err != nil {
			result.Success = false
			result.Error = err.Error()
		}
		results = append(results, result)
	}
	return results
}

func (s *settingService) InitializeDefaults(ctx context.Context) (int, error) {
	now := time.Now().UTC()
	inserted := make([]string, 0, len(DefaultSettings))
	for _, def := range DefaultSettings {
		def.CreatedAt = now
		def.UpdatedAt = now
		ok, err := s.settingRepo.InsertSettingIfMissing(ctx, def)
		if err != nil {
			s.LogError(ctx, err, "Failed to insert default setting", slog.String("name", def.Name))
			return len(inserted), err
		}
		if ok {
			inserted = append(inserted, def.Name)
		}
	}
	s.invalidate(ctx, inserted...)
	s.LogInfo(ctx, "Default settings initialized", slog.Int("inserted", len(inserted)))
	return len(inserted), nil
}

func (s *settingService) invalidate(ctx context.Context, names ...string) {
	if s.cache == nil || len(names) == 0 {
		return
	}
	if err := s.cache.Invalidate(ctx, names...); err != nil {
		s.LogWarn(ctx, "Setting cache invalidation failed", slog.String("error", err.Error()))
	}
}

// checkSettingValue verifies that value parses as settingType.
func checkSettingValue(settingType domain.SettingType, value string) error {
	switch settingType {
	case domain.SettingString:
		return nil
	case domain.SettingNumber:
		if _, err := decimal.NewFromString(value); err != nil {
			return fmt.Errorf("%w: value %q is not a number", apperrors.ErrValidation, value)
		}
	case domain.SettingBoolean:
		if _, err := strconv.ParseBool(value); err != nil {
			return fmt.Errorf("%w: value %q is not a boolean", apperrors.ErrValidation, value)
		}
	case domain.SettingJSON:
		if !json.Valid([]byte(value)) {
			return fmt.Errorf("%w: value is not valid JSON", apperrors.ErrValidation)
		}
	default:
		return fmt.Errorf("%w: unknown setting type %q", apperrors.ErrValidation, settingType)
	}
	return nil
}

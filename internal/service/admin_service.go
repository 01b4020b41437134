// FILE: internal/service/admin_service.go
package service

import (
	"context"
	"encoding/json"
	"fmt"

	"faq-assist-be/internal/dto"
	"faq-assist-be/internal/entity"
	"faq-assist-be/internal/pkg/logger"
	"faq-assist-be/internal/repository/contract"
	"faq-assist-be/pkg/events"
)

// IAdminService defines the corpus and config administration surface
type IAdminService interface {
	ListFaq() ([]entity.Faq, error)
	CreateFaq(ctx context.Context, request *dto.CreateFaqRequest) (*entity.Faq, error)
	UpdateFaq(ctx context.Context, id int64, request *dto.UpdateFaqRequest) (*entity.Faq, error)
	DeleteFaq(ctx context.Context, id int64) error
	GetConfig() dto.ConfigResponse
	UpdateConfig(ctx context.Context, request *dto.UpdateConfigRequest) dto.ConfigResponse
	GetLogs(level string, limit, offset int) ([]logger.LogEntry, error)
}

// adminService mutates the corpus through the repository, rebuilds the
// retrieval index after every change, and publishes an audit event for
// each mutation.
type adminService struct {
	faqRepo    contract.IFaqRepository
	faqService IFaqService
	config     IRuntimeConfigService
	publisher  IPublisherService
	logger     logger.ILogger
}

func NewAdminService(
	faqRepo contract.IFaqRepository,
	faqService IFaqService,
	config IRuntimeConfigService,
	publisher IPublisherService,
	log logger.ILogger,
) IAdminService {
	return &adminService{
		faqRepo:    faqRepo,
		faqService: faqService,
		config:     config,
		publisher:  publisher,
		logger:     log,
	}
}

func (s *adminService) ListFaq() ([]entity.Faq, error) {
	return s.faqRepo.FindAll()
}

func (s *adminService) CreateFaq(ctx context.Context, request *dto.CreateFaqRequest) (*entity.Faq, error) {
	created, err := s.faqRepo.Create(&entity.Faq{
		Question: request.Question,
		Answer:   request.Answer,
		Category: request.Category,
		Module:   request.Module,
		Source:   request.Source,
	})
	if err != nil {
		return nil, fmt.Errorf("create faq: %w", err)
	}
	if err := s.faqService.Reindex(); err != nil {
		return nil, err
	}

	s.audit(ctx, events.TypeFaqCreated, map[string]interface{}{"id": created.Id})
	return created, nil
}

func (s *adminService) UpdateFaq(ctx context.Context, id int64, request *dto.UpdateFaqRequest) (*entity.Faq, error) {
	updated, err := s.faqRepo.Update(id, &entity.Faq{
		Question: request.Question,
		Answer:   request.Answer,
		Category: request.Category,
		Module:   request.Module,
		Source:   request.Source,
	})
	if err != nil {
		return nil, fmt.Errorf("update faq %d: %w", id, err)
	}
	if err := s.faqService.Reindex(); err != nil {
		return nil, err
	}

	s.audit(ctx, events.TypeFaqUpdated, map[string]interface{}{"id": id})
	return updated, nil
}

func (s *adminService) DeleteFaq(ctx context.Context, id int64) error {
	if err := s.faqRepo.Delete(id); err != nil {
		return fmt.Errorf("delete faq %d: %w", id, err)
	}
	if err := s.faqService.Reindex(); err != nil {
		return err
	}

	s.audit(ctx, events.TypeFaqDeleted, map[string]interface{}{"id": id})
	return nil
}

func (s *adminService) GetConfig() dto.ConfigResponse {
	return toConfigResponse(s.config.Snapshot())
}

func (s *adminService) UpdateConfig(ctx context.Context, request *dto.UpdateConfigRequest) dto.ConfigResponse {
	updated := s.config.Update(request)
	s.audit(ctx, events.TypeConfigUpdated, map[string]interface{}{
		"ragDefaultTopN":   updated.RagDefaultTopN,
		"ragRetrievalTopK": updated.RagRetrievalTopK,
		"ragRrfK":          updated.RagRrfK,
		"escalateAfter":    updated.EscalateAfter,
	})
	return toConfigResponse(updated)
}

func (s *adminService) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	return s.logger.GetLogs(level, limit, offset)
}

// audit publishes one mutation record onto the audit topic. The admin
// operation itself never fails on a bus error.
func (s *adminService) audit(ctx context.Context, eventType string, details map[string]interface{}) {
	ev := events.NewAdminAudit(eventType, details)
	payload, err := json.Marshal(auditMessage{
		EventType: ev.EventType(),
		Details:   ev.Payload(),
	})
	if err != nil {
		return
	}
	if err := s.publisher.Publish(ctx, payload); err != nil {
		s.logger.Warn("AdminService", "Failed to publish audit event", map[string]interface{}{
			"eventType": eventType,
			"error":     err.Error(),
		})
	}
}

func toConfigResponse(cfg RuntimeConfig) dto.ConfigResponse {
	return dto.ConfigResponse{
		RagDefaultTopN:   cfg.RagDefaultTopN,
		RagRetrievalTopK: cfg.RagRetrievalTopK,
		RagRrfK:          cfg.RagRrfK,
		EscalateAfter:    cfg.EscalateAfter,
		ContactName:      cfg.ContactName,
		ContactPhone:     cfg.ContactPhone,
		ContactEmail:     cfg.ContactEmail,
	}
}

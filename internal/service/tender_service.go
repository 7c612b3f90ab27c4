package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"tendertrack/backend/internal/dto"
	"tendertrack/backend/internal/model"
	"tendertrack/backend/internal/repository"
	"tendertrack/backend/pkg/clock"
)

// ── 合同模块业务错误 ──

var (
	ErrTenderNotFound   = errors.New("合同不存在")
	ErrTenderIDTaken    = errors.New("该招标编号已被占用")
	ErrNotAuthenticated = errors.New("未认证")
)

// 最近列表返回条数
const recentTenderCount = 5

// TenderService 合同业务接口
type TenderService interface {
	Create(ctx context.Context, actor model.ActorSnapshot, req *dto.CreateTenderRequest) (*dto.TenderResponse, error)
	GetByID(ctx context.Context, id string) (*dto.TenderResponse, error)
	List(ctx context.Context) ([]dto.TenderResponse, error)
	ListRecent(ctx context.Context) ([]dto.TenderResponse, error)
	Update(ctx context.Context, actor model.ActorSnapshot, id string, req *dto.UpdateTenderRequest) (*dto.TenderResponse, error)
	Delete(ctx context.Context, actor model.ActorSnapshot, id string) error
	// CheckTenderID 大小写不敏感查重；excludeID 用于编辑场景排除自身
	CheckTenderID(ctx context.Context, tenderID string, excludeID string) (bool, error)
}

type tenderService struct {
	repo   *repository.Repository
	clk    clock.Clock
	logger *zap.Logger
}

// NewTenderService 创建 TenderService 实例
func NewTenderService(repo *repository.Repository, clk clock.Clock, logger *zap.Logger) TenderService {
	return &tenderService{repo: repo, clk: clk, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *tenderService) Create(ctx context.Context, actor model.ActorSnapshot, req *dto.CreateTenderRequest) (*dto.TenderResponse, error) {
	if actor.Name == "" && actor.Email == "" {
		return nil, ErrNotAuthenticated
	}

	taken, err := s.repo.Tender.ExistsByTenderID(ctx, req.TenderID, "")
	if err != nil {
		s.logger.Error("招标编号查重失败", zap.Error(err))
		return nil, err
	}
	if taken {
		return nil, ErrTenderIDTaken
	}

	now := s.clk.Now()
	tender := &model.Tender{
		TenderID:         req.TenderID,
		Title:            req.Title,
		HospitalName:     req.HospitalName,
		HospitalAddress:  req.HospitalAddress,
		Country:          req.Country,
		City:             req.City,
		PostalCode:       req.PostalCode,
		ContactPerson:    req.ContactPerson,
		Email:            req.Email,
		Phone:            req.Phone,
		HospitalType:     req.HospitalType,
		BedCapacity:      req.BedCapacity,
		Medicines:        toMedicineList(req.Medicines),
		Stakeholders:     toStakeholderList(req.Stakeholders),
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		OriginalEndDate:  req.EndDate, // 创建时固化，后续延期不再变动
		ContractValue:    req.ContractValue,
		PaymentTerms:     req.PaymentTerms,
		DeliverySchedule: req.DeliverySchedule,
		SpecialTerms:     req.SpecialTerms,
		RenewalOption:    req.RenewalOption,
		Status:           InitialStatus(now, req.StartDate, req.EndDate),
		CreatedBy:        actor,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Tender.Create(ctx, tender); err != nil {
		// 查重与写入之间的并发竞争：唯一索引冲突同样按编号占用处理
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrTenderIDTaken
		}
		s.logger.Error("创建合同失败", zap.Error(err))
		return nil, err
	}

	s.appendLog(ctx, tender, model.ActionCreated, actor)

	return s.toTenderResponse(tender), nil
}

// ────────────────────── 查询 ──────────────────────

func (s *tenderService) GetByID(ctx context.Context, id string) (*dto.TenderResponse, error) {
	tender, err := s.repo.Tender.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTenderNotFound
		}
		s.logger.Error("查询合同失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return s.toTenderResponse(tender), nil
}

func (s *tenderService) List(ctx context.Context) ([]dto.TenderResponse, error) {
	tenders, err := s.repo.Tender.List(ctx)
	if err != nil {
		s.logger.Error("列出合同失败", zap.Error(err))
		return nil, err
	}
	return s.toTenderResponses(tenders), nil
}

func (s *tenderService) ListRecent(ctx context.Context) ([]dto.TenderResponse, error) {
	tenders, err := s.repo.Tender.ListRecent(ctx, recentTenderCount)
	if err != nil {
		s.logger.Error("列出最近合同失败", zap.Error(err))
		return nil, err
	}
	return s.toTenderResponses(tenders), nil
}

// ────────────────────── Update ──────────────────────

func (s *tenderService) Update(ctx context.Context, actor model.ActorSnapshot, id string, req *dto.UpdateTenderRequest) (*dto.TenderResponse, error) {
	if actor.Name == "" && actor.Email == "" {
		return nil, ErrNotAuthenticated
	}

	tender, err := s.repo.Tender.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTenderNotFound
		}
		s.logger.Error("查询合同失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	// 先基于"已存储 vs 请求"推导动作标签，再合并字段
	var requested *model.TenderStatus
	if req.Status != nil {
		st := model.TenderStatus(*req.Status)
		requested = &st
	}
	newEnd := tender.EndDate
	if req.EndDate != nil {
		newEnd = *req.EndDate
	}
	action := ResolveUpdateAction(tender.Status, requested, tender.EndDate, newEnd)

	s.applyUpdate(tender, req)
	tender.UpdatedAt = s.clk.Now()

	if err := s.repo.Tender.Update(ctx, tender); err != nil {
		s.logger.Error("更新合同失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	// 日志使用更新后的标题
	s.appendLog(ctx, tender, action, actor)

	return s.toTenderResponse(tender), nil
}

// applyUpdate 将请求中显式携带的字段合并进实体
// originalEndDate 不在可更新字段之列（创建时固化）
func (s *tenderService) applyUpdate(tender *model.Tender, req *dto.UpdateTenderRequest) {
	if req.Title != nil {
		tender.Title = *req.Title
	}
	if req.HospitalName != nil {
		tender.HospitalName = *req.HospitalName
	}
	if req.HospitalAddress != nil {
		tender.HospitalAddress = *req.HospitalAddress
	}
	if req.Country != nil {
		tender.Country = *req.Country
	}
	if req.City != nil {
		tender.City = *req.City
	}
	if req.PostalCode != nil {
		tender.PostalCode = *req.PostalCode
	}
	if req.ContactPerson != nil {
		tender.ContactPerson = *req.ContactPerson
	}
	if req.Email != nil {
		tender.Email = *req.Email
	}
	if req.Phone != nil {
		tender.Phone = *req.Phone
	}
	if req.HospitalType != nil {
		tender.HospitalType = *req.HospitalType
	}
	if req.BedCapacity != nil {
		tender.BedCapacity = *req.BedCapacity
	}
	if req.Medicines != nil {
		tender.Medicines = toMedicineList(req.Medicines)
	}
	if req.Stakeholders != nil {
		tender.Stakeholders = toStakeholderList(req.Stakeholders)
	}
	if req.StartDate != nil {
		tender.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		tender.EndDate = *req.EndDate
	}
	if req.ContractValue != nil {
		tender.ContractValue = *req.ContractValue
	}
	if req.PaymentTerms != nil {
		tender.PaymentTerms = *req.PaymentTerms
	}
	if req.DeliverySchedule != nil {
		tender.DeliverySchedule = *req.DeliverySchedule
	}
	if req.SpecialTerms != nil {
		tender.SpecialTerms = *req.SpecialTerms
	}
	if req.RenewalOption != nil {
		tender.RenewalOption = *req.RenewalOption
	}
	if req.Status != nil {
		tender.Status = model.TenderStatus(*req.Status)
	}
}

// ────────────────────── Delete ──────────────────────

func (s *tenderService) Delete(ctx context.Context, actor model.ActorSnapshot, id string) error {
	if actor.Name == "" && actor.Email == "" {
		return ErrNotAuthenticated
	}

	tender, err := s.repo.Tender.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTenderNotFound
		}
		s.logger.Error("查询合同失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Tender.Delete(ctx, id); err != nil {
		s.logger.Error("删除合同失败", zap.String("id", id), zap.Error(err))
		return err
	}

	// 日志在合同删除后保留，引用已删除记录的 ID 与标题
	s.appendLog(ctx, tender, model.ActionDeleted, actor)

	return nil
}

// ────────────────────── CheckTenderID ──────────────────────

func (s *tenderService) CheckTenderID(ctx context.Context, tenderID string, excludeID string) (bool, error) {
	exists, err := s.repo.Tender.ExistsByTenderID(ctx, tenderID, excludeID)
	if err != nil {
		s.logger.Error("招标编号查重失败", zap.Error(err))
		return false, err
	}
	return exists, nil
}

// ── 内部辅助方法 ──

// appendLog 为状态变更追加一条活动日志
// 日志写入与状态写入不在同一事务：写入失败记录错误，不回滚已提交的变更
func (s *tenderService) appendLog(ctx context.Context, tender *model.Tender, action model.ActivityType, actor model.ActorSnapshot) {
	entry := &model.ActivityLog{
		TenderRefID: tender.ID,
		Type:        action,
		Title:       ActionTitle(action),
		Description: ActionDescription(action, tender.Title),
		User:        actor,
		Timestamp:   s.clk.Now(),
	}
	if err := s.repo.Activity.Create(ctx, entry); err != nil {
		s.logger.Error("写入活动日志失败",
			zap.String("tender_ref_id", tender.ID),
			zap.String("action", string(action)),
			zap.Error(err),
		)
	}
}

func (s *tenderService) toTenderResponse(t *model.Tender) *dto.TenderResponse {
	return &dto.TenderResponse{
		ID:               t.ID,
		TenderID:         t.TenderID,
		Title:            t.Title,
		HospitalName:     t.HospitalName,
		HospitalAddress:  t.HospitalAddress,
		Country:          t.Country,
		City:             t.City,
		PostalCode:       t.PostalCode,
		ContactPerson:    t.ContactPerson,
		Email:            t.Email,
		Phone:            t.Phone,
		HospitalType:     t.HospitalType,
		BedCapacity:      t.BedCapacity,
		Medicines:        toMedicineItems(t.Medicines),
		Stakeholders:     toStakeholderItems(t.Stakeholders),
		StartDate:        t.StartDate.Format("2006-01-02T15:04:05Z"),
		EndDate:          t.EndDate.Format("2006-01-02T15:04:05Z"),
		OriginalEndDate:  t.OriginalEndDate.Format("2006-01-02T15:04:05Z"),
		ContractValue:    t.ContractValue,
		PaymentTerms:     t.PaymentTerms,
		DeliverySchedule: t.DeliverySchedule,
		SpecialTerms:     t.SpecialTerms,
		RenewalOption:    t.RenewalOption,
		Status:           string(t.Status),
		CreatedBy: dto.ActorResponse{
			Name:  t.CreatedBy.Name,
			Email: t.CreatedBy.Email,
			Role:  t.CreatedBy.Role,
		},
		CreatedAt: t.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt: t.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func (s *tenderService) toTenderResponses(tenders []model.Tender) []dto.TenderResponse {
	result := make([]dto.TenderResponse, 0, len(tenders))
	for i := range tenders {
		result = append(result, *s.toTenderResponse(&tenders[i]))
	}
	return result
}

func toMedicineList(items []dto.MedicineItem) model.MedicineList {
	if items == nil {
		return nil
	}
	list := make(model.MedicineList, 0, len(items))
	for _, m := range items {
		list = append(list, model.Medicine{
			Name:         m.Name,
			Category:     m.Category,
			Quantity:     m.Quantity,
			Unit:         m.Unit,
			PricePerUnit: m.PricePerUnit,
			Description:  m.Description,
		})
	}
	return list
}

func toMedicineItems(list model.MedicineList) []dto.MedicineItem {
	items := make([]dto.MedicineItem, 0, len(list))
	for _, m := range list {
		items = append(items, dto.MedicineItem{
			Name:         m.Name,
			Category:     m.Category,
			Quantity:     m.Quantity,
			Unit:         m.Unit,
			PricePerUnit: m.PricePerUnit,
			Description:  m.Description,
		})
	}
	return items
}

func toStakeholderList(items []dto.StakeholderItem) model.StakeholderList {
	if items == nil {
		return nil
	}
	list := make(model.StakeholderList, 0, len(items))
	for _, st := range items {
		list = append(list, model.Stakeholder{
			Name:  st.Name,
			Role:  st.Role,
			Email: st.Email,
			Phone: st.Phone,
		})
	}
	return list
}

func toStakeholderItems(list model.StakeholderList) []dto.StakeholderItem {
	items := make([]dto.StakeholderItem, 0, len(list))
	for _, st := range list {
		items = append(items, dto.StakeholderItem{
			Name:  st.Name,
			Role:  st.Role,
			Email: st.Email,
			Phone: st.Phone,
		})
	}
	return items
}

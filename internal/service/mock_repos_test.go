package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"tendertrack/backend/internal/model"
)

// ── Mock TenderRepository ──

type mockTenderRepo struct {
	tenders   map[string]*model.Tender
	idCounter int

	// 错误注入
	createErr     error
	bulkUpdateErr error
}

func newMockTenderRepo() *mockTenderRepo {
	return &mockTenderRepo{tenders: make(map[string]*model.Tender)}
}

func (m *mockTenderRepo) Create(_ context.Context, tender *model.Tender) error {
	if m.createErr != nil {
		return m.createErr
	}
	// 模拟 LOWER(tender_id) 唯一索引
	for _, t := range m.tenders {
		if strings.EqualFold(t.TenderID, tender.TenderID) {
			return gorm.ErrDuplicatedKey
		}
	}
	if tender.ID == "" {
		m.idCounter++
		tender.ID = fmt.Sprintf("tender-%d", m.idCounter)
	}
	m.tenders[tender.ID] = tender
	return nil
}

func (m *mockTenderRepo) GetByID(_ context.Context, id string) (*model.Tender, error) {
	if t, ok := m.tenders[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTenderRepo) List(_ context.Context) ([]model.Tender, error) {
	var result []model.Tender
	for _, t := range m.tenders {
		result = append(result, *t)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *mockTenderRepo) ListRecent(_ context.Context, n int) ([]model.Tender, error) {
	var result []model.Tender
	for _, t := range m.tenders {
		result = append(result, *t)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].UpdatedAt.After(result[j].UpdatedAt)
	})
	if len(result) > n {
		result = result[:n]
	}
	return result, nil
}

func (m *mockTenderRepo) Update(_ context.Context, tender *model.Tender) error {
	m.tenders[tender.ID] = tender
	return nil
}

func (m *mockTenderRepo) Delete(_ context.Context, id string) error {
	delete(m.tenders, id)
	return nil
}

func (m *mockTenderRepo) ExistsByTenderID(_ context.Context, tenderID string, excludeID string) (bool, error) {
	for _, t := range m.tenders {
		if excludeID != "" && t.ID == excludeID {
			continue
		}
		if strings.EqualFold(t.TenderID, tenderID) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockTenderRepo) FindForActivation(_ context.Context, now time.Time) ([]model.Tender, error) {
	var result []model.Tender
	for _, t := range m.tenders {
		if t.Status == model.StatusUpcoming && !t.StartDate.After(now) {
			result = append(result, *t)
		}
	}
	return result, nil
}

func (m *mockTenderRepo) FindForExpiry(_ context.Context, now time.Time) ([]model.Tender, error) {
	var result []model.Tender
	for _, t := range m.tenders {
		if t.Status == model.StatusActive && t.EndDate.Before(now) {
			result = append(result, *t)
		}
	}
	return result, nil
}

func (m *mockTenderRepo) BulkUpdateStatus(_ context.Context, ids []string, status model.TenderStatus, now time.Time) error {
	if m.bulkUpdateErr != nil {
		return m.bulkUpdateErr
	}
	for _, id := range ids {
		if t, ok := m.tenders[id]; ok {
			t.Status = status
			t.UpdatedAt = now
		}
	}
	return nil
}

// ── Mock ActivityLogRepository ──

type mockActivityRepo struct {
	logs      []model.ActivityLog
	idCounter int

	// 错误注入
	createErr error
	batchErr  error
}

func newMockActivityRepo() *mockActivityRepo {
	return &mockActivityRepo{}
}

func (m *mockActivityRepo) Create(_ context.Context, log *model.ActivityLog) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.idCounter++
	if log.ID == "" {
		log.ID = fmt.Sprintf("log-%d", m.idCounter)
	}
	m.logs = append(m.logs, *log)
	return nil
}

func (m *mockActivityRepo) CreateBatch(_ context.Context, logs []model.ActivityLog) error {
	if m.batchErr != nil {
		return m.batchErr
	}
	for i := range logs {
		m.idCounter++
		if logs[i].ID == "" {
			logs[i].ID = fmt.Sprintf("log-%d", m.idCounter)
		}
	}
	m.logs = append(m.logs, logs...)
	return nil
}

func (m *mockActivityRepo) ListByTender(_ context.Context, tenderRefID string) ([]model.ActivityLog, error) {
	var result []model.ActivityLog
	for _, l := range m.logs {
		if l.TenderRefID == tenderRefID {
			result = append(result, l)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Timestamp.After(result[j].Timestamp)
	})
	return result, nil
}

func (m *mockActivityRepo) ListRecent(_ context.Context, n int) ([]model.ActivityLog, error) {
	result := make([]model.ActivityLog, len(m.logs))
	copy(result, m.logs)
	sort.Slice(result, func(i, j int) bool {
		return result[i].Timestamp.After(result[j].Timestamp)
	})
	if len(result) > n {
		result = result[:n]
	}
	return result, nil
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User // key: ID
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.ID == "" {
		user.ID = fmt.Sprintf("user-%d", len(m.users)+1)
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"

	"tendertrack/backend/internal/dto"
	"tendertrack/backend/internal/model"
	"tendertrack/backend/internal/repository"
	"tendertrack/backend/pkg/clock"
)

// ── 测试辅助 ──

var testNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func testActor() model.ActorSnapshot {
	return model.ActorSnapshot{Name: "张三", Email: "zhangsan@example.com", Role: "user"}
}

func setupTestTenderService() (TenderService, *mockTenderRepo, *mockActivityRepo) {
	tenderRepo := newMockTenderRepo()
	activityRepo := newMockActivityRepo()
	repo := &repository.Repository{
		Tender:   tenderRepo,
		Activity: activityRepo,
		User:     newMockUserRepo(),
	}
	svc := NewTenderService(repo, clock.Fixed{T: testNow}, zap.NewNop())
	return svc, tenderRepo, activityRepo
}

func createReq(tenderID string) *dto.CreateTenderRequest {
	return &dto.CreateTenderRequest{
		TenderID:     tenderID,
		Title:        "胰岛素年度采购",
		HospitalName: "市第一人民医院",
		StartDate:    testNow.AddDate(0, -1, 0),
		EndDate:      testNow.AddDate(0, 6, 0),
	}
}

// ── Create 测试 ──

func TestTenderService_Create_Success(t *testing.T) {
	svc, _, activityRepo := setupTestTenderService()

	result, err := svc.Create(context.Background(), testActor(), createReq("T-2026-001"))
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.Status != "active" {
		t.Errorf("起始日已过、结束日未到，期望status=active，实际=%s", result.Status)
	}
	if result.OriginalEndDate != result.EndDate {
		t.Errorf("创建时 originalEndDate 应等于 endDate")
	}
	if result.CreatedBy.Name != "张三" {
		t.Errorf("期望创建人=张三，实际=%s", result.CreatedBy.Name)
	}

	if len(activityRepo.logs) != 1 {
		t.Fatalf("应写入 1 条创建日志，实际=%d", len(activityRepo.logs))
	}
	if activityRepo.logs[0].Type != model.ActionCreated {
		t.Errorf("期望日志类型=created，实际=%s", activityRepo.logs[0].Type)
	}
}

func TestTenderService_Create_UpcomingStatus(t *testing.T) {
	svc, _, _ := setupTestTenderService()

	req := createReq("T-2026-002")
	req.StartDate = testNow.AddDate(0, 1, 0)
	req.EndDate = testNow.AddDate(0, 6, 0)

	result, err := svc.Create(context.Background(), testActor(), req)
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.Status != "upcoming" {
		t.Errorf("起始日未到，期望status=upcoming，实际=%s", result.Status)
	}
}

func TestTenderService_Create_Unauthenticated(t *testing.T) {
	svc, _, _ := setupTestTenderService()

	_, err := svc.Create(context.Background(), model.ActorSnapshot{}, createReq("T-2026-003"))
	if !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("期望 ErrNotAuthenticated，实际: %v", err)
	}
}

func TestTenderService_Create_DuplicateTenderID_CaseInsensitive(t *testing.T) {
	svc, _, _ := setupTestTenderService()

	if _, err := svc.Create(context.Background(), testActor(), createReq("T-001")); err != nil {
		t.Fatalf("首次创建应成功: %v", err)
	}

	// 仅大小写不同也视为重复
	_, err := svc.Create(context.Background(), testActor(), createReq("t-001"))
	if !errors.Is(err, ErrTenderIDTaken) {
		t.Errorf("期望 ErrTenderIDTaken，实际: %v", err)
	}
}

// ── Update 测试 ──

func seedTender(repo *mockTenderRepo, id, tenderID string, status model.TenderStatus) *model.Tender {
	tender := &model.Tender{
		ID:              id,
		TenderID:        tenderID,
		Title:           "胰岛素年度采购",
		HospitalName:    "市第一人民医院",
		StartDate:       testNow.AddDate(0, -1, 0),
		EndDate:         testNow.AddDate(0, 6, 0),
		OriginalEndDate: testNow.AddDate(0, 6, 0),
		Status:          status,
		CreatedBy:       testActor(),
		CreatedAt:       testNow.AddDate(0, -1, 0),
		UpdatedAt:       testNow.AddDate(0, -1, 0),
	}
	repo.tenders[id] = tender
	return tender
}

func TestTenderService_Update_PlainEdit(t *testing.T) {
	svc, tenderRepo, activityRepo := setupTestTenderService()
	seedTender(tenderRepo, "tender-1", "T-001", model.StatusActive)

	title := "胰岛素年度采购（修订）"
	result, err := svc.Update(context.Background(), testActor(), "tender-1", &dto.UpdateTenderRequest{Title: &title})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if result.Title != title {
		t.Errorf("期望标题已更新，实际=%s", result.Title)
	}

	if len(activityRepo.logs) != 1 || activityRepo.logs[0].Type != model.ActionEdited {
		t.Fatalf("普通编辑应写入 edited 日志，实际=%v", activityRepo.logs)
	}
	// 日志描述使用更新后的标题
	if activityRepo.logs[0].Description != "合同「胰岛素年度采购（修订）」已更新" {
		t.Errorf("日志描述不符，实际=%s", activityRepo.logs[0].Description)
	}
}

func TestTenderService_Update_ImplicitExtension(t *testing.T) {
	svc, tenderRepo, activityRepo := setupTestTenderService()
	seedTender(tenderRepo, "tender-1", "T-001", model.StatusActive)

	newEnd := testNow.AddDate(1, 0, 0)
	_, err := svc.Update(context.Background(), testActor(), "tender-1", &dto.UpdateTenderRequest{EndDate: &newEnd})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}

	if len(activityRepo.logs) != 1 || activityRepo.logs[0].Type != model.ActionExtended {
		t.Fatalf("延长结束日期应写入 extended 日志，实际=%v", activityRepo.logs)
	}
}

func TestTenderService_Update_OriginalEndDateImmutable(t *testing.T) {
	svc, tenderRepo, _ := setupTestTenderService()
	tender := seedTender(tenderRepo, "tender-1", "T-001", model.StatusActive)
	original := tender.OriginalEndDate

	newEnd := testNow.AddDate(1, 0, 0)
	_, err := svc.Update(context.Background(), testActor(), "tender-1", &dto.UpdateTenderRequest{EndDate: &newEnd})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}

	stored := tenderRepo.tenders["tender-1"]
	if !stored.OriginalEndDate.Equal(original) {
		t.Errorf("延期后 originalEndDate 不应变化，期望=%v，实际=%v", original, stored.OriginalEndDate)
	}
	if !stored.EndDate.Equal(newEnd) {
		t.Errorf("endDate 应更新为新值")
	}
}

func TestTenderService_Update_ExplicitTermination(t *testing.T) {
	svc, tenderRepo, activityRepo := setupTestTenderService()
	seedTender(tenderRepo, "tender-1", "T-001", model.StatusActive)

	status := "terminated"
	result, err := svc.Update(context.Background(), testActor(), "tender-1", &dto.UpdateTenderRequest{Status: &status})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if result.Status != "terminated" {
		t.Errorf("期望status=terminated，实际=%s", result.Status)
	}

	if len(activityRepo.logs) != 1 || activityRepo.logs[0].Type != model.ActionTerminated {
		t.Fatalf("终止应写入 terminated 日志，实际=%v", activityRepo.logs)
	}
}

func TestTenderService_Update_ExpiredMeansFulfilled(t *testing.T) {
	svc, tenderRepo, activityRepo := setupTestTenderService()
	seedTender(tenderRepo, "tender-1", "T-001", model.StatusActive)

	status := "expired"
	_, err := svc.Update(context.Background(), testActor(), "tender-1", &dto.UpdateTenderRequest{Status: &status})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}

	if len(activityRepo.logs) != 1 || activityRepo.logs[0].Type != model.ActionFulfilled {
		t.Fatalf("手动置为 expired 应写入 fulfilled 日志，实际=%v", activityRepo.logs)
	}
}

func TestTenderService_Update_NotFound(t *testing.T) {
	svc, _, _ := setupTestTenderService()

	title := "x"
	_, err := svc.Update(context.Background(), testActor(), "nope", &dto.UpdateTenderRequest{Title: &title})
	if !errors.Is(err, ErrTenderNotFound) {
		t.Errorf("期望 ErrTenderNotFound，实际: %v", err)
	}
}

// ── Delete 测试 ──

func TestTenderService_Delete_KeepsLogs(t *testing.T) {
	svc, tenderRepo, activityRepo := setupTestTenderService()
	seedTender(tenderRepo, "tender-1", "T-001", model.StatusActive)

	if err := svc.Delete(context.Background(), testActor(), "tender-1"); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}

	if _, ok := tenderRepo.tenders["tender-1"]; ok {
		t.Error("合同应已删除")
	}
	// 删除日志在合同消失后保留
	if len(activityRepo.logs) != 1 || activityRepo.logs[0].Type != model.ActionDeleted {
		t.Fatalf("应保留 1 条 deleted 日志，实际=%v", activityRepo.logs)
	}
	if activityRepo.logs[0].TenderRefID != "tender-1" {
		t.Errorf("日志应引用已删除合同的 ID")
	}
}

func TestTenderService_Delete_NotFound(t *testing.T) {
	svc, _, _ := setupTestTenderService()

	err := svc.Delete(context.Background(), testActor(), "nope")
	if !errors.Is(err, ErrTenderNotFound) {
		t.Errorf("期望 ErrTenderNotFound，实际: %v", err)
	}
}

// ── CheckTenderID 测试 ──

func TestTenderService_CheckTenderID(t *testing.T) {
	svc, tenderRepo, _ := setupTestTenderService()
	seedTender(tenderRepo, "tender-1", "T-001", model.StatusActive)

	exists, err := svc.CheckTenderID(context.Background(), "t-001", "")
	if err != nil {
		t.Fatalf("CheckTenderID 应成功: %v", err)
	}
	if !exists {
		t.Error("大小写不同的相同编号应判为已存在")
	}

	// 编辑场景：排除自身后不算占用
	exists, err = svc.CheckTenderID(context.Background(), "T-001", "tender-1")
	if err != nil {
		t.Fatalf("CheckTenderID 应成功: %v", err)
	}
	if exists {
		t.Error("排除自身后应判为未占用")
	}
}

// ── 日志写入失败不影响主操作 ──

func TestTenderService_Create_LogFailureIgnored(t *testing.T) {
	svc, tenderRepo, activityRepo := setupTestTenderService()
	activityRepo.createErr = errors.New("日志库不可用")

	result, err := svc.Create(context.Background(), testActor(), createReq("T-001"))
	if err != nil {
		t.Fatalf("日志写入失败不应使创建失败: %v", err)
	}
	if _, ok := tenderRepo.tenders[result.ID]; !ok {
		t.Error("合同应已持久化")
	}
}

// ── 查询测试 ──

func TestTenderService_ListRecent_LimitFive(t *testing.T) {
	svc, tenderRepo, _ := setupTestTenderService()
	for i := 0; i < 7; i++ {
		tender := seedTender(tenderRepo,
			fmt.Sprintf("tender-%d", i),
			fmt.Sprintf("T-%03d", i),
			model.StatusActive,
		)
		tender.UpdatedAt = testNow.Add(time.Duration(i) * time.Hour)
	}

	result, err := svc.ListRecent(context.Background())
	if err != nil {
		t.Fatalf("ListRecent 应成功: %v", err)
	}
	if len(result) != 5 {
		t.Errorf("期望返回 5 条，实际=%d", len(result))
	}
	// 最近更新的排最前
	if result[0].TenderID != "T-006" {
		t.Errorf("期望首条=T-006，实际=%s", result[0].TenderID)
	}
}

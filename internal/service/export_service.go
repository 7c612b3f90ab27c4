package service

import (
	"bytes"
	"context"
	"fmt"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"tendertrack/backend/internal/model"
	"tendertrack/backend/internal/repository"
	"tendertrack/backend/pkg/clock"
)

// ExportService 导出业务接口
//
// 设计说明：
//   - Excel 导出合同台账（一行一条合同）
//   - ICS 导出合同起止日期为日历事件，供采购方订阅到期提醒
//   - 均以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportTenders 导出合同台账为 Excel (.xlsx)
	ExportTenders(ctx context.Context) (*bytes.Buffer, string, error)
	// ExportCalendar 导出合同起止日历为 ICS
	ExportCalendar(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	clk    clock.Clock
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, clk clock.Clock, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, clk: clk, logger: logger}
}

// ────────────────────── ExportTenders ──────────────────────

var tenderSheetHeader = []string{
	"招标编号", "标题", "医院", "城市", "状态",
	"开始日期", "结束日期", "原始结束日期", "合同金额", "创建人",
}

func (s *exportService) ExportTenders(ctx context.Context) (*bytes.Buffer, string, error) {
	tenders, err := s.repo.Tender.List(ctx)
	if err != nil {
		s.logger.Error("查询合同列表失败", zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	f.SetSheetName(sheet, "合同台账")

	for col, h := range tenderSheetHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue("合同台账", cell, h)
	}

	for row := range tenders {
		t := &tenders[row]
		values := []interface{}{
			t.TenderID,
			t.Title,
			t.HospitalName,
			t.City,
			string(t.Status),
			t.StartDate.Format("2006-01-02"),
			t.EndDate.Format("2006-01-02"),
			t.OriginalEndDate.Format("2006-01-02"),
			t.ContractValue,
			t.CreatedBy.Name,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue("合同台账", cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("生成 Excel 失败", zap.Error(err))
		return nil, "", err
	}

	filename := fmt.Sprintf("tenders-%s.xlsx", s.clk.Now().Format("20060102"))
	return buf, filename, nil
}

// ────────────────────── ExportCalendar ──────────────────────

func (s *exportService) ExportCalendar(ctx context.Context) (*bytes.Buffer, string, error) {
	tenders, err := s.repo.Tender.List(ctx)
	if err != nil {
		s.logger.Error("查询合同列表失败", zap.Error(err))
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//tendertrack//contract calendar//CN")

	now := s.clk.Now()
	for i := range tenders {
		t := &tenders[i]
		// 已终止的合同不再出现在日历里
		if t.Status == model.StatusTerminated {
			continue
		}
		event := cal.AddEvent(t.ID)
		event.SetCreatedTime(now)
		event.SetDtStampTime(now)
		event.SetStartAt(t.StartDate)
		event.SetEndAt(t.EndDate)
		event.SetSummary(fmt.Sprintf("[%s] %s", t.TenderID, t.Title))
		event.SetDescription(fmt.Sprintf("医院: %s / 状态: %s", t.HospitalName, t.Status))
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("tenders-%s.ics", now.Format("20060102"))
	return buf, filename, nil
}

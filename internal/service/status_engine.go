package service

import (
	"fmt"
	"time"

	"tendertrack/backend/internal/model"
)

// 状态引擎：纯决策逻辑，无 I/O
// 给定合同日期与当前时间，计算创建/更新应产生的状态与日志动作标签。
// 引擎对显式传入的状态是建议性的：调用方按请求原样持久化字段，
// 引擎只负责推导动作标签（terminated 为手动终态，巡检永不覆盖）。

// InitialStatus 计算创建时的初始状态
// 边界策略：start/end 两端均含（相等时判为 active，优先于 upcoming/expired）
func InitialStatus(now, startDate, endDate time.Time) model.TenderStatus {
	switch {
	case !startDate.After(now) && !endDate.Before(now):
		return model.StatusActive
	case endDate.Before(now):
		return model.StatusExpired
	default:
		return model.StatusUpcoming
	}
}

// ResolveUpdateAction 推导手动更新产生的动作标签
//  1. 请求显式变更状态时：active→extended，terminated→terminated，expired→fulfilled
//  2. 否则 endDate 严格增大视为隐式延期：extended
//  3. 其余情况为普通编辑：edited
func ResolveUpdateAction(prev model.TenderStatus, requested *model.TenderStatus, prevEnd, newEnd time.Time) model.ActivityType {
	if requested != nil && *requested != prev {
		switch *requested {
		case model.StatusActive:
			return model.ActionExtended
		case model.StatusTerminated:
			return model.ActionTerminated
		case model.StatusExpired:
			return model.ActionFulfilled
		}
		// 其余显式状态变更无专属标签，落入下方通用规则
	}
	if newEnd.After(prevEnd) {
		return model.ActionExtended
	}
	return model.ActionEdited
}

// ── 日志文案 ──

var actionTitles = map[model.ActivityType]string{
	model.ActionCreated:    "合同已创建",
	model.ActionEdited:     "合同已更新",
	model.ActionExtended:   "合同已延期",
	model.ActionFulfilled:  "合同已履约完成",
	model.ActionTerminated: "合同已终止",
	model.ActionDeleted:    "合同已删除",
	model.ActionActivated:  "合同已生效",
	model.ActionExpired:    "合同已到期",
}

// ActionTitle 动作标签对应的日志标题
func ActionTitle(action model.ActivityType) string {
	if t, ok := actionTitles[action]; ok {
		return t
	}
	return "状态已更新"
}

// ActionDescription 由合同标题与动作标签派生的日志描述
func ActionDescription(action model.ActivityType, tenderTitle string) string {
	switch action {
	case model.ActionCreated:
		return fmt.Sprintf("合同「%s」已创建", tenderTitle)
	case model.ActionEdited:
		return fmt.Sprintf("合同「%s」已更新", tenderTitle)
	case model.ActionExtended:
		return fmt.Sprintf("合同「%s」的结束日期已延长", tenderTitle)
	case model.ActionFulfilled:
		return fmt.Sprintf("合同「%s」已标记为履约完成", tenderTitle)
	case model.ActionTerminated:
		return fmt.Sprintf("合同「%s」已被终止", tenderTitle)
	case model.ActionDeleted:
		return fmt.Sprintf("合同「%s」已被删除", tenderTitle)
	case model.ActionActivated:
		return fmt.Sprintf("合同「%s」已到生效日期", tenderTitle)
	case model.ActionExpired:
		return fmt.Sprintf("合同「%s」已超过结束日期", tenderTitle)
	default:
		return fmt.Sprintf("合同「%s」状态已更新", tenderTitle)
	}
}

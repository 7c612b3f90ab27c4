package clock

import "time"

// Clock 时间源抽象
// 巡检任务等依赖"当前时间"的逻辑通过注入 Clock 实现确定性测试
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// System 返回系统墙钟
func System() Clock { return systemClock{} }

// Fixed 返回固定时间源（测试用）
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time { return f.T }

package core

import "sync/atomic"

// State 是算法组件的生命周期状态。
// 状态机：Uninitialized → Training → Ready。
// 没有 Retraining 状态：重训时在旁路构建新模型整体替换（build-then-swap）。
type State int32

const (
	StateUninitialized State = iota // 尚未开始训练
	StateTraining                   // 训练中，查询被拒绝
	StateReady                      // 模型已原子发布，可无限并发只读查询
)

func (s State) String() string {
	switch s {
	case StateTraining:
		return "training"
	case StateReady:
		return "ready"
	default:
		return "uninitialized"
	}
}

// Lifecycle 是可嵌入的生命周期守卫。
// 训练例程是模型的唯一写者；查询入口统一经 RequireReady 校验，
// 使未就绪查询得到 NOT_READY 而不是读到半成品模型。
type Lifecycle struct {
	state atomic.Int32
}

// State 返回当前状态。
func (l *Lifecycle) State() State {
	return State(l.state.Load())
}

// BeginTraining 进入训练态。Ready 状态下再次训练是允许的（重建后整体替换）。
func (l *Lifecycle) BeginTraining() {
	l.state.Store(int32(StateTraining))
}

// Publish 标记模型已发布。调用方必须先完成模型的原子替换再调用。
func (l *Lifecycle) Publish() {
	l.state.Store(int32(StateReady))
}

// RequireReady 未就绪时返回 NOT_READY 错误。
func (l *Lifecycle) RequireReady(module string) error {
	if l.State() != StateReady {
		return NotReadyError(module)
	}
	return nil
}

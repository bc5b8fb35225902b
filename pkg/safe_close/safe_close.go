// Package safe_close 提供多协程的协同关闭机制
// 各后台协程通过 Attach 挂载，关闭信号广播后等待全部退出
package safe_close

import (
	"sync"
)

// SafeClose 协同关闭器
type SafeClose struct {
	mu sync.Mutex
	wg sync.WaitGroup

	closeSignal chan struct{}
	closeOnce   sync.Once
	closeErr    error
}

// NewSafeClose 创建协同关闭器
func NewSafeClose() *SafeClose {
	return &SafeClose{
		closeSignal: make(chan struct{}),
	}
}

// Attach 挂载一个后台协程
// f 必须在退出前调用 done，并在 closeSignal 关闭后尽快返回
func (s *SafeClose) Attach(f func(done func(), closeSignal <-chan struct{})) {
	s.wg.Add(1)
	var once sync.Once
	done := func() {
		once.Do(s.wg.Done)
	}
	go f(done, s.closeSignal)
}

// SendCloseSignal 广播关闭信号，首个非 nil 错误会被保留
func (s *SafeClose) SendCloseSignal(err error) {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closeErr = err
		s.mu.Unlock()
		close(s.closeSignal)
	})
}

// WaitClosed 阻塞等待所有挂载的协程退出，返回触发关闭的错误
func (s *SafeClose) WaitClosed() error {
	s.wg.Wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closeErr
}

// CloseSignal 返回关闭信号通道
func (s *SafeClose) CloseSignal() <-chan struct{} {
	return s.closeSignal
}

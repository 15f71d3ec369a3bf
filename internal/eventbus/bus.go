package eventbus

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// Bus 进程内事件总线
// 发布是同步的，订阅方不要在处理器里做重活
type Bus struct {
	mutex       sync.RWMutex
	subscribers map[ExportEventType]map[uint64]ExportEventHandler
	counter     uint64
}

func NewBus() *Bus {
	return &Bus{
		subscribers: make(map[ExportEventType]map[uint64]ExportEventHandler),
	}
}

// Subscribe 注册处理器，返回取消函数
func (b *Bus) Subscribe(eventType ExportEventType, handler ExportEventHandler) func() {
	if handler == nil {
		return func() {}
	}
	id := atomic.AddUint64(&b.counter, 1)
	b.mutex.Lock()
	if b.subscribers[eventType] == nil {
		b.subscribers[eventType] = make(map[uint64]ExportEventHandler)
	}
	b.subscribers[eventType][id] = handler
	b.mutex.Unlock()
	return func() {
		b.mutex.Lock()
		handlers, ok := b.subscribers[eventType]
		if ok {
			delete(handlers, id)
			if len(handlers) == 0 {
				delete(b.subscribers, eventType)
			}
		}
		b.mutex.Unlock()
	}
}

func (b *Bus) Publish(ctx context.Context, event ExportEvent) error {
	b.mutex.RLock()
	handlersMap := b.subscribers[event.Type]
	handlers := make([]ExportEventHandler, 0, len(handlersMap))
	for _, handler := range handlersMap {
		handlers = append(handlers, handler)
	}
	b.mutex.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

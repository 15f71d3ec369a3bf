package eventbus

import (
	"context"
	"errors"
	"testing"
)

func TestPublishReachesSubscribers(t *testing.T) {
	bus := NewBus()
	var got []string

	bus.Subscribe(ExportEventCompleted, func(_ context.Context, event ExportEvent) error {
		got = append(got, event.JobID)
		return nil
	})

	if err := bus.Publish(context.Background(), ExportEvent{Type: ExportEventCompleted, JobID: "a"}); err != nil {
		t.Fatalf("发布失败: %v", err)
	}
	// 另一类事件不应投递
	if err := bus.Publish(context.Background(), ExportEvent{Type: ExportEventFailed, JobID: "b"}); err != nil {
		t.Fatalf("发布失败: %v", err)
	}

	if len(got) != 1 || got[0] != "a" {
		t.Fatalf("投递结果不对: %v", got)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	bus := NewBus()
	count := 0

	cancel := bus.Subscribe(ExportEventFailed, func(_ context.Context, _ ExportEvent) error {
		count++
		return nil
	})

	if err := bus.Publish(context.Background(), ExportEvent{Type: ExportEventFailed}); err != nil {
		t.Fatalf("发布失败: %v", err)
	}
	cancel()
	if err := bus.Publish(context.Background(), ExportEvent{Type: ExportEventFailed}); err != nil {
		t.Fatalf("发布失败: %v", err)
	}

	if count != 1 {
		t.Fatalf("取消订阅后仍然投递: %d", count)
	}
}

func TestPublishCollectsHandlerErrors(t *testing.T) {
	bus := NewBus()
	wantErr := errors.New("处理失败")

	bus.Subscribe(ExportEventCompleted, func(_ context.Context, _ ExportEvent) error {
		return wantErr
	})
	bus.Subscribe(ExportEventCompleted, func(_ context.Context, _ ExportEvent) error {
		return nil
	})

	err := bus.Publish(context.Background(), ExportEvent{Type: ExportEventCompleted})
	if !errors.Is(err, wantErr) {
		t.Fatalf("期望收集到处理器错误，实际 %v", err)
	}
}

func TestNilHandlerIgnored(t *testing.T) {
	bus := NewBus()
	cancel := bus.Subscribe(ExportEventCompleted, nil)
	cancel()

	if err := bus.Publish(context.Background(), ExportEvent{Type: ExportEventCompleted}); err != nil {
		t.Fatalf("发布失败: %v", err)
	}
}

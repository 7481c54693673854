package progress

import (
	"context"
	"testing"
)

func TestSend(t *testing.T) {
	t.Parallel()
	ch := make(chan Update, 1)
	if !Send(context.Background(), ch, Update{Worker: 1, Completed: 3}) {
		t.Fatal("Send should succeed with buffer space")
	}
	if got := <-ch; got.Worker != 1 || got.Completed != 3 {
		t.Errorf("received %+v", got)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	full := make(chan Update)
	if Send(ctx, full, Update{}) {
		t.Error("Send on a full channel with a canceled context should fail")
	}
	if Send(context.Background(), nil, Update{}) {
		t.Error("Send on a nil channel should fail")
	}
}

package session

import (
	"context"

	"github.com/Noodieknoodie/AI-HELPER/internal/providers/progress"
)

// SendAsync runs Send on its own goroutine and delivers the reply on the
// returned channel, which is closed afterwards. The channel is buffered so
// a caller that stops listening never blocks the worker. onProgress runs on
// the worker goroutine.
func (s *Session) SendAsync(ctx context.Context, prompt string, onProgress progress.Func) <-chan string {
	replies := make(chan string, 1)
	go func() {
		defer close(replies)
		replies <- s.Send(ctx, prompt, onProgress)
	}()
	return replies
}

// Package eventloop runs the producer/consumer orchestration: two capture
// producers (wake word and hotkey) feed one bounded FIFO queue, and a
// single consumer drives the resolve/validate/dispatch pipeline so at most
// one handler runs at a time.
package eventloop

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/doeshing/voxa/internal/application/dispatch"
	"github.com/doeshing/voxa/internal/domain"
	"github.com/doeshing/voxa/internal/ports"
)

// item is one queued utterance. Seq is assigned at enqueue time; dequeue
// order is strictly FIFO so observed sequences are non-decreasing.
type item struct {
	Seq        uint64
	Utterance  string
	Source     domain.Source
	EnqueuedAt time.Time
}

// Stats exposes the loop's counters.
type Stats struct {
	Enqueued    uint64 `json:"enqueued"`
	Dropped     uint64 `json:"dropped"`
	Processed   uint64 `json:"processed"`
	Failed      uint64 `json:"failed"`
	Deferred    uint64 `json:"deferred"`
	QueueLength int    `json:"queue_length"`
}

// Loop owns the shared queue and the worker goroutines.
type Loop struct {
	Resolver   ports.Resolver
	Dispatcher *dispatch.Service
	Audio      ports.Audio
	Logger     ports.Logger
	Config     domain.Config

	queue  chan item
	hotkey chan string
	stop   chan struct{}
	wg     sync.WaitGroup

	// enqueueMu serializes sequence assignment with the queue send so
	// dequeue order matches sequence order even with racing producers.
	enqueueMu sync.Mutex

	seq       atomic.Uint64
	enqueued  atomic.Uint64
	dropped   atomic.Uint64
	processed atomic.Uint64
	failed    atomic.Uint64
	deferred  atomic.Uint64

	// pending holds the last confirmation-needed command, waiting for the
	// user to trigger the hotkey and say "confirm". Consumer-only state.
	pending *domain.Command

	stopOnce sync.Once
}

// New builds a loop with a queue sized from configuration.
func New(resolver ports.Resolver, dispatcher *dispatch.Service, audio ports.Audio, log ports.Logger, cfg domain.Config) *Loop {
	return &Loop{
		Resolver:   resolver,
		Dispatcher: dispatcher,
		Audio:      audio,
		Logger:     log,
		Config:     cfg,
		queue:      make(chan item, cfg.GetQueueCapacity()),
		hotkey:     make(chan string, 1),
		stop:       make(chan struct{}),
	}
}

// Start launches the producers and the consumer. It returns immediately;
// use Stop or cancel the context to shut the loop down.
func (l *Loop) Start(ctx context.Context) {
	if l.Config.Audio.WakeWordEnabled {
		l.wg.Add(1)
		go l.wakeWordProducer(ctx)
	}
	l.wg.Add(2)
	go l.hotkeyProducer(ctx)
	go l.consumer(ctx)

	l.Logger.Info("event loop started", map[string]interface{}{
		"wake_word_enabled": l.Config.Audio.WakeWordEnabled,
		"queue_capacity":    cap(l.queue),
	})
}

// Stop signals all workers and waits for them to drain. Shutdown latency
// is bounded by the longest in-flight blocking call plus the poll
// interval; nothing is forcibly terminated.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
	l.wg.Wait()
}

// TriggerHotkey requests a hotkey-sourced capture. A non-empty utterance
// bypasses audio capture and is enqueued directly. Returns false when a
// previous trigger is still pending.
func (l *Loop) TriggerHotkey(utterance string) bool {
	select {
	case l.hotkey <- utterance:
		return true
	default:
		return false
	}
}

// Enqueue attempts to add an utterance to the shared queue. A full queue
// drops the item without blocking and tells the user to retry.
func (l *Loop) Enqueue(utterance string, source domain.Source) bool {
	it := item{
		Utterance:  utterance,
		Source:     source,
		EnqueuedAt: time.Now(),
	}

	l.enqueueMu.Lock()
	it.Seq = l.seq.Add(1)
	accepted := false
	select {
	case l.queue <- it:
		accepted = true
	default:
	}
	l.enqueueMu.Unlock()

	if accepted {
		l.enqueued.Add(1)
		return true
	}
	l.dropped.Add(1)
	l.Logger.Warn("queue full, dropping utterance", map[string]interface{}{
		"source": string(source),
	})
	l.speak("I'm busy right now, please try again")
	return false
}

// Stats returns a snapshot of the loop counters.
func (l *Loop) Stats() Stats {
	return Stats{
		Enqueued:    l.enqueued.Load(),
		Dropped:     l.dropped.Load(),
		Processed:   l.processed.Load(),
		Failed:      l.failed.Load(),
		Deferred:    l.deferred.Load(),
		QueueLength: len(l.queue),
	}
}

func (l *Loop) wakeWordProducer(ctx context.Context) {
	defer l.wg.Done()
	wakeWord := strings.ToLower(l.Config.GetWakeWord())
	poll := l.Config.GetPollInterval()

	for {
		if l.stopped(ctx) {
			return
		}
		started := time.Now()
		heard, ok := l.Audio.Recognize(ctx, poll)
		if !ok {
			// a recognizer that fails instantly (missing binary, no
			// microphone) must not turn this loop into a busy spin
			l.idleWait(ctx, poll-time.Since(started))
			continue
		}
		if !strings.Contains(strings.ToLower(heard), wakeWord) {
			continue
		}
		l.speak("Yes? I'm listening")
		utterance, ok := l.Audio.Recognize(ctx, l.captureTimeout())
		if !ok {
			l.speak("I didn't catch that")
			continue
		}
		l.Enqueue(utterance, domain.SourceWakeWord)
	}
}

func (l *Loop) hotkeyProducer(ctx context.Context) {
	defer l.wg.Done()
	for {
		select {
		case <-l.stop:
			return
		case <-ctx.Done():
			return
		case utterance := <-l.hotkey:
			if utterance == "" {
				l.speak("Yes? I'm listening")
				heard, ok := l.Audio.Recognize(ctx, l.captureTimeout())
				if !ok {
					l.speak("I didn't catch that")
					continue
				}
				utterance = heard
			}
			l.Enqueue(utterance, domain.SourceHotkey)
		}
	}
}

func (l *Loop) consumer(ctx context.Context) {
	defer l.wg.Done()
	poll := l.Config.GetPollInterval()
	for {
		select {
		case <-l.stop:
			return
		case <-ctx.Done():
			return
		case it := <-l.queue:
			l.process(ctx, it)
		case <-time.After(poll):
			// periodic wakeup so the stop signal is observed while idle
		}
	}
}

func (l *Loop) process(ctx context.Context, it item) {
	if l.consumePendingConfirmation(ctx, it) {
		return
	}

	cmd, err := l.Resolver.Resolve(ctx, it.Utterance, it.Source)
	if err != nil {
		l.Logger.Error("resolve failed", err, map[string]interface{}{"source": string(it.Source)})
		l.speak("I'm sorry, I couldn't understand that")
		return
	}

	if cmd.RequiresConfirmation && cmd.Source == domain.SourceWakeWord && l.Config.ShouldConfirmHotkeyOnly() {
		l.deferred.Add(1)
		l.Logger.Info("sensitive command from wake word deferred", map[string]interface{}{
			"intent": cmd.Intent,
		})
		l.speak("This command requires hotkey activation")
		return
	}

	result := l.Dispatcher.Dispatch(ctx, cmd)
	l.processed.Add(1)
	if !result.Success {
		l.failed.Add(1)
	}
	l.feedback(cmd, result)
}

// consumePendingConfirmation handles the "confirm" follow-up after a
// confirmation-needed outcome. Any other utterance clears the pending
// command and is processed normally.
func (l *Loop) consumePendingConfirmation(ctx context.Context, it item) bool {
	if l.pending == nil {
		return false
	}
	pending := *l.pending
	l.pending = nil

	phrase := strings.ToLower(strings.TrimSpace(it.Utterance))
	if it.Source != domain.SourceHotkey || (phrase != "confirm" && phrase != "yes") {
		return false
	}

	result := l.Dispatcher.DispatchConfirmed(ctx, pending)
	l.processed.Add(1)
	if !result.Success {
		l.failed.Add(1)
	}
	l.feedback(pending, result)
	return true
}

func (l *Loop) feedback(cmd domain.Command, result domain.ExecutionResult) {
	if result.Success {
		l.speak(result.Message)
		return
	}
	if dispatch.ConfirmationNeeded(result) {
		l.pending = &cmd
		l.speak("Please confirm by triggering the hotkey and saying confirm")
		return
	}
	l.speak("I'm sorry, " + strings.ToLower(result.Message))
}

func (l *Loop) speak(text string) {
	if err := l.Audio.Speak(text); err != nil {
		l.Logger.Warn("speech output failed", map[string]interface{}{"error": err.Error()})
	}
}

// captureTimeout bounds a full utterance capture: the wait for speech to
// start plus the phrase length limit, collapsed into the single deadline
// the recognizer command accepts.
func (l *Loop) captureTimeout() time.Duration {
	return l.Config.GetListenTimeout() + l.Config.GetPhraseTimeLimit()
}

// idleWait sleeps out the remainder of a poll interval, leaving early on
// shutdown.
func (l *Loop) idleWait(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	select {
	case <-l.stop:
	case <-ctx.Done():
	case <-time.After(d):
	}
}

func (l *Loop) stopped(ctx context.Context) bool {
	select {
	case <-l.stop:
		return true
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

package transync

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// scheduler owns one recurring update check per locale.
type scheduler struct {
	mu      sync.Mutex
	cron    *cron.Cron
	entries map[string]armed
	check   func(locale string)
	running bool
}

type armed struct {
	id       cron.EntryID
	interval time.Duration
}

func newScheduler(log *slog.Logger, check func(locale string)) *scheduler {
	l := cronLogger{log: log}
	return &scheduler{
		cron: cron.New(
			cron.WithLogger(l),
			cron.WithChain(cron.Recover(l), cron.SkipIfStillRunning(l)),
		),
		entries: make(map[string]armed),
		check:   check,
	}
}

// arm schedules the check for locale, replacing any existing entry.
func (s *scheduler) arm(locale string, interval time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cur, ok := s.entries[locale]; ok {
		s.cron.Remove(cur.id)
	}
	id := s.cron.Schedule(every(interval), cron.FuncJob(func() { s.check(locale) }))
	s.entries[locale] = armed{id: id, interval: interval}

	if !s.running {
		s.cron.Start()
		s.running = true
	}
}

func (s *scheduler) stop(locale string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cur, ok := s.entries[locale]; ok {
		s.cron.Remove(cur.id)
		delete(s.entries, locale)
	}
}

// stopAll removes every entry and waits for running checks to return.
func (s *scheduler) stopAll() {
	s.mu.Lock()
	for locale, cur := range s.entries {
		s.cron.Remove(cur.id)
		delete(s.entries, locale)
	}
	var done context.Context
	if s.running {
		done = s.cron.Stop()
		s.running = false
	}
	s.mu.Unlock()

	if done != nil {
		<-done.Done()
	}
}

// rearm moves every entry to a new interval.
func (s *scheduler) rearm(interval time.Duration) {
	for _, locale := range s.armed() {
		s.arm(locale, interval)
	}
}

func (s *scheduler) isArmed(locale string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[locale]
	return ok
}

func (s *scheduler) armed() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Sorted(maps.Keys(s.entries))
}

// every uses cron's own constant-delay schedule for whole seconds and a
// plain delay for anything finer, which cron.Every would round up.
func every(d time.Duration) cron.Schedule {
	if d >= time.Second && d%time.Second == 0 {
		return cron.Every(d)
	}
	return delay(d)
}

type delay time.Duration

func (d delay) Next(t time.Time) time.Time {
	return t.Add(time.Duration(d))
}

// cronLogger routes cron's own messages to slog.
type cronLogger struct {
	log *slog.Logger
}

func (l cronLogger) Info(msg string, kv ...any) {
	l.log.Debug(msg, append([]any{slog.String("component", "scheduler")}, kv...)...)
}

func (l cronLogger) Error(err error, msg string, kv ...any) {
	l.log.Error(msg, append([]any{slog.String("component", "scheduler"), slog.String("error", fmt.Sprint(err))}, kv...)...)
}

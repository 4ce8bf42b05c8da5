package server

import "github.com/robfig/cron/v3"

// flusher periodically settles running timers into storage so that
// completed minutes survive a server restart. The job it runs takes the
// server lock, so ticks never interleave with request handlers.
type flusher struct {
	cron *cron.Cron
	job  func()
}

func newFlusher(job func()) *flusher {
	c := cron.New(cron.WithSeconds())
	c.AddFunc("* * * * * *", job)
	return &flusher{cron: c, job: job}
}

func (f *flusher) start() { f.cron.Start() }

func (f *flusher) stop() {
	ctx := f.cron.Stop()
	<-ctx.Done()
}

package booking

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// StartSweepScheduler runs the lifecycle sweep once a minute. The
// SkipIfStillRunning wrapper drops a tick if the previous sweep has
// not finished, so slow database moments never stack runs. Callers
// must Stop the returned cron on shutdown.
func StartSweepScheduler(sw *Sweeper) *cron.Cron {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	_, err := c.AddFunc("* * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		n, err := sw.Run(ctx)
		if err != nil {
			log.Printf("sweep: %v", err)
			return
		}
		if n > 0 {
			log.Printf("sweep: advanced %d reservation(s)", n)
		}
	})
	if err != nil {
		log.Printf("sweep: failed to schedule: %v", err)
		return c
	}
	c.Start()
	return c
}

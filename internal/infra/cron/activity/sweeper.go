// activity holds the cron-driven retention sweeper that keeps the audit trail
// from growing without bound.
package activity

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/tasklink/tasklink/internal/config"
	domainActivity "github.com/tasklink/tasklink/internal/domain/activity"
	"github.com/tasklink/tasklink/internal/domain/tracing"
)

// Sweeper periodically deletes audit entries older than the configured
// retention window.
type Sweeper interface {
	// Start begins running sweeps on the configured schedule
	Start() error

	// Stop stops future sweeps; a sweep already in flight finishes
	Stop()
}

// Returns the default implementation of a Sweeper that delegates to the
// standard robfig/cron
func NewSweeper(activityService domainActivity.Service, settings config.Activity, tracer tracing.Tracer) Sweeper {
	return &sweeperImpl{
		cron:            cron.New(cron.WithLocation(time.UTC)),
		activityService: activityService,
		settings:        settings,
		tracer:          tracer,
		getUTC: func() time.Time {
			return time.Now().UTC()
		},
	}
}

type sweeperImpl struct {
	cron *cron.Cron

	activityService domainActivity.Service

	settings config.Activity

	tracer tracing.Tracer

	getUTC func() time.Time
}

func (i *sweeperImpl) Start() error {
	job := cron.NewChain(cron.Recover(zeroLogCronLogger{})).Then(cron.FuncJob(i.sweep))
	if _, err := i.cron.AddJob(i.settings.SweepSchedule, job); err != nil {
		return err
	}
	log.Info().
		Str("schedule", i.settings.SweepSchedule).
		Dur("retention", i.settings.Retention).
		Msg("Starting activity sweeper")
	i.cron.Start()
	return nil
}

func (i *sweeperImpl) Stop() {
	log.Info().Msg("Stopping activity sweeper")
	i.cron.Stop()
}

func (i *sweeperImpl) sweep() {
	tx := i.tracer.BackgroundTx("activity-sweep")
	ctx := tx.Context()
	defer tx.End()

	cutoff := i.getUTC().Add(-i.settings.Retention)
	swept, err := i.activityService.Sweep(ctx, cutoff)
	if err != nil {
		log.Error().
			Err(err).
			Time("cutoff", cutoff).
			Msg("Activity sweep failed")
		return
	}
	if log.Debug().Enabled() {
		log.Debug().
			Uint("swept", swept).
			Time("cutoff", cutoff).
			Msg("Activity sweep finished")
	}
}

type zeroLogCronLogger struct {
}

func (z zeroLogCronLogger) Info(msg string, keysAndValues ...interface{}) {
	if log.Info().Enabled() {
		formatted := formatTimeValues(keysAndValues)
		log.Info().Fields(formatted).Msg(msg)
	}
}

func (z zeroLogCronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	if log.Error().Enabled() {
		formatted := formatTimeValues(keysAndValues)
		log.Error().Err(err).Fields(formatted).Msg(msg)
	}
}

// formatTimeValues formats any time.Time values as RFC3339 *and*
// returns the even-odd idx key-value pair slice as a map
func formatTimeValues(keysAndValues []interface{}) map[string]interface{} {
	formattedArgs := make(map[string]interface{}, len(keysAndValues)/2)
	for idx := 0; idx < len(keysAndValues); idx += 2 {
		var key string
		if s, ok := keysAndValues[idx].(string); ok {
			key = s
		} else {
			key = fmt.Sprint(keysAndValues[idx])
		}
		valueIdx := idx + 1
		if len(keysAndValues) > valueIdx {
			value := keysAndValues[valueIdx]
			if t, ok := value.(time.Time); ok {
				value = t.Format(time.RFC3339)
			}
			formattedArgs[key] = value
		}
	}
	return formattedArgs
}

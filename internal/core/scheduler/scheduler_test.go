package scheduler

import (
	"testing"
	"time"

	"bloomlet/internal/core/clock/clocktest"
	"bloomlet/internal/core/model"
	"bloomlet/internal/core/random"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScheduler(interval model.Interval) (*Scheduler, *clocktest.Fake, *int) {
	fake := clocktest.New(time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC))
	scheduler := New(interval, Config{Clock: fake, Random: random.NewScripted(0)})
	fired := 0
	scheduler.SetOnFire(func() { fired++ })
	return scheduler, fake, &fired
}

func TestDelayFor(t *testing.T) {
	rng := random.New()

	assert.Equal(t, 30*time.Minute, DelayFor(model.Interval30m, rng))
	assert.Equal(t, 60*time.Minute, DelayFor(model.Interval60m, rng))
	assert.Equal(t, 120*time.Minute, DelayFor(model.Interval120m, rng))
	assert.Equal(t, DelayFor(model.Interval60m, rng), DelayFor("bogus", rng))
	assert.Equal(t, DelayFor(model.Interval60m, rng), DelayFor("", rng))
}

func TestDelayForRandomWithinBounds(t *testing.T) {
	rng := random.New()
	for i := 0; i < 1000; i++ {
		delay := DelayFor(model.IntervalRandom, rng)
		assert.GreaterOrEqual(t, delay, 60*time.Minute)
		assert.LessOrEqual(t, delay, 120*time.Minute)
	}

	assert.Equal(t, 60*time.Minute, DelayFor(model.IntervalRandom, random.NewScripted(0)))
	assert.Equal(t, 120*time.Minute, DelayFor(model.IntervalRandom, random.NewScripted(1<<30)))
}

func TestStartFiresAndRearms(t *testing.T) {
	scheduler, fake, fired := newTestScheduler(model.Interval30m)
	scheduler.Start()
	assert.Equal(t, StateArmed, scheduler.State())

	fake.Advance(29 * time.Minute)
	assert.Equal(t, 0, *fired)

	fake.Advance(time.Minute)
	assert.Equal(t, 1, *fired)
	assert.Equal(t, StateArmed, scheduler.State())

	fake.Advance(90 * time.Minute)
	assert.Equal(t, 4, *fired)
	assert.Equal(t, 1, fake.Pending())
}

func TestStartReplacesPendingTimer(t *testing.T) {
	scheduler, fake, fired := newTestScheduler(model.Interval30m)
	scheduler.Start()
	fake.Advance(20 * time.Minute)
	scheduler.Start()

	assert.Equal(t, 1, fake.Pending())
	fake.Advance(20 * time.Minute)
	assert.Equal(t, 0, *fired)
	fake.Advance(10 * time.Minute)
	assert.Equal(t, 1, *fired)
}

func TestPauseStopsFutureFires(t *testing.T) {
	scheduler, fake, fired := newTestScheduler(model.Interval30m)
	scheduler.Start()

	scheduler.Pause()
	assert.False(t, scheduler.Active())
	assert.Equal(t, StateIdle, scheduler.State())

	scheduler.Start()
	assert.Equal(t, StateIdle, scheduler.State())

	fake.Advance(5 * time.Hour)
	assert.Equal(t, 0, *fired)
	assert.Equal(t, 0, fake.Pending())
}

func TestResumeRearms(t *testing.T) {
	scheduler, fake, fired := newTestScheduler(model.Interval60m)
	scheduler.Pause()
	scheduler.Resume()

	assert.True(t, scheduler.Active())
	next, ok := scheduler.NextFireAt()
	require.True(t, ok)
	assert.Equal(t, fake.Now().Add(60*time.Minute), next)

	fake.Advance(60 * time.Minute)
	assert.Equal(t, 1, *fired)
}

func TestStopKeepsActiveFlag(t *testing.T) {
	scheduler, fake, fired := newTestScheduler(model.Interval30m)
	scheduler.Start()
	scheduler.Stop()

	assert.True(t, scheduler.Active())
	fake.Advance(time.Hour)
	assert.Equal(t, 0, *fired)
}

func TestSetIntervalAppliesToNextFire(t *testing.T) {
	scheduler, fake, fired := newTestScheduler(model.Interval120m)
	scheduler.Start()
	fake.Advance(10 * time.Minute)

	scheduler.SetInterval(model.Interval30m)
	fake.Advance(29 * time.Minute)
	assert.Equal(t, 0, *fired)
	fake.Advance(time.Minute)
	assert.Equal(t, 1, *fired)
}

func TestSetIntervalWhilePausedStaysIdle(t *testing.T) {
	scheduler, fake, _ := newTestScheduler(model.Interval120m)
	scheduler.Pause()

	scheduler.SetInterval(model.Interval30m)

	assert.Equal(t, StateIdle, scheduler.State())
	assert.Equal(t, 0, fake.Pending())
}

func TestPauseFromFireHandlerPreventsRearm(t *testing.T) {
	scheduler, fake, _ := newTestScheduler(model.Interval30m)
	scheduler.SetOnFire(func() { scheduler.Pause() })
	scheduler.Start()

	fake.Advance(30 * time.Minute)

	assert.Equal(t, StateIdle, scheduler.State())
	assert.Equal(t, 0, fake.Pending())
}

func TestSubscribeReceivesEvents(t *testing.T) {
	scheduler, fake, _ := newTestScheduler(model.Interval30m)
	events := scheduler.Subscribe(8)

	scheduler.Start()
	fake.Advance(30 * time.Minute)

	first := <-events
	assert.Equal(t, EventStateChange, first.Type)
	assert.Equal(t, StateArmed, first.State)
	assert.Equal(t, 30*time.Minute, first.Delay)

	second := <-events
	assert.Equal(t, EventFired, second.Type)

	third := <-events
	assert.Equal(t, StateArmed, third.State)
}

func TestCloseClosesSubscribers(t *testing.T) {
	scheduler, fake, fired := newTestScheduler(model.Interval30m)
	events := scheduler.Subscribe(1)
	scheduler.Start()
	<-events

	scheduler.Close()
	fake.Advance(time.Hour)

	_, open := <-events
	assert.False(t, open)
	assert.Equal(t, 0, *fired)
	scheduler.Resume()
	assert.Equal(t, 0, fake.Pending())
}

/*
Copyright (c) Facebook, Inc. and its affiliates.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

/*
Package daemon runs timing source selection as a long living service.
It applies the ranking file on start and on SIGHUP and keeps polling
DPLL status for monitoring.
*/
package daemon

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/cespare/xxhash"
	sddaemon "github.com/coreos/go-systemd/daemon"
	"github.com/netclock/timingsrc/dpll"
	"github.com/netclock/timingsrc/timing"
	"github.com/netclock/timingsrc/timing/stats"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/unix"
)

var errShutdown = errors.New("shutdown requested")

// Daemon is a component of timingd that owns the store
type Daemon struct {
	cfg   *Config
	stats stats.Stats
	sys   *stats.SysStats

	store  *timing.Store
	config *timing.Config
	state  *timing.State

	rankingHash uint64
}

// New creates new daemon instance
func New(cfg *Config, st stats.Stats, driver dpll.Driver) *Daemon {
	store := timing.NewStore(driver, st)
	return &Daemon{
		cfg:    cfg,
		stats:  st,
		sys:    &stats.SysStats{},
		store:  store,
		config: timing.NewConfig(store),
		state:  timing.NewState(store),
	}
}

// readRanking returns the ranking file content. Missing file means empty request.
func readRanking(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Warningf("ranking file %s doesn't exist, using defaults", path)
		return nil, nil
	}
	return b, err
}

// Reload applies the ranking file. Unless forced, the file is only applied
// when its content changed since the last successful apply.
func (d *Daemon) Reload(force bool) (bool, error) {
	b, err := readRanking(d.cfg.RankingFile)
	if err != nil {
		return false, fmt.Errorf("reading ranking file: %w", err)
	}
	h := xxhash.Sum64(b)
	if !force && h == d.rankingHash {
		log.Info("ranking file is unchanged")
		return false, nil
	}
	if res := d.config.CheckJSON(b); !res.Accepted() {
		return false, fmt.Errorf("ranking file %s rejected: %w", d.cfg.RankingFile, res.Fault)
	}
	if err := d.config.SetJSON(b); err != nil {
		return false, fmt.Errorf("applying ranking file: %w", err)
	}
	d.rankingHash = h
	log.Infof("applied ranking, fingerprint %x", d.store.Snapshot().Fingerprint())
	return true, nil
}

func (d *Daemon) handleSighup() {
	log.Info("SIGHUP received, reloading ranking")
	applied, err := d.Reload(false)
	if err != nil {
		log.Errorf("Failed to reload ranking: %v. Moving on", err)
		return
	}
	if applied {
		d.stats.IncReload()
	}
}

// handleSignals reloads on SIGHUP and stops on SIGTERM or SIGINT
func (d *Daemon) handleSignals(ctx context.Context) error {
	sigchan := make(chan os.Signal, 10)
	signal.Notify(sigchan, unix.SIGHUP, unix.SIGTERM, unix.SIGINT)
	defer signal.Stop(sigchan)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sig := <-sigchan:
			if sig == unix.SIGHUP {
				d.handleSighup()
				continue
			}
			log.Warningf("%s received, shutting down", sig)
			return errShutdown
		}
	}
}

// tick polls the hardware once and takes a stats snapshot
func (d *Daemon) tick() {
	res := d.state.Get()
	log.Debugf("one-pps: %s, frequency: %s", res.OnePPS.Source, res.Frequency.Source)
	sys, err := d.sys.CollectRuntimeStats()
	if err != nil {
		log.Warningf("Failed to collect runtime stats: %v", err)
	} else {
		d.stats.SetSysStats(sys)
	}
	d.stats.Snapshot()
}

func (d *Daemon) poll(ctx context.Context) error {
	ticker := time.NewTicker(d.cfg.Interval)
	defer ticker.Stop()
	for {
		d.tick()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Run applies the ranking and serves until ctx is done or a stop signal arrives
func (d *Daemon) Run(ctx context.Context) error {
	if d.cfg.PidFile != "" {
		if err := d.cfg.CreatePidFile(); err != nil {
			return fmt.Errorf("creating pid file: %w", err)
		}
		defer func() {
			log.Info("Removing pid")
			if err := d.cfg.DeletePidFile(); err != nil {
				log.Errorf("Failed to remove pid file: %v", err)
			}
		}()
	}
	if _, err := d.Reload(true); err != nil {
		return err
	}
	if sent, err := sddaemon.SdNotify(false, sddaemon.SdNotifyReady); err != nil {
		log.Warningf("Failed to notify systemd: %v", err)
	} else if sent {
		log.Debug("notified systemd")
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error { return d.poll(ctx) })
	eg.Go(func() error { return d.handleSignals(ctx) })
	err := eg.Wait()
	if errors.Is(err, errShutdown) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

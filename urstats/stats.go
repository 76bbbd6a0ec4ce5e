// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package urstats

import (
	"sync/atomic"

	"go.uber.org/zap"
)

type Stats interface {
	// fountain layer
	PartReceived(seq uint32, count uint32, degree int)
	PartRejected(seq uint32, err error)
	FragmentResolved(index int, resolved int, total int)
	// the pending list is at capacity, the part is lost but the decoder stays usable
	MixedPartDropped(degree int, pending int)
	MessageComplete(length int, count uint32)

	// framing layer
	URRejected(ur string, err error)
}

// StatsLog reports rejections as warnings and, when printParts is set,
// every accepted part at debug level. Switches are safe to flip from
// another goroutine.
type StatsLog struct {
	log        *zap.Logger
	level      atomic.Int32
	printParts atomic.Bool
}

func NewStatsLog(log *zap.Logger) *StatsLog {
	return &StatsLog{log: log.Named("ur")}
}

func NewStatsLogVerbose(log *zap.Logger) *StatsLog {
	s := NewStatsLog(log)
	s.level.Store(1)
	s.printParts.Store(true)
	return s
}

// SetLevel < 0 silences rejections too.
func (s *StatsLog) SetLevel(level int32) { s.level.Store(level) }

func (s *StatsLog) SetPrintParts(print bool) { s.printParts.Store(print) }

func (s *StatsLog) PartReceived(seq uint32, count uint32, degree int) {
	if !s.printParts.Load() {
		return
	}
	s.log.Debug("part received",
		zap.Uint32("seq", seq), zap.Uint32("count", count), zap.Int("degree", degree))
}

func (s *StatsLog) PartRejected(seq uint32, err error) {
	if s.level.Load() < 0 {
		return
	}
	s.log.Warn("part rejected", zap.Uint32("seq", seq), zap.Error(err))
}

func (s *StatsLog) FragmentResolved(index int, resolved int, total int) {
	if !s.printParts.Load() {
		return
	}
	s.log.Debug("fragment resolved",
		zap.Int("index", index), zap.Int("resolved", resolved), zap.Int("total", total))
}

func (s *StatsLog) MixedPartDropped(degree int, pending int) {
	if s.level.Load() < 0 {
		return
	}
	s.log.Warn("mixed part dropped, pending list full",
		zap.Int("degree", degree), zap.Int("pending", pending))
}

func (s *StatsLog) MessageComplete(length int, count uint32) {
	if s.level.Load() < 0 {
		return
	}
	s.log.Info("message complete", zap.Int("length", length), zap.Uint32("count", count))
}

func (s *StatsLog) URRejected(ur string, err error) {
	if s.level.Load() < 0 {
		return
	}
	s.log.Warn("ur rejected", zap.String("ur", ur), zap.Error(err))
}

type statsNop struct{}

// NewStatsNop returns a sink discarding every event. Decoders use it when no
// sink is configured.
func NewStatsNop() Stats { return statsNop{} }

func (statsNop) PartReceived(uint32, uint32, int) {}
func (statsNop) PartRejected(uint32, error)       {}
func (statsNop) FragmentResolved(int, int, int)   {}
func (statsNop) MixedPartDropped(int, int)        {}
func (statsNop) MessageComplete(int, uint32)      {}
func (statsNop) URRejected(string, error)         {}

// Package sos распознаёт удержание SOS-кнопки и превращает его в одно событие активации.
package sos

import (
	"sync"
	"time"
)

// DefaultThreshold - время удержания кнопки до срабатывания
const DefaultThreshold = 2 * time.Second

// State - состояние детектора
type State string

const (
	StateIdle     State = "idle"
	StatePressing State = "pressing"
)

// Timer - отменяемый отложенный вызов
type Timer interface {
	Stop() bool
}

// Scheduler планирует однократный отложенный вызов
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// RealScheduler использует таймеры пакета time
func RealScheduler() Scheduler {
	return realScheduler{}
}

// pressGesture живёт только между началом нажатия и отпусканием/срабатыванием
type pressGesture struct {
	id        uint64
	startedAt time.Time
	timer     Timer
}

// Detector - автомат Idle/Pressing. На один жест приходится не больше одного таймера
// и не больше одной активации.
type Detector struct {
	threshold  time.Duration
	scheduler  Scheduler
	onActivate func()
	now        func() time.Time

	mu      sync.Mutex
	seq     uint64
	gesture *pressGesture
}

func NewDetector(threshold time.Duration, scheduler Scheduler, onActivate func()) *Detector {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if scheduler == nil {
		scheduler = RealScheduler()
	}
	return &Detector{
		threshold:  threshold,
		scheduler:  scheduler,
		onActivate: onActivate,
		now:        time.Now,
	}
}

// PressBegin переводит Idle -> Pressing и взводит таймер.
// Повторный вызов во время удержания ничего не делает и возвращает false.
func (d *Detector) PressBegin() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.gesture != nil {
		return false
	}
	d.seq++
	g := &pressGesture{id: d.seq, startedAt: d.now()}
	d.gesture = g
	g.timer = d.scheduler.AfterFunc(d.threshold, func() { d.fire(g.id) })
	return true
}

// PressEnd отменяет удержание до порога. Возвращает true, если жест был отменён.
func (d *Detector) PressEnd() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.gesture == nil {
		return false
	}
	d.gesture.timer.Stop()
	d.gesture = nil
	return true
}

func (d *Detector) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.gesture != nil {
		return StatePressing
	}
	return StateIdle
}

// HeldFor возвращает длительность текущего удержания
func (d *Detector) HeldFor() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.gesture == nil {
		return 0
	}
	return d.now().Sub(d.gesture.startedAt)
}

// fire срабатывает по таймеру. Жест, отменённый или сменившийся раньше, игнорируется.
func (d *Detector) fire(id uint64) {
	d.mu.Lock()
	if d.gesture == nil || d.gesture.id != id {
		d.mu.Unlock()
		return
	}
	d.gesture = nil
	d.mu.Unlock()

	if d.onActivate != nil {
		d.onActivate()
	}
}

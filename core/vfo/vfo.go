package vfo

import (
	"context"
	"fmt"
	"log"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ftl/rigproxy/pkg/protocol"
	"github.com/pkg/errors"

	"github.com/ftl/signalatlas/core"
)

// DefaultAddress of rigctld.
const DefaultAddress = "localhost:4532"

const (
	pollingInterval = 500 * time.Millisecond
	requestTimeout  = 2 * time.Second
)

// rig is the part of the rigctld transceiver the VFO talks to.
type rig interface {
	Send(ctx context.Context, req protocol.Request) (protocol.Response, error)
	Close()
}

// Open a connection to a hamlib VFO at the given network address. If address is empty, DefaultAddress is used.
func Open(address string) (*VFO, error) {
	if address == "" {
		address = DefaultAddress
	}
	conn, err := net.DialTimeout("tcp", address, 5*time.Second)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open VFO connection to %s", address)
	}

	trx := protocol.NewTransceiver(conn)
	trx.WhenDone(func() {
		conn.Close()
	})

	return newVFO(trx), nil
}

func newVFO(r rig) *VFO {
	return &VFO{
		rig:             r,
		pollingInterval: pollingInterval,
		requestTimeout:  requestTimeout,
		tune:            make(chan core.Frequency, 1),
		data:            make(chan core.Frequency, 1),
		reachable:       true,
		frequencyLock:   new(sync.RWMutex),
	}
}

// VFO follows the frequency of a rig through rigctld.
type VFO struct {
	rig             rig
	pollingInterval time.Duration
	requestTimeout  time.Duration

	tune chan core.Frequency
	data chan core.Frequency

	// reachable is only touched by the Run goroutine
	reachable bool

	currentFrequency core.Frequency
	frequencyLock    *sync.RWMutex
}

// Run polls the rig and forwards tune requests until stop is closed.
func (v *VFO) Run(stop chan struct{}, wait *sync.WaitGroup) {
	ctx, cancel := context.WithCancel(context.Background())
	wait.Add(1)
	go func() {
		defer wait.Done()
		defer v.shutdown()
		defer cancel()

		ticker := time.NewTicker(v.pollingInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				v.poll(ctx)
			case f := <-v.tune:
				v.tuneTo(ctx, f)
			case <-stop:
				return
			}
		}
	}()
	go func() {
		<-stop
		cancel()
	}()
}

func (v *VFO) shutdown() {
	v.rig.Close()
	log.Print("VFO shutdown")
}

func (v *VFO) poll(ctx context.Context) {
	response, err := v.send(ctx, protocol.Request{Command: protocol.ShortCommand("f")})
	if !v.track(err) {
		return
	}
	if len(response.Data) == 0 {
		log.Print("Polling frequency returned no data")
		return
	}

	f, err := hamlibToF(response.Data[0])
	if err != nil {
		log.Printf("Wrong frequency format %s: %v", response.Data[0], err)
		return
	}

	v.publish(f)
}

// tuneTo sends the frequency to the rig. The new frequency is published right away, the next poll corrects it if the rig tuned elsewhere.
func (v *VFO) tuneTo(ctx context.Context, f core.Frequency) {
	_, err := v.send(ctx, protocol.Request{Command: protocol.ShortCommand("F"), Args: []string{fToHamlib(f)}})
	if !v.track(err) {
		return
	}
	v.publish(f)
}

func (v *VFO) send(ctx context.Context, request protocol.Request) (protocol.Response, error) {
	ctx, cancel := context.WithTimeout(ctx, v.requestTimeout)
	defer cancel()

	response, err := v.rig.Send(ctx, request)
	if err != nil {
		return protocol.Response{}, errors.Wrapf(err, "%s failed", request.LongFormat())
	}
	if response.Result != "" && response.Result != "0" {
		return protocol.Response{}, errors.Errorf("%s rejected with RPRT %s", request.LongFormat(), response.Result)
	}
	return response, nil
}

// track logs transitions between a reachable and an unreachable rig and reports whether the request succeeded.
func (v *VFO) track(err error) bool {
	switch {
	case err != nil && v.reachable:
		v.reachable = false
		log.Print("rig unreachable: ", err)
	case err == nil && !v.reachable:
		v.reachable = true
		log.Print("rig reachable again")
	}
	return err == nil
}

// publish the given frequency if it changed. Only the latest frequency is kept for the consumer.
func (v *VFO) publish(f core.Frequency) {
	if !v.updateCurrentFrequency(f) {
		return
	}
	replaceLatest(v.data, f)
}

func (v *VFO) updateCurrentFrequency(f core.Frequency) bool {
	v.frequencyLock.Lock()
	defer v.frequencyLock.Unlock()
	if int(f) == int(v.currentFrequency) {
		return false
	}

	v.currentFrequency = f
	return true
}

func replaceLatest(c chan core.Frequency, f core.Frequency) {
	select {
	case <-c:
	default:
	}
	select {
	case c <- f:
	default:
	}
}

// Data returns the channel of frequency changes.
func (v *VFO) Data() <-chan core.Frequency {
	return v.data
}

// SetFrequency tunes the rig to the given frequency. A pending tune that was not sent yet is replaced.
func (v *VFO) SetFrequency(f core.Frequency) {
	replaceLatest(v.tune, f)
}

// CurrentFrequency returns the current frequency of the VFO.
func (v *VFO) CurrentFrequency() core.Frequency {
	v.frequencyLock.RLock()
	defer v.frequencyLock.RUnlock()
	return v.currentFrequency
}

func fToHamlib(f core.Frequency) string {
	return fmt.Sprintf("%d", int(f))
}

func hamlibToF(s string) (core.Frequency, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid frequency %q", s)
	}
	if f < 0 {
		return 0, errors.Errorf("negative frequency %q", s)
	}
	return core.Frequency(f), nil
}

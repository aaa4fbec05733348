package vfo

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/ftl/rigproxy/pkg/protocol"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ftl/signalatlas/core"
)

func TestHamlibToF(t *testing.T) {
	tt := []struct {
		value    string
		expected core.Frequency
		invalid  bool
	}{
		{"7074000", 7074000, false},
		{" 144390000\n", 144390000, false},
		{"14074000.000000", 14074000, false},
		{"", 0, true},
		{"RPRT -1", 0, true},
		{"-5", 0, true},
	}
	for i, tc := range tt {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			actual, err := hamlibToF(tc.value)
			if tc.invalid {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestFToHamlib(t *testing.T) {
	assert.Equal(t, "7074000", fToHamlib(7074000.4))
}

func TestPublishOnlyChanges(t *testing.T) {
	v := newVFO(newFakeRig())

	v.publish(7074000)
	v.publish(7074000)
	v.publish(7075000)

	assert.Equal(t, core.Frequency(7075000), <-v.Data())
	assert.Equal(t, core.Frequency(7075000), v.CurrentFrequency())
	select {
	case f := <-v.Data():
		t.Errorf("unexpected frequency %v", f)
	default:
	}
}

func TestPoll(t *testing.T) {
	r := newFakeRig()
	r.frequency = "14074000"
	v := newVFO(r)

	v.poll(context.Background())

	assert.Equal(t, core.Frequency(14074000), <-v.Data())
	assert.Equal(t, []string{"f"}, r.commands())
}

func TestPoll_RigUnreachable(t *testing.T) {
	r := newFakeRig()
	r.err = errors.New("connection reset")
	v := newVFO(r)

	v.poll(context.Background())
	assert.False(t, v.reachable)
	assert.Equal(t, core.Frequency(0), v.CurrentFrequency())

	r.setErr(nil)
	r.frequency = "7074000"
	v.poll(context.Background())
	assert.True(t, v.reachable)
	assert.Equal(t, core.Frequency(7074000), v.CurrentFrequency())
}

func TestTuneTo_PublishesAfterSuccess(t *testing.T) {
	r := newFakeRig()
	v := newVFO(r)

	v.tuneTo(context.Background(), 144390000)

	assert.Equal(t, core.Frequency(144390000), <-v.Data())
	require.Len(t, r.requests, 1)
	assert.Equal(t, []string{"144390000"}, r.requests[0].Args)
}

func TestTuneTo_RejectedByRig(t *testing.T) {
	r := newFakeRig()
	r.result = "-1"
	v := newVFO(r)

	v.tuneTo(context.Background(), 144390000)

	assert.False(t, v.reachable)
	assert.Equal(t, core.Frequency(0), v.CurrentFrequency())
	select {
	case f := <-v.Data():
		t.Errorf("unexpected frequency %v", f)
	default:
	}
}

func TestSend_TimesOut(t *testing.T) {
	r := newFakeRig()
	r.block = true
	v := newVFO(r)
	v.requestTimeout = 10 * time.Millisecond

	_, err := v.send(context.Background(), protocol.Request{Command: protocol.ShortCommand("f")})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSetFrequency_KeepsOnlyLatestPendingTune(t *testing.T) {
	v := newVFO(newFakeRig())

	v.SetFrequency(7074000)
	v.SetFrequency(7075000)
	v.SetFrequency(7076000)

	assert.Equal(t, core.Frequency(7076000), <-v.tune)
	select {
	case f := <-v.tune:
		t.Errorf("unexpected pending tune %v", f)
	default:
	}
}

func TestRun(t *testing.T) {
	r := newFakeRig()
	r.frequency = "3573000"
	v := newVFO(r)
	v.pollingInterval = time.Millisecond
	stop := make(chan struct{})
	wait := new(sync.WaitGroup)

	v.Run(stop, wait)
	assert.Equal(t, core.Frequency(3573000), <-v.Data())

	v.SetFrequency(3574000)
	assert.Equal(t, core.Frequency(3574000), <-v.Data())

	close(stop)
	wait.Wait()
	assert.True(t, r.isClosed())
}

type fakeRig struct {
	lock      sync.Mutex
	frequency string
	result    string
	err       error
	block     bool
	requests  []protocol.Request
	closed    bool
}

func newFakeRig() *fakeRig {
	return &fakeRig{result: "0"}
}

func (r *fakeRig) Send(ctx context.Context, req protocol.Request) (protocol.Response, error) {
	r.lock.Lock()
	r.requests = append(r.requests, req)
	block, err := r.block, r.err
	response := protocol.Response{Result: r.result}
	switch req.Command.Short {
	case 'f':
		response.Data = []string{r.frequency}
	case 'F':
		r.frequency = req.Args[0]
	}
	r.lock.Unlock()

	if block {
		<-ctx.Done()
		return protocol.Response{}, ctx.Err()
	}
	if err != nil {
		return protocol.Response{}, err
	}
	return response, nil
}

func (r *fakeRig) Close() {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.closed = true
}

func (r *fakeRig) setErr(err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.err = err
}

func (r *fakeRig) isClosed() bool {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.closed
}

func (r *fakeRig) commands() []string {
	r.lock.Lock()
	defer r.lock.Unlock()
	result := make([]string, 0, len(r.requests))
	for _, req := range r.requests {
		result = append(result, string(req.Command.Short))
	}
	return result
}

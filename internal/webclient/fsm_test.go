// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package webclient

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noteleaf/noteleaf/internal/logger"
	"github.com/noteleaf/noteleaf/internal/realtime"
	"github.com/noteleaf/noteleaf/models"
)

// ── Фейки зависимостей ──────────────────────────────────────────────────────

type fakeRelayListener struct {
	msg models.RelayMessage
	err error
}

func (f *fakeRelayListener) AwaitPhoneReady(_ context.Context, _, _ string) (models.RelayMessage, error) {
	return f.msg, f.err
}

type fakeHandshaker struct {
	mu    sync.Mutex
	probe func(phoneURL, token string) error
}

func (f *fakeHandshaker) Probe(_ context.Context, phoneURL, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.probe(phoneURL, token)
}

func (f *fakeHandshaker) set(probe func(phoneURL, token string) error) {
	f.mu.Lock()
	f.probe = probe
	f.mu.Unlock()
}

type fakeChannel struct {
	mu           sync.Mutex
	connectErr   error
	disconnected bool
	handlers     realtime.ChannelHandlers
}

func (f *fakeChannel) Connect(context.Context) error { return f.connectErr }

func (f *fakeChannel) Disconnect() {
	f.mu.Lock()
	f.disconnected = true
	f.mu.Unlock()
}

func (f *fakeChannel) isDisconnected() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.disconnected
}

// transitions собирает все смены состояния для проверки последовательности
type transitions struct {
	mu     sync.Mutex
	states []State
	ch     chan State
}

func newTransitions() *transitions {
	return &transitions{ch: make(chan State, 32)}
}

func (tr *transitions) observe(state State, _ DisconnectReason) {
	tr.mu.Lock()
	tr.states = append(tr.states, state)
	tr.mu.Unlock()
	tr.ch <- state
}

func (tr *transitions) waitFor(t *testing.T, want State) {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case got := <-tr.ch:
			if got == want {
				return
			}
		case <-deadline:
			t.Fatalf("never reached state %q, saw %v", want, tr.seen())
		}
	}
}

func (tr *transitions) seen() []State {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return append([]State(nil), tr.states...)
}

type fixture struct {
	machine    *Machine
	relay      *fakeRelayListener
	handshaker *fakeHandshaker
	sessions   *FileSessionStore
	bus        PresenceBus
	channel    *fakeChannel
	trans      *transitions
}

func newFixture(t *testing.T, bus PresenceBus) *fixture {
	t.Helper()

	if bus == nil {
		bus = NewMemoryPresenceBus()
	}

	f := &fixture{
		relay:      &fakeRelayListener{msg: models.RelayMessage{Type: models.RelayPhoneReady, IP: "192.168.1.23", Port: 8090}},
		handshaker: &fakeHandshaker{probe: func(string, string) error { return nil }},
		sessions:   NewFileSessionStore(filepath.Join(t.TempDir(), "session.json")),
		bus:        bus,
		channel:    &fakeChannel{},
		trans:      newTransitions(),
	}

	f.machine = NewMachine(f.relay, f.handshaker, f.sessions, f.bus,
		func(_, _ string, handlers realtime.ChannelHandlers) RealtimeChannel {
			f.channel.handlers = handlers
			return f.channel
		}, logger.Nop())
	f.machine.OnStateChange(f.trans.observe)

	return f
}

func (f *fixture) run(t *testing.T) context.CancelFunc {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	go f.machine.Run(ctx)
	t.Cleanup(cancel)
	return cancel
}

func validPayload() models.QRPayload {
	return models.QRPayload{
		Type:         models.QRPayloadType,
		Version:      models.QRPayloadVersion,
		SessionID:    "s-1",
		Token:        "pairing-token",
		RelayAddress: "wss://relay.noteleaf.test/relay",
	}
}

// ── Pairing flow ────────────────────────────────────────────────────────────

func TestMachine_PairHappyPath(t *testing.T) {
	f := newFixture(t, nil)
	f.run(t)

	f.machine.Pair(context.Background(), validPayload())
	f.trans.waitFor(t, StateConnected)

	assert.Equal(t, []State{StateQRLoading, StateQRDisplayed, StateConnecting, StateConnected}, f.trans.seen())

	// сессия должна быть сохранена для будущего восстановления
	record, err := f.sessions.Load()
	require.NoError(t, err)
	assert.Equal(t, "http://192.168.1.23:8090", record.PhoneURL)
	assert.Equal(t, "pairing-token", record.Token)
}

func TestMachine_PairRejectsUnknownPayload(t *testing.T) {
	f := newFixture(t, nil)
	f.run(t)

	payload := validPayload()
	payload.Version = 99
	f.machine.Pair(context.Background(), payload)

	f.trans.waitFor(t, StateDisconnected)
	_, reason := f.machine.State()
	assert.Equal(t, ReasonSessionExpired, reason)
}

func TestMachine_RelayFailureIsPhoneOffline(t *testing.T) {
	f := newFixture(t, nil)
	f.relay.err = errors.New("rendezvous timed out")
	f.run(t)

	f.machine.Pair(context.Background(), validPayload())

	f.trans.waitFor(t, StateDisconnected)
	_, reason := f.machine.State()
	assert.Equal(t, ReasonPhoneOffline, reason)
}

func TestMachine_HandshakeRejectionWipesSession(t *testing.T) {
	f := newFixture(t, nil)
	f.handshaker.set(func(string, string) error { return ErrHandshakeRejected })
	f.run(t)

	f.machine.Pair(context.Background(), validPayload())

	f.trans.waitFor(t, StateDisconnected)
	_, reason := f.machine.State()
	assert.Equal(t, ReasonSessionExpired, reason)

	_, err := f.sessions.Load()
	assert.ErrorIs(t, err, ErrNoStoredSession)
}

// ── Restoration ─────────────────────────────────────────────────────────────

func TestMachine_RestoresPersistedSession(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.sessions.Save(models.WebSessionRecord{
		PhoneURL: "http://192.168.1.23:8090", Token: "pairing-token", CreatedAt: time.Now(),
	}))

	f.run(t)
	f.trans.waitFor(t, StateConnected)

	assert.Equal(t, []State{StateRestoring, StateConnected}, f.trans.seen())
}

func TestMachine_RestoreUnreachableRetainsSession(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.sessions.Save(models.WebSessionRecord{
		PhoneURL: "http://192.168.1.23:8090", Token: "pairing-token",
	}))
	f.handshaker.set(func(string, string) error { return ErrPhoneUnreachable })

	f.run(t)
	f.trans.waitFor(t, StateDisconnected)

	_, reason := f.machine.State()
	assert.Equal(t, ReasonPhoneOffline, reason)

	// запись сохранена: телефон спит, а не отозвал сессию
	_, err := f.sessions.Load()
	assert.NoError(t, err)
}

func TestMachine_NoPersistedSessionStaysIdle(t *testing.T) {
	f := newFixture(t, nil)
	f.run(t)

	time.Sleep(100 * time.Millisecond)
	state, _ := f.machine.State()
	assert.Equal(t, StateIdle, state)
}

// ── Retry ───────────────────────────────────────────────────────────────────

func TestMachine_RetryAfterPhoneOfflineReconnects(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.sessions.Save(models.WebSessionRecord{
		PhoneURL: "http://192.168.1.23:8090", Token: "pairing-token",
	}))
	f.handshaker.set(func(string, string) error { return ErrPhoneUnreachable })

	f.run(t)
	f.trans.waitFor(t, StateDisconnected)

	// телефон проснулся
	f.handshaker.set(func(string, string) error { return nil })

	require.NoError(t, f.machine.Retry(context.Background()))
	f.trans.waitFor(t, StateConnected)
}

func TestMachine_RetryAfterSessionExpiredDemandsFreshQR(t *testing.T) {
	f := newFixture(t, nil)
	f.handshaker.set(func(string, string) error { return ErrHandshakeRejected })
	f.run(t)

	f.machine.Pair(context.Background(), validPayload())
	f.trans.waitFor(t, StateDisconnected)

	err := f.machine.Retry(context.Background())
	assert.ErrorIs(t, err, ErrFreshSessionRequired)
}

func TestMachine_RetryWhileConnectedIsNoop(t *testing.T) {
	f := newFixture(t, nil)
	f.run(t)

	f.machine.Pair(context.Background(), validPayload())
	f.trans.waitFor(t, StateConnected)

	assert.ErrorIs(t, f.machine.Retry(context.Background()), ErrNothingToRetry)
}

// ── Channel callbacks ───────────────────────────────────────────────────────

func TestMachine_SessionExpiredOverChannelWipesAndStops(t *testing.T) {
	f := newFixture(t, nil)
	f.run(t)

	f.machine.Pair(context.Background(), validPayload())
	f.trans.waitFor(t, StateConnected)

	f.channel.handlers.OnSessionExpired()
	f.trans.waitFor(t, StateDisconnected)

	_, reason := f.machine.State()
	assert.Equal(t, ReasonSessionExpired, reason)

	_, err := f.sessions.Load()
	assert.ErrorIs(t, err, ErrNoStoredSession)
}

func TestMachine_ConnectionLostRetainsSession(t *testing.T) {
	f := newFixture(t, nil)
	f.run(t)

	f.machine.Pair(context.Background(), validPayload())
	f.trans.waitFor(t, StateConnected)

	f.channel.handlers.OnConnectionLost()
	f.trans.waitFor(t, StateDisconnected)

	_, reason := f.machine.State()
	assert.Equal(t, ReasonConnectionLost, reason)

	_, err := f.sessions.Load()
	assert.NoError(t, err)
}

// ── Manual disconnect ───────────────────────────────────────────────────────

func TestMachine_ManualDisconnectWipesSession(t *testing.T) {
	f := newFixture(t, nil)
	f.run(t)

	f.machine.Pair(context.Background(), validPayload())
	f.trans.waitFor(t, StateConnected)

	f.machine.Disconnect()
	f.trans.waitFor(t, StateDisconnected)

	_, reason := f.machine.State()
	assert.Equal(t, ReasonManual, reason)
	assert.True(t, f.channel.isDisconnected())

	_, err := f.sessions.Load()
	assert.ErrorIs(t, err, ErrNoStoredSession)
}

// ── Single active instance ──────────────────────────────────────────────────

func TestMachine_SecondInstanceDisplacesFirst(t *testing.T) {
	bus := NewMemoryPresenceBus()

	first := newFixture(t, bus)
	first.run(t)
	first.machine.Pair(context.Background(), validPayload())
	first.trans.waitFor(t, StateConnected)

	second := newFixture(t, bus)
	second.run(t)
	second.machine.Pair(context.Background(), validPayload())
	second.trans.waitFor(t, StateConnected)

	// первый экземпляр уступает место второму
	first.trans.waitFor(t, StateDisconnected)
	_, reason := first.machine.State()
	assert.Equal(t, ReasonAnotherTab, reason)

	state, _ := second.machine.State()
	assert.Equal(t, StateConnected, state)
}

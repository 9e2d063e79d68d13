// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package sdpagent negotiates session descriptions with the offer/answer
// model of RFC 3264. An Agent delegates every media line to a registered
// MediaHandler and ties media lines together with BUNDLE groups (RFC 8843).
package sdpagent

import (
	"context"
	"fmt"
	"sync"

	"github.com/looplab/fsm"
	"github.com/pion/logging"
)

// Agent builds offers and answers from its registered media handlers.
// All methods are safe for concurrent use; each one runs under a single
// non-reentrant lock. See MediaHandler for the consequence on handlers.
type Agent struct {
	mu sync.Mutex

	useIPv6 bool
	bundle  bool

	originUsername string
	sessionName    string
	address        string
	sessionID      uint64
	sessionVersion uint64

	handlers *handlerRegistry
	groups   *groupRegistry

	signaling     *fsm.FSM
	currentLocal  *SessionDescription
	pendingLocal  *SessionDescription
	currentRemote *SessionDescription
	pendingRemote *SessionDescription

	loggerFactory logging.LoggerFactory
	log           logging.LeveledLogger
	metrics       *Metrics
}

// NewAgent creates an Agent. Without options it offers IPv4, does not
// bundle answers and logs through the pion default logger factory.
func NewAgent(options ...func(*Agent)) *Agent {
	a := &Agent{
		originUsername: defaultOriginUsername,
		sessionName:    defaultSessionName,
		handlers:       newHandlerRegistry(),
		groups:         &groupRegistry{},
	}

	for _, o := range options {
		o(a)
	}

	if a.loggerFactory == nil {
		a.loggerFactory = logging.NewDefaultLoggerFactory()
	}
	a.log = a.loggerFactory.NewLogger("sdpagent")

	a.signaling = newSignalingFSM(fsm.Callbacks{
		"enter_state": func(_ context.Context, e *fsm.Event) {
			a.log.Debugf("signaling state changed %s -> %s (%s)", e.Src, e.Dst, e.Event)
		},
	})

	return a
}

// WithIPv6 selects IP6 addresses for the origin and connection lines.
func WithIPv6(enabled bool) func(*Agent) {
	return func(a *Agent) {
		a.useIPv6 = enabled
	}
}

// WithBundle makes answers mirror the BUNDLE groups of the offer. Offers
// ignore the flag: they always carry the groups built with
// CreateBundleGroup and AddHandlerToGroup, and none when no group has
// members.
func WithBundle(enabled bool) func(*Agent) {
	return func(a *Agent) {
		a.bundle = enabled
	}
}

// WithLoggerFactory sets the factory the Agent creates its logger from.
func WithLoggerFactory(factory logging.LoggerFactory) func(*Agent) {
	return func(a *Agent) {
		a.loggerFactory = factory
	}
}

// WithMetrics makes the Agent record into m.
func WithMetrics(m *Metrics) func(*Agent) {
	return func(a *Agent) {
		a.metrics = m
	}
}

// WithSessionName overrides the s= line.
func WithSessionName(name string) func(*Agent) {
	return func(a *Agent) {
		a.sessionName = name
	}
}

// WithOriginUsername overrides the username of the o= line.
func WithOriginUsername(username string) func(*Agent) {
	return func(a *Agent) {
		a.originUsername = username
	}
}

// WithAddress overrides the unspecified address of the o= and c= lines. The
// address must belong to the family selected with WithIPv6 or be a hostname.
func WithAddress(address string) func(*Agent) {
	return func(a *Agent) {
		a.address = address
	}
}

func (a *Agent) isClosed() bool {
	return a.signaling.Current() == signalingStateClosedStr
}

// AddHandler registers handler for media. Ids are assigned in registration
// order starting at 0. Registering a second handler for the same media and
// protocol fails with ErrDuplicateBinding and consumes no id.
func (a *Agent) AddHandler(media string, handler MediaHandler) (HandlerID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.isClosed() {
		return 0, ErrAgentClosed
	}

	id, err := a.handlers.register(media, handler)
	if err != nil {
		return 0, err
	}
	a.log.Debugf("registered handler %d for %s %s", id, media, handler.Protocol())

	return id, nil
}

// CreateBundleGroup allocates a new, empty bundle group.
func (a *Agent) CreateBundleGroup() GroupID {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.groups.create()
}

// AddHandlerToGroup adds a handler to a bundle group. Adding a handler that
// is already a member succeeds without change.
func (a *Agent) AddHandlerToGroup(gid GroupID, hid HandlerID) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.isClosed() {
		return ErrAgentClosed
	}

	return a.groups.add(gid, hid, func(id HandlerID) bool {
		return a.handlers.get(id) != nil
	})
}

// GroupMembers returns the handler ids of a bundle group in insertion order.
func (a *Agent) GroupMembers(gid GroupID) ([]HandlerID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.isClosed() {
		return nil, ErrAgentClosed
	}

	return a.groups.members(gid)
}

// CreateOffer asks every registered handler for a media line, in
// registration order. Handlers that fail are left out of the offer.
func (a *Agent) CreateOffer() (SessionDescription, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.isClosed() {
		return SessionDescription{}, ErrAgentClosed
	}

	return a.createOffer()
}

// CreateAnswer answers remote with exactly one media line per offered media
// line, in offer order. Offered media without a handler, or whose handler
// fails, are rejected with port 0.
func (a *Agent) CreateAnswer(remote SessionDescription) (SessionDescription, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.isClosed() {
		return SessionDescription{}, ErrAgentClosed
	}

	offer, err := remote.Unmarshal()
	if err != nil {
		return SessionDescription{}, err
	}

	return a.createAnswer(offer)
}

// SetLocalDescription applies a local description and advances the
// signaling state.
func (a *Agent) SetLocalDescription(desc SessionDescription) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.setDescription(desc, stateChangeOpSetLocal)
}

// SetRemoteDescription applies a remote description and advances the
// signaling state.
func (a *Agent) SetRemoteDescription(desc SessionDescription) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.setDescription(desc, stateChangeOpSetRemote)
}

func (a *Agent) setDescription(desc SessionDescription, op stateChangeOp) error {
	if a.isClosed() {
		return ErrAgentClosed
	}

	if desc.Type != SDPTypeRollback {
		if _, err := desc.Unmarshal(); err != nil {
			return err
		}
	}

	cur := a.signaling.Current()
	if err := a.signaling.Event(context.Background(), signalingEvent(op, desc.Type)); err != nil {
		return fmt.Errorf("%w: %s->%s(%s): %w", ErrInvalidSignalingTransition, cur, op, desc.Type, err)
	}

	switch desc.Type {
	case SDPTypeRollback:
		a.pendingLocal, a.pendingRemote = nil, nil
	case SDPTypeAnswer:
		if op == stateChangeOpSetLocal {
			a.currentLocal, a.currentRemote = &desc, a.pendingRemote
		} else {
			a.currentLocal, a.currentRemote = a.pendingLocal, &desc
		}
		a.pendingLocal, a.pendingRemote = nil, nil
	default:
		if op == stateChangeOpSetLocal {
			a.pendingLocal = &desc
		} else {
			a.pendingRemote = &desc
		}
	}

	return nil
}

// LocalDescription returns a copy of the pending local description if there
// is one, otherwise of the current one. It returns nil before any was set.
func (a *Agent) LocalDescription() *SessionDescription {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.pendingLocal != nil {
		return a.pendingLocal.copy()
	}

	return a.currentLocal.copy()
}

// RemoteDescription returns a copy of the pending remote description if
// there is one, otherwise of the current one. It returns nil before any was
// set.
func (a *Agent) RemoteDescription() *SessionDescription {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.pendingRemote != nil {
		return a.pendingRemote.copy()
	}

	return a.currentRemote.copy()
}

// SignalingState returns the signaling state.
func (a *Agent) SignalingState() SignalingState {
	a.mu.Lock()
	defer a.mu.Unlock()

	return newSignalingState(a.signaling.Current())
}

// UseIPv6 reports whether documents carry IP6 addresses.
func (a *Agent) UseIPv6() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.useIPv6
}

// SetUseIPv6 selects the address family of later documents.
func (a *Agent) SetUseIPv6(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.useIPv6 = enabled
}

// Bundle reports whether answers mirror the offered BUNDLE groups.
func (a *Agent) Bundle() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.bundle
}

// SetBundle enables or disables BUNDLE in later answers. Offers are not
// affected, see WithBundle.
func (a *Agent) SetBundle(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.bundle = enabled
}

// Close moves the agent to the closed signaling state. Later operations
// return ErrAgentClosed. Closing twice is a no-op.
func (a *Agent) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.isClosed() {
		return nil
	}

	return a.signaling.Event(context.Background(), eventClose)
}

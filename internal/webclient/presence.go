package webclient

import (
	"context"
	"net"
	"sync"

	"github.com/noteleaf/noteleaf/internal/logger"
)

// PresenceBus is the advisory cross-instance "only one active" broadcast.
// It must tolerate duplicate and lost messages: a missed signal costs at
// worst two simultaneously active instances until the next reconnect
// cycle, never data corruption.
type PresenceBus interface {
	// Announce broadcasts that instanceID just became active.
	Announce(instanceID string) error

	// Listen invokes onOther for every announcement from a different
	// instance until ctx is cancelled.
	Listen(ctx context.Context, instanceID string, onOther func(otherID string)) error
}

// UDPPresenceBus announces over a well-known loopback UDP port. Only one
// instance can bind the port to listen; the others announce blind. Lost
// messages are acceptable by contract.
type UDPPresenceBus struct {
	addr   string
	logger *logger.Logger
}

// NewUDPPresenceBus uses addr (e.g. "127.0.0.1:48627") as the shared
// announcement port.
func NewUDPPresenceBus(addr string, logger *logger.Logger) *UDPPresenceBus {
	return &UDPPresenceBus{addr: addr, logger: logger}
}

func (b *UDPPresenceBus) Announce(instanceID string) error {
	conn, err := net.Dial("udp", b.addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	_, err = conn.Write([]byte(instanceID))
	return err
}

func (b *UDPPresenceBus) Listen(ctx context.Context, instanceID string, onOther func(otherID string)) error {
	udpAddr, err := net.ResolveUDPAddr("udp", b.addr)
	if err != nil {
		return err
	}

	conn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		// Another instance already holds the port; announcements still
		// reach it, we just cannot hear others. Advisory means this is
		// acceptable.
		b.logger.Warn().Err(err).Msg("presence listen unavailable, continuing without")
		<-ctx.Done()
		return nil
	}

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	buf := make([]byte, 256)
	for {
		n, _, err := conn.ReadFromUDP(buf)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		if otherID := string(buf[:n]); otherID != "" && otherID != instanceID {
			onOther(otherID)
		}
	}
}

// memoryPresenceBus is an in-process bus used by tests and by embedded
// setups where all instances share one process. Announcements fan out to
// every listener; full subscriber buffers drop, matching the advisory
// contract.
type memoryPresenceBus struct {
	mu          sync.Mutex
	subscribers []chan string
}

// NewMemoryPresenceBus returns a process-local presence bus.
func NewMemoryPresenceBus() PresenceBus {
	return &memoryPresenceBus{}
}

func (b *memoryPresenceBus) Announce(instanceID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, sub := range b.subscribers {
		select {
		case sub <- instanceID:
		default:
		}
	}
	return nil
}

func (b *memoryPresenceBus) Listen(ctx context.Context, instanceID string, onOther func(otherID string)) error {
	sub := make(chan string, 16)
	b.mu.Lock()
	b.subscribers = append(b.subscribers, sub)
	b.mu.Unlock()

	for {
		select {
		case otherID := <-sub:
			if otherID != instanceID {
				onOther(otherID)
			}
		case <-ctx.Done():
			return nil
		}
	}
}

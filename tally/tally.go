// Package tally broadcasts live cuts over OSC so a vision mixer or
// show-control system can follow the operator.
package tally

import (
	"fmt"
	"net"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/hypebeast/go-osc/osc"

	"github.com/user/showcut-cli/cue"
	"github.com/user/showcut-cli/editor"
)

// CutAddress is the OSC address of a cut message. Arguments are the camera
// (int32), the playhead time in seconds (float32) and the cue id (string).
const CutAddress = "/showcut/cut"

// Sender delivers an OSC packet. *osc.Client satisfies it.
type Sender interface {
	Send(packet osc.Packet) error
}

// Notifier sends a cut message for every live cut applied in a session.
// A Notifier without a sender is disabled and ignores edits.
type Notifier struct {
	sender Sender
	target string
	logger *log.Logger
}

// New returns a notifier sending to addr (host:port). An empty addr
// returns a disabled notifier.
func New(addr string, logger *log.Logger) (*Notifier, error) {
	if logger == nil {
		logger = log.Default()
	}
	if addr == "" {
		return &Notifier{logger: logger}, nil
	}
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, fmt.Errorf("tally address %q: %w", addr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 || port > 65535 {
		return nil, fmt.Errorf("tally address %q: invalid port", addr)
	}
	if host == "" {
		host = "127.0.0.1"
	}
	return NewWithSender(osc.NewClient(host, port), addr, logger), nil
}

// NewWithSender returns a notifier using s. target is only used in logs.
func NewWithSender(s Sender, target string, logger *log.Logger) *Notifier {
	if logger == nil {
		logger = log.Default()
	}
	return &Notifier{sender: s, target: target, logger: logger}
}

// Enabled reports whether the notifier sends anything.
func (n *Notifier) Enabled() bool {
	return n.sender != nil
}

// Message builds the cut message for e.
func Message(e editor.Edit) *osc.Message {
	msg := osc.NewMessage(CutAddress)
	msg.Append(int32(e.Camera))
	msg.Append(float32(e.At.Time))
	msg.Append(e.AffectedID)
	return msg
}

// EditApplied implements editor.Listener. Only splits and corrections that
// name a camera are sent; send failures are logged.
func (n *Notifier) EditApplied(e editor.Edit) {
	if !n.Enabled() || e.Camera < 1 {
		return
	}
	if e.Kind != cue.Split && e.Kind != cue.Corrected {
		return
	}
	msg := Message(e)
	if err := n.sender.Send(msg); err != nil {
		n.logger.Warn("tally send failed", "target", n.target, "err", err)
		return
	}
	n.logger.Debug("tally sent", "target", n.target, "camera", e.Camera, "t", e.At.Time)
}

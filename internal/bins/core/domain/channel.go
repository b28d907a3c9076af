package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxChannelID is the largest channel id a timetag record can carry.
const MaxChannelID = 15

type ChannelID int

type Channel struct {
	ID    ChannelID
	Label string
}

// DefaultLabel is used when a channel is selected without a label.
func DefaultLabel(id ChannelID) string {
	return fmt.Sprintf("Channel %d", id)
}

// ChannelSet is an ordered id -> label mapping. Iteration follows insertion
// order, which is also the legend order.
type ChannelSet struct {
	channels []Channel
	index    map[ChannelID]int
}

func NewChannelSet() *ChannelSet {
	return &ChannelSet{index: make(map[ChannelID]int)}
}

// DefaultChannels returns the donor/acceptor pair used when nothing is selected.
func DefaultChannels() *ChannelSet {
	s := NewChannelSet()
	_ = s.Add(0, "donor")
	_ = s.Add(1, "acceptor")
	return s
}

// Add appends a channel. An empty label falls back to DefaultLabel.
func (s *ChannelSet) Add(id ChannelID, label string) error {
	if id < 0 || id > MaxChannelID {
		return fmt.Errorf("channel %d out of range [0, %d]", id, MaxChannelID)
	}
	if _, exists := s.index[id]; exists {
		return fmt.Errorf("channel %d selected more than once", id)
	}
	if label == "" {
		label = DefaultLabel(id)
	}
	s.index[id] = len(s.channels)
	s.channels = append(s.channels, Channel{ID: id, Label: label})
	return nil
}

func (s *ChannelSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.channels)
}

// Channels returns a copy of the channels in insertion order.
func (s *ChannelSet) Channels() []Channel {
	if s == nil {
		return nil
	}
	out := make([]Channel, len(s.channels))
	copy(out, s.channels)
	return out
}

func (s *ChannelSet) Label(id ChannelID) (string, bool) {
	if s == nil {
		return "", false
	}
	i, ok := s.index[id]
	if !ok {
		return "", false
	}
	return s.channels[i].Label, true
}

// ParseChannelSpec parses "CH" or "CH=LABEL".
func ParseChannelSpec(spec string) (ChannelID, string, error) {
	idText, label, _ := strings.Cut(spec, "=")
	id, err := strconv.Atoi(strings.TrimSpace(idText))
	if err != nil {
		return 0, "", fmt.Errorf("invalid channel %q: want CH or CH=LABEL", spec)
	}
	return ChannelID(id), strings.TrimSpace(label), nil
}

// ParseChannelSet builds a ChannelSet from CH[=LABEL] specs, in order.
func ParseChannelSet(specs []string) (*ChannelSet, error) {
	s := NewChannelSet()
	for _, spec := range specs {
		id, label, err := ParseChannelSpec(spec)
		if err != nil {
			return nil, err
		}
		if err := s.Add(id, label); err != nil {
			return nil, err
		}
	}
	return s, nil
}

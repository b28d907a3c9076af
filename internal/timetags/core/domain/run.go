package domain

// ChannelTicks is the ordered ticks of one detector channel.
type ChannelTicks struct {
	Channel int
	Ticks   []uint64
}

// Run is one recorded acquisition as stored in the database.
type Run struct {
	ID       string
	Jiffy    float64
	Source   string
	Channels []ChannelTicks
}

func (r *Run) EventCount() int {
	n := 0
	for _, c := range r.Channels {
		n += len(c.Ticks)
	}
	return n
}

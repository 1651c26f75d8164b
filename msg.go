package riffle

// Producer messages travel through the queue and are applied by the
// event loop in arrival order.

type appendMsg struct {
	text string
}

type setTextMsg struct {
	text string
}

type promptMsg struct {
	text string
}

type statusMsg struct {
	text string
}

type lineNumbersMsg struct {
	on bool
}

type lineWrapMsg struct {
	on bool
}

type followMsg struct {
	on bool
}

type exitOnFitMsg struct {
	on bool
}

type exitMsg struct{}

type errorMsg struct {
	err   error
	fatal bool
}

// queueClosedMsg tells the event loop the producer is done. No more
// messages will arrive, so the pump stops.
type queueClosedMsg struct{}

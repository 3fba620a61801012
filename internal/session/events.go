package session

// EventKind identifies a notification emitted by the session.
type EventKind string

const (
	EventCellChanged      EventKind = "cell_changed"
	EventScoreChanged     EventKind = "score_changed"
	EventHighScoreChanged EventKind = "high_score_changed"
	EventGenerationFailed EventKind = "generation_failed"
)

// Event is a single change notification. Row, Col and Value are set for
// EventCellChanged; Total is set for the score events.
type Event struct {
	Kind  EventKind `json:"kind"`
	Row   int       `json:"row"`
	Col   int       `json:"col"`
	Value uint32    `json:"value"`
	Total int       `json:"total"`
}

// Renderer receives session notifications.
// Implementations must not call back into the session.
type Renderer interface {
	CellChanged(row, col int, value uint32)
	ScoreChanged(total int)
	HighScoreChanged(total int)
	GenerationFailed()
}

// Dispatch forwards events to r in order.
func Dispatch(r Renderer, events []Event) {
	if r == nil {
		return
	}
	for _, ev := range events {
		switch ev.Kind {
		case EventCellChanged:
			r.CellChanged(ev.Row, ev.Col, ev.Value)
		case EventScoreChanged:
			r.ScoreChanged(ev.Total)
		case EventHighScoreChanged:
			r.HighScoreChanged(ev.Total)
		case EventGenerationFailed:
			r.GenerationFailed()
		}
	}
}

func cellChanged(row, col int, value uint32) Event {
	return Event{Kind: EventCellChanged, Row: row, Col: col, Value: value}
}

func scoreChanged(total int) Event {
	return Event{Kind: EventScoreChanged, Total: total}
}

func highScoreChanged(total int) Event {
	return Event{Kind: EventHighScoreChanged, Total: total}
}

func generationFailed() Event {
	return Event{Kind: EventGenerationFailed}
}

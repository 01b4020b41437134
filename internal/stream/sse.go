package stream

import (
	"bufio"
	"encoding/json"
	"fmt"
)

// WriteSSE writes one event in SSE wire format and flushes. A failed write
// means the client is gone and is treated as cancellation by the caller.
func WriteSSE(w *bufio.Writer, ev Event) error {
	payload, err := json.Marshal(ev.Data)
	if err != nil {
		return fmt.Errorf("marshal sse event %q: %w", ev.Name, err)
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Name, payload); err != nil {
		return err
	}
	return w.Flush()
}

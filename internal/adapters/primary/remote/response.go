package remote

import (
	"bytes"
	"fmt"
	"io"
)

// Response is one complete wire response. The protocol always answers
// 200 OK: the remote client is self-served and branch-free on failure, so
// there is never a recipient for a 4xx or 5xx.
type Response struct {
	ContentType string
	Body        []byte
}

// statusOK is the body for every action route
const statusOK = `{"status":"ok"}`

// okResponse answers an action route
func okResponse() Response {
	return Response{ContentType: "application/json", Body: []byte(statusOK)}
}

// writeTo writes the response in a single call: status line, the three fixed
// headers, blank line, body. Connection: close is unconditional; every
// request is exactly one connection.
func (r Response) writeTo(w io.Writer) error {
	var buf bytes.Buffer
	buf.WriteString("HTTP/1.1 200 OK\r\n")
	fmt.Fprintf(&buf, "Content-Type: %s\r\n", r.ContentType)
	fmt.Fprintf(&buf, "Content-Length: %d\r\n", len(r.Body))
	buf.WriteString("Connection: close\r\n\r\n")
	buf.Write(r.Body)

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("writing response: %w", err)
	}
	return nil
}

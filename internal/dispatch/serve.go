package dispatch

import (
	"bufio"
	"context"
	"io"
	"net"

	"go.uber.org/zap"
)

// ServeLines reads newline-delimited requests from r, dispatches each
// through h, and writes one newline-delimited reply per request to w. It
// returns on a clean io.EOF (nil error) or the first I/O error encountered.
// A dispatch error is not fatal to the stream: its message is written as
// the reply line and reading continues, mirroring
// original_source/src/server.rs::Server::serve's per-line match on
// Ok/Err.
func ServeLines(r io.Reader, w io.Writer, h *Handler) error {
	scanner := bufio.NewScanner(r)
	bw := bufio.NewWriter(w)
	defer bw.Flush()

	for scanner.Scan() {
		reply, err := h.Dispatch(Tokenize(scanner.Text()))
		if err != nil {
			if _, werr := bw.WriteString(err.Error() + "\n"); werr != nil {
				return werr
			}
		} else {
			if _, werr := bw.Write(reply); werr != nil {
				return werr
			}
			if _, werr := bw.WriteString("\n"); werr != nil {
				return werr
			}
		}
		if err := bw.Flush(); err != nil {
			return err
		}
	}

	return scanner.Err()
}

// ServeStdin runs ServeLines over stdin/stdout until EOF (Ctrl-D) or ctx is
// cancelled, whichever comes first. Like ServeTCP, it returns nil when ctx
// is cancelled.
func ServeStdin(ctx context.Context, stdin io.Reader, stdout io.Writer, h *Handler) error {
	done := make(chan error, 1)
	go func() { done <- ServeLines(stdin, stdout, h) }()

	select {
	case <-ctx.Done():
		return nil
	case err := <-done:
		return err
	}
}

// ServeTCP accepts connections on ln, running ServeLines against each one
// in its own goroutine, until ctx is cancelled. Grounded on
// shake-karrot-lightkafka/cmd/broker/main.go's accept loop and
// signal.Notify-driven shutdown: the caller cancels ctx when a shutdown
// signal arrives, and ServeTCP then closes ln itself, which unwinds the
// Accept loop and returns nil. Connections already being served are not
// closed by this.
func ServeTCP(ctx context.Context, ln net.Listener, h *Handler, log *zap.SugaredLogger) error {
	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		go func(c net.Conn) {
			defer c.Close()
			if err := ServeLines(c, c, h); err != nil && ctx.Err() == nil {
				log.Warnw("connection closed with error", "remote", c.RemoteAddr(), "error", err)
			}
		}(conn)
	}
}

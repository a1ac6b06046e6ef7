//go:build errsum && !windows

package cases

import (
	"encoding/json"
	"io"
	"net"
	"strconv"
)

// fs takes the natural name of io/fs.
var fs = "shadow"

// LocalError is declared next to its users.
type LocalError struct {
	Reason string
}

func (e LocalError) Error() string { return e.Reason }

// Server serves.
type Server struct {
	conn io.Closer
}

// Close closes the connection.
//
//errsum:errors *net.OpError, LocalError = Local
func (s *Server) Close() {
	if s.conn == nil {
		return LocalError{Reason: "not connected"}
	}

	return s.conn.Close()
}

//errsum:errors *encoding/json.SyntaxError, *io/fs.PathError,
func decode(data []byte) (n int, ok bool) {
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return 0, false, err
	}

	n, ok = v, true
	return
}

// Parse parses a decimal number.
//
//errsum:errors *strconv.NumError
func Parse[T ~int64](s string) T {
	v, err := strconv.ParseInt(s, 10, 64)
	return T(v), err
}

// Unchanged is kept as is.
func Unchanged() string {
	return fs
}

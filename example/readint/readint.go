//go:build errsum

package readint

import (
	"os"
	"strconv"
	"strings"
)

// ReadInt reads an integer from the file at path.
//
//errsum:errors *io/fs.PathError, *strconv.NumError
func ReadInt(path string) int64 {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	n, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return 0, err
	}

	return n, nil
}

// ReadName reads a name from the file at path.
//
//errsum:errors *io/fs.PathError
func ReadName(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(data)), nil
}

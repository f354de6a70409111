// Package io reads SMTP reply lines from a server connection.
package io

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
)

// MaxReplyLine is the reply line limit from RFC 5321 Section 4.5.3.1.5,
// including the trailing CRLF.
const MaxReplyLine = 512

var (
	ErrLineTooLong   = errors.New("smtp: reply line too long")
	ErrBadLineEnding = errors.New("smtp: reply line not terminated by CRLF")
	ErrMalformed     = errors.New("smtp: malformed reply line")
)

// ReadLine reads a single reply line of at most max bytes and returns it
// without its line terminator. With strict set, a bare LF ending is
// rejected; otherwise it is tolerated, since many servers emit one.
func ReadLine(reader *bufio.Reader, max int, strict bool) (string, error) {
	line, err := reader.ReadSlice('\n')
	if err == nil {
		return trimEnding(line, max, strict)
	}
	if err != bufio.ErrBufferFull {
		return "", err
	}

	// The line did not fit in the bufio buffer; accumulate it.
	buf := append([]byte(nil), line...)
	for {
		line, err = reader.ReadSlice('\n')
		if len(buf)+len(line) > max {
			drainLine(reader, err)
			return "", ErrLineTooLong
		}
		buf = append(buf, line...)
		if err == nil {
			break
		}
		if err != bufio.ErrBufferFull {
			return "", err
		}
	}
	return trimEnding(buf, max, strict)
}

// trimEnding enforces the length limit and strips CRLF or LF.
func trimEnding(b []byte, max int, strict bool) (string, error) {
	if len(b) > max {
		return "", ErrLineTooLong
	}
	n := len(b) - 1
	if n > 0 && b[n-1] == '\r' {
		return string(b[:n-1]), nil
	}
	if strict {
		return "", ErrBadLineEnding
	}
	return string(b[:n]), nil
}

// drainLine discards the rest of an oversized line so the next read
// starts on a line boundary.
func drainLine(reader *bufio.Reader, err error) {
	for err == bufio.ErrBufferFull {
		_, err = reader.ReadSlice('\n')
	}
}

// ReplyLine is one parsed line of a possibly multiline SMTP reply.
type ReplyLine struct {
	Code int
	Last bool // "250 text" ends a reply, "250-text" continues it
	Text string
}

// ParseReplyLine splits a reply line into its code, continuation marker
// and text. A bare three digit code is accepted as a final line.
func ParseReplyLine(line string) (ReplyLine, error) {
	if len(line) < 3 {
		return ReplyLine{}, fmt.Errorf("%w: line too short: %q", ErrMalformed, line)
	}
	code, err := strconv.Atoi(line[:3])
	if err != nil || code < 100 || code > 599 {
		return ReplyLine{}, fmt.Errorf("%w: invalid code: %q", ErrMalformed, line)
	}
	if len(line) == 3 {
		return ReplyLine{Code: code, Last: true}, nil
	}
	switch line[3] {
	case ' ':
		return ReplyLine{Code: code, Last: true, Text: line[4:]}, nil
	case '-':
		return ReplyLine{Code: code, Last: false, Text: line[4:]}, nil
	}
	return ReplyLine{}, fmt.Errorf("%w: bad separator: %q", ErrMalformed, line)
}

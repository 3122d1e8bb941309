package instance

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"load-route-service/internal/domain"
	"strconv"
	"strings"
)

var ErrMalformedLoad = errors.New("malformed load record")

// ParseLoads reads a problem instance.
//
// A line whose first token is a non-negative integer is a load record:
//
//	<id> (<x>,<y>) (<x>,<y>)
//
// giving the pickup point then the drop-off point. Every other line (headers,
// comments, blanks) is skipped. A malformed load record fails the whole parse.
func ParseLoads(r io.Reader) ([]domain.Load, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	loads := make([]domain.Load, 0, 64)
	lineNo := 0
	for sc.Scan() {
		lineNo++

		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || !isDigits(fields[0]) {
			continue
		}

		l, err := parseRecord(fields)
		if err != nil {
			return nil, fmt.Errorf("parse loads: line %d: %w", lineNo, err)
		}
		loads = append(loads, l)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("parse loads: read: %w", err)
	}

	return loads, nil
}

func parseRecord(fields []string) (domain.Load, error) {
	if len(fields) != 3 {
		return domain.Load{}, fmt.Errorf("%w: want 3 fields, got %d", ErrMalformedLoad, len(fields))
	}

	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return domain.Load{}, fmt.Errorf("%w: id %q: %v", ErrMalformedLoad, fields[0], err)
	}

	start, err := parsePoint(fields[1])
	if err != nil {
		return domain.Load{}, fmt.Errorf("load %d pickup: %w", id, err)
	}
	end, err := parsePoint(fields[2])
	if err != nil {
		return domain.Load{}, fmt.Errorf("load %d dropoff: %w", id, err)
	}

	return domain.NewLoad(id, start, end), nil
}

// parsePoint parses "(x,y)".
func parsePoint(s string) (domain.Point, error) {
	if !strings.HasPrefix(s, "(") || !strings.HasSuffix(s, ")") {
		return domain.Point{}, fmt.Errorf("%w: point %q is not parenthesized", ErrMalformedLoad, s)
	}

	xs, ys, ok := strings.Cut(s[1:len(s)-1], ",")
	if !ok {
		return domain.Point{}, fmt.Errorf("%w: point %q has no comma", ErrMalformedLoad, s)
	}

	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return domain.Point{}, fmt.Errorf("%w: point %q: x: %v", ErrMalformedLoad, s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return domain.Point{}, fmt.Errorf("%w: point %q: y: %v", ErrMalformedLoad, s, err)
	}

	return domain.Point{X: x, Y: y}, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

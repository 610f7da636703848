package accounts

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// RecordBufferSize bounds a single passwd or group record, newline included.
const RecordBufferSize = 8192

// ErrRecordTooLarge is wrapped (together with ErrLookup) when a record does
// not fit in RecordBufferSize.
var ErrRecordTooLarge = errors.New("record exceeds lookup buffer")

type parser[T any] func(fields []string) (T, error)

// scanRecords feeds every record of r to parse, then to visit, until visit
// returns false. Blank lines, comments, NIS compat entries (+/-), short lines
// and records parse rejects are skipped, as the libc files backend does.
// Only read failures and oversized records are errors.
func scanRecords[T any](r io.Reader, minFields int, parse parser[T], visit func(T) bool) error {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, RecordBufferSize), RecordBufferSize)
	for s.Scan() {
		line := s.Text()
		trim := strings.TrimSpace(line)
		if trim == "" || strings.HasPrefix(trim, "#") || strings.HasPrefix(trim, "+") || strings.HasPrefix(trim, "-") {
			continue
		}
		parts := parseColonLine(line)
		if len(parts) < minFields {
			continue
		}
		rec, err := parse(parts)
		if err != nil {
			continue
		}
		if !visit(rec) {
			return nil
		}
	}
	if err := s.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return fmt.Errorf("%w: %w", ErrLookup, ErrRecordTooLarge)
		}
		return fmt.Errorf("%w: %v", ErrLookup, err)
	}
	return nil
}

func parseColonLine(line string) []string {
	// Keep trailing empty fields.
	return strings.Split(line, ":")
}

func parsePasswd(parts []string) (User, error) {
	uid, err := atoi(parts[2], "passwd.uid")
	if err != nil {
		return User{}, err
	}
	gid, err := atoi(parts[3], "passwd.gid")
	if err != nil {
		return User{}, err
	}
	return User{
		Name:  parts[0],
		UID:   uid,
		GID:   gid,
		Gecos: parts[4],
		Home:  parts[5],
		Shell: parts[6],
	}, nil
}

func parseGroup(parts []string) (Group, error) {
	gid, err := atoi(parts[2], "group.gid")
	if err != nil {
		return Group{}, err
	}
	members := []string{}
	if parts[3] != "" {
		members = strings.Split(parts[3], ",")
	}
	return Group{Name: parts[0], GID: gid, Members: members}, nil
}

func atoi(field, ctx string) (int, error) {
	n, err := strconv.Atoi(field)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: invalid id %q in %s", ErrLookup, field, ctx)
	}
	return n, nil
}

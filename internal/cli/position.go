package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// positionValue is a pflag.Value holding a 1-based position or "end".
// Index converts it to the 0-based index the engine expects, with -1
// meaning append.
type positionValue struct {
	pos int // 0 means end
}

var _ pflag.Value = (*positionValue)(nil)

func (p *positionValue) String() string {
	if p.pos == 0 {
		return "end"
	}
	return strconv.Itoa(p.pos)
}

func (p *positionValue) Set(s string) error {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "end" || s == "" {
		p.pos = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return fmt.Errorf("position must be a positive integer or \"end\", got %q", s)
	}
	p.pos = n
	return nil
}

func (p *positionValue) Type() string { return "position" }

func (p *positionValue) Index() int {
	if p.pos == 0 {
		return -1
	}
	return p.pos - 1
}

// parsePosition parses a positional 1-based section position argument.
func parsePosition(arg string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid position %q (positions start at 1)", arg)
	}
	return n - 1, nil
}

func parseID(kind, arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s ID %q", kind, arg)
	}
	return id, nil
}

func parseIDList(kind string, args []string) ([]int64, error) {
	var ids []int64
	for _, arg := range args {
		for _, part := range strings.Split(arg, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			id, err := parseID(kind, part)
			if err != nil {
				return nil, err
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

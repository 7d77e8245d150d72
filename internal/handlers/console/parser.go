package console

import (
	"strconv"
	"strings"

	"github.com/KirkDiggler/mafiagod/internal/models"
)

// ParseError is returned for malformed console input
type ParseError string

func (e ParseError) Error() string {
	return string(e)
}

const (
	ErrEmptyCommand  ParseError = "empty command"
	ErrMissingArg    ParseError = "missing argument"
	ErrInvalidSlot   ParseError = "slot must be a positive number"
	ErrInvalidNumber ParseError = "expected a number"
	ErrInvalidVote   ParseError = "votes must look like slot=count"
)

// Command is one parsed console line
type Command struct {
	Name string
	Args []string
}

// Parse splits a console line into a lower-cased command name and its arguments
func Parse(line string) (*Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, ErrEmptyCommand
	}
	return &Command{
		Name: strings.ToLower(fields[0]),
		Args: fields[1:],
	}, nil
}

// Arg returns the i-th argument or ErrMissingArg
func (c *Command) Arg(i int) (string, error) {
	if i < 0 || i >= len(c.Args) {
		return "", ErrMissingArg
	}
	return c.Args[i], nil
}

// Rest joins the arguments from i on, used for names with spaces
func (c *Command) Rest(i int) string {
	if i >= len(c.Args) {
		return ""
	}
	return strings.Join(c.Args[i:], " ")
}

// Slot parses the i-th argument as a 1-based slot and returns the player ID
func (c *Command) Slot(i int) (int, error) {
	raw, err := c.Arg(i)
	if err != nil {
		return 0, err
	}
	return ParseSlot(raw)
}

// Int parses the i-th argument as a number
func (c *Command) Int(i int) (int, error) {
	raw, err := c.Arg(i)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, ErrInvalidNumber
	}
	return n, nil
}

// ParseSlot converts a 1-based slot number into a player ID
func ParseSlot(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(raw, "#"))
	if err != nil || n < 1 {
		return 0, ErrInvalidSlot
	}
	return n - 1, nil
}

// ParseVotes reads "slot=count" pairs into a vote map keyed by player ID
func ParseVotes(args []string) (models.VoteMap, error) {
	if len(args) == 0 {
		return nil, ErrMissingArg
	}

	votes := models.VoteMap{}
	for _, arg := range args {
		slot, count, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, ErrInvalidVote
		}
		id, err := ParseSlot(slot)
		if err != nil {
			return nil, err
		}
		n, err := strconv.Atoi(count)
		if err != nil {
			return nil, ErrInvalidVote
		}
		votes[id] = n
	}
	return votes, nil
}

// Merge overlays updates on a copy of current
func Merge(current, updates models.VoteMap) models.VoteMap {
	out := current.Clone()
	for id, n := range updates {
		out[id] = n
	}
	return out
}

package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// MinIDPrefix is the shortest id prefix accepted as a task reference.
const MinIDPrefix = 4

// TaskRef is a parsed task reference: either a 1-based position in the
// full collection, or an id (or id prefix).
type TaskRef struct {
	Num int    // 1-based position; 0 if ID is set
	ID  string // id or id prefix; empty if Num is set
	Raw string // the argument as typed
}

// IsNum reports whether the reference is a position.
func (r TaskRef) IsNum() bool { return r.ID == "" }

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses one task reference.
//
// Parsing rules:
//  1. All digits → position in the full collection (as printed by list).
//     Runs of at least MinIDPrefix digits may also name an id prefix;
//     ResolveTaskRefs decides which.
//  2. At least MinIDPrefix hex digits or dashes → id or id prefix
//  3. Otherwise → error: invalid task reference: <ref>
func ParseTaskRef(arg string) (TaskRef, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return TaskRef{}, ErrTaskRefRequired
	}

	if isAllDigits(arg) {
		num, err := strconv.Atoi(arg)
		if err != nil {
			// Too large for a position, so only an id prefix is possible.
			if len(arg) >= MinIDPrefix {
				return TaskRef{ID: arg, Raw: arg}, nil
			}
			return TaskRef{}, fmt.Errorf("invalid task reference: %s", arg)
		}
		return TaskRef{Num: num, Raw: arg}, nil
	}

	if len(arg) >= MinIDPrefix && isIDLike(arg) {
		return TaskRef{ID: strings.ToLower(arg), Raw: arg}, nil
	}

	return TaskRef{}, fmt.Errorf("invalid task reference: %s", arg)
}

// ParseTaskRefs parses every argument as a task reference.
// Returns ErrTaskRefRequired if args is empty.
func ParseTaskRefs(args []string) ([]TaskRef, error) {
	if len(args) == 0 {
		return nil, ErrTaskRefRequired
	}
	refs := make([]TaskRef, 0, len(args))
	for _, arg := range args {
		ref, err := ParseTaskRef(arg)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
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

// isIDLike returns true if s contains only hex digits and dashes.
func isIDLike(s string) bool {
	for _, r := range s {
		if r == '-' || unicode.Is(unicode.ASCII_Hex_Digit, r) {
			continue
		}
		return false
	}
	return true
}

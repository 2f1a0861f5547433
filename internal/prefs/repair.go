package prefs

// repair.go — interactive removal of invalid lines.
//
// Each invalid line is surfaced to the operator as a yes/no decision
// (default yes, remove). Approved lines are dropped from the retained
// set; declined lines are kept byte-identical. The input file is
// rewritten only when at least one removal was approved.

import (
	"fmt"
	"io"
	"os"

	"p2bookmarks/internal/prompt"
)

// Reporter announces one invalid line to the operator before the
// removal prompt. first distinguishes the first finding from
// subsequent ones.
type Reporter func(first bool, ln Line)

// RepairResult holds the retained lines after the repair walk and the
// 1-based numbers of the lines that were removed.
type RepairResult struct {
	Retained []Line
	Removed  []int
}

// Needed reports whether the input file must be rewritten.
func (r *RepairResult) Needed() bool {
	return len(r.Removed) > 0
}

// WriteTo reassembles the retained lines, each with its original
// terminator, preserving the input bytes exactly.
func (r *RepairResult) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, ln := range r.Retained {
		n, err := io.WriteString(w, ln.Text+ln.EOL)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Repair walks doc's invalid lines in file order, reporting each and
// asking confirm whether to remove it. A well-formed document returns
// a result with Needed() == false and never touches the confirmer.
func Repair(doc *Document, confirm prompt.Confirmer, report Reporter) (*RepairResult, error) {
	res := &RepairResult{}
	first := true
	for _, ln := range doc.Lines {
		if ln.Kind != KindInvalid {
			res.Retained = append(res.Retained, ln)
			continue
		}
		if report != nil {
			report(first, ln)
		}
		first = false
		remove, err := confirm.Confirm(fmt.Sprintf("Remove line %d?", ln.Num), true)
		if err != nil {
			return nil, err
		}
		if remove {
			res.Removed = append(res.Removed, ln.Num)
		} else {
			res.Retained = append(res.Retained, ln)
		}
	}
	return res, nil
}

// RewriteFile overwrites path with the repaired content. Callers must
// only invoke this when res.Needed() is true; an untouched file is
// never reopened for writing.
func RewriteFile(path string, res *RepairResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("rewrite %s: %w", path, err)
	}
	if _, err := res.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("rewrite %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("rewrite %s: %w", path, err)
	}
	return nil
}

package roster

// Attendance statuses as persisted.  The three symbols are stored
// directly in the status column; free-form values are stored under the
// StatusCustom tag with the text in a separate column.
const (
	StatusPresent = "○"    // attending
	StatusPartial = "△"    // attending part of the slot
	StatusAbsent  = "×"    // not attending
	StatusCustom  = "text" // free-form cell value
)

// Advance returns the next display value in the click cycle:
// "" → ○ → △ → × → "".  A custom text value does not continue the
// cycle; the next click clears it back to empty.
func Advance(current string) string {
	switch current {
	case "":
		return StatusPresent
	case StatusPresent:
		return StatusPartial
	case StatusPartial:
		return StatusAbsent
	default:
		// × and any custom text both clear.
		return ""
	}
}

// SplitValue maps a raw display value onto (status, text) for storage.
// Symbols store as themselves with no text; anything else stores as a
// custom cell carrying the value verbatim.  The empty string means the
// cell is cleared: ok is false and the caller should delete the row
// rather than store a zero-length custom value.
func SplitValue(value string) (status string, text *string, ok bool) {
	switch value {
	case "":
		return "", nil, false
	case StatusPresent, StatusPartial, StatusAbsent:
		return value, nil, true
	default:
		v := value
		return StatusCustom, &v, true
	}
}

// DisplayValue is the inverse of SplitValue: it renders a stored
// (status, text) pair back into the single value shown in a cell.
func DisplayValue(status string, text *string) string {
	if status == StatusCustom {
		if text == nil {
			return ""
		}
		return *text
	}
	return status
}

// AdvanceCell applies one click to a stored cell and returns the next
// cell state.  cleared reports that the cycle wrapped to empty and the
// row should be removed.  Both the click-to-cycle and the
// type-to-overwrite entry points funnel through SplitValue, keeping a
// single transition table.
func AdvanceCell(cur *Cell) (next Cell, cleared bool) {
	var display string
	if cur != nil {
		display = DisplayValue(cur.Status, cur.Text)
	}
	status, text, ok := SplitValue(Advance(display))
	if !ok {
		return Cell{}, true
	}
	return Cell{Status: status, Text: text}, false
}

package fmtutil

import (
	"bufio"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// QuotedArgs joins args with spaces, quoting with strconv any arg that is
// empty or contains a space or a quote.
func QuotedArgs(args []string) string {
	var sb strings.Builder
	for i, arg := range args {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if arg == "" || strings.ContainsAny(arg, " \t\"'#") {
			sb.WriteString(strconv.Quote(arg))
		} else {
			sb.WriteString(arg)
		}
	}
	return sb.String()
}

// ScanArgs is a bufio.SplitFunc that scans space separated, optionally
// quoted, arg tokens. Quoted tokens are returned with both quotes; see
// UnquoteArg. A token starting with '#' comments out the rest of the data.
func ScanArgs(data []byte, atEOF bool) (advance int, token []byte, err error) {
	start := 0
	var r rune
	for width := 0; start < len(data); start += width {
		r, width = utf8.DecodeRune(data[start:])
		if !unicode.IsSpace(r) {
			break
		}
	}
	if start >= len(data) {
		return start, nil, nil
	}

	switch r {
	case '#':
		return len(data), nil, nil

	case '"', '\'':
		q, esc := r, false
		for width, i := 0, start+1; i < len(data); i += width {
			r, width = utf8.DecodeRune(data[i:])
			switch {
			case esc:
				esc = false
			case r == '\\':
				esc = true
			case r == q:
				return i + width, data[start : i+width], nil
			}
		}

	default:
		for width, i := 0, start; i < len(data); i += width {
			r, width = utf8.DecodeRune(data[i:])
			if unicode.IsSpace(r) {
				return i + width, data[start:i], nil
			}
		}
	}

	if atEOF {
		return len(data), data[start:], nil
	}
	return start, nil, nil
}

// UnquoteArg strips the quotes from a token returned by ScanArgs,
// interpreting escapes within double quotes. Unquoted tokens are returned
// as is.
func UnquoteArg(tok string) (string, error) {
	n := len(tok)
	if n == 0 {
		return tok, nil
	}
	switch tok[0] {
	case '"':
		return strconv.Unquote(tok)
	case '\'':
		if n < 2 || tok[n-1] != '\'' {
			return "", strconv.ErrSyntax
		}
		return strings.ReplaceAll(tok[1:n-1], `\'`, `'`), nil
	}
	return tok, nil
}

// SplitArgs splits one line into unquoted args.
func SplitArgs(line string) ([]string, error) {
	sc := bufio.NewScanner(strings.NewReader(line))
	sc.Split(ScanArgs)
	var args []string
	for sc.Scan() {
		arg, err := UnquoteArg(sc.Text())
		if err != nil {
			return args, err
		}
		args = append(args, arg)
	}
	return args, sc.Err()
}

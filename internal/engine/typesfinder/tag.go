package typesfinder

import "strings"

// ReturnTag is the documentation tag carrying the return type.
const ReturnTag = "@return"

// ExtractReturnTag returns the type expression of the first @return tag in
// comment. Only the first word after the tag is the expression; the rest of
// the line is description. ok is false when the comment has no usable tag.
func ExtractReturnTag(comment string) (expr string, ok bool) {
	if strings.TrimSpace(comment) == "" {
		return "", false
	}

	for _, line := range strings.Split(comment, "\n") {
		fields := strings.Fields(stripDecoration(line))
		if len(fields) == 0 || fields[0] != ReturnTag {
			continue
		}
		if len(fields) < 2 {
			return "", false
		}
		return fields[1], true
	}
	return "", false
}

// stripDecoration removes comment delimiters and the leading asterisk
// column from a single comment line.
func stripDecoration(line string) string {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "/**")
	line = strings.TrimPrefix(line, "/*")
	line = strings.TrimSpace(line)
	line = strings.TrimSuffix(line, "*/")
	line = strings.TrimSpace(line)
	line = strings.TrimLeft(line, "*")
	return strings.TrimSpace(line)
}

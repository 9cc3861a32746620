package siteconfig

import (
	"bufio"
	"strings"
)

const headerDirectivePrefix = "http_header("

// Parse turns the text of one site config file into a Rule. It never fails:
// lines without a colon are counted in Rule.Skipped, unknown directives are
// ignored and empty input yields an empty rule.
func Parse(text string) *Rule {
	rule := &Rule{}

	var (
		find    string
		pending bool
	)

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		rawKey, value, ok := strings.Cut(line, ":")
		if !ok {
			rule.Skipped++
			continue
		}
		rawKey = strings.TrimSpace(rawKey)
		key := strings.ToLower(rawKey)
		value = strings.TrimSpace(value)

		switch {
		case key == "find_string":
			find, pending = value, true
		case key == "replace_string":
			if !pending {
				continue
			}
			rule.Replacements = append(rule.Replacements, Replacement{Find: find, Replace: value})
			find, pending = "", false
		case key == "title":
			rule.Title = value
		case key == "body":
			rule.Body = value
		case key == "author":
			rule.Author = value
		case key == "date":
			rule.Date = value
		case key == "strip":
			rule.Strip = append(rule.Strip, value)
		case key == "strip_id_or_class":
			rule.StripIDOrClass = append(rule.StripIDOrClass, value)
		case strings.HasPrefix(key, headerDirectivePrefix) && strings.HasSuffix(key, ")"):
			name := strings.TrimSpace(rawKey[len(headerDirectivePrefix) : len(rawKey)-1])
			if name == "" {
				continue
			}
			if rule.HTTPHeaders == nil {
				rule.HTTPHeaders = make(map[string]string)
			}
			rule.HTTPHeaders[name] = value
		}
	}

	return rule
}

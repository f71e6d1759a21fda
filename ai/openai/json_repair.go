// Copyright 2025 Ticketry Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import (
	"strings"
	"unicode"
)

// repairJSON fixes the JSON defects small models produce most often:
// object keys missing their opening quote (`, topic":` instead of
// `, "topic":`) and trailing commas before a closing brace or bracket.
// It changes nothing inside string values.
func repairJSON(s string) string {
	var out strings.Builder
	out.Grow(len(s) + 16)

	runes := []rune(s)
	inString := false

	for i := 0; i < len(runes); i++ {
		ch := runes[i]

		if inString {
			out.WriteRune(ch)
			if ch == '\\' && i+1 < len(runes) {
				i++
				out.WriteRune(runes[i])
			} else if ch == '"' {
				inString = false
			}
			continue
		}

		switch {
		case ch == '"':
			inString = true
			out.WriteRune(ch)

		case ch == ',' || ch == '{':
			// Key position. A bare identifier ending in `":` lost its
			// opening quote.
			out.WriteRune(ch)
			j := i + 1
			for j < len(runes) && unicode.IsSpace(runes[j]) {
				out.WriteRune(runes[j])
				j++
			}
			if key, end, ok := bareKey(runes, j); ok {
				out.WriteRune('"')
				out.WriteString(key)
				out.WriteString(`":`)
				i = end + 1
			} else {
				i = j - 1
			}

		case ch == '}' || ch == ']':
			// Drop a trailing comma emitted before this close.
			trimmed := strings.TrimRightFunc(out.String(), unicode.IsSpace)
			if strings.HasSuffix(trimmed, ",") {
				out.Reset()
				out.WriteString(trimmed[:len(trimmed)-1])
			}
			out.WriteRune(ch)

		default:
			out.WriteRune(ch)
		}
	}

	return out.String()
}

// bareKey reports whether runes[start:] opens with an unquoted key of
// the form `ident":`. It returns the key text and the position of the
// closing quote.
func bareKey(runes []rune, start int) (string, int, bool) {
	if start >= len(runes) || !unicode.IsLetter(runes[start]) {
		return "", 0, false
	}

	end := start
	for end < len(runes) && (unicode.IsLetter(runes[end]) || unicode.IsDigit(runes[end]) || runes[end] == '_') {
		end++
	}
	if end+1 >= len(runes) || runes[end] != '"' || runes[end+1] != ':' {
		return "", 0, false
	}
	return string(runes[start:end]), end, true
}
